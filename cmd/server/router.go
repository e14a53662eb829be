package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yolo-life/yolo-api/internal/api"
	apiMiddleware "github.com/yolo-life/yolo-api/internal/api/middleware"
	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/domain"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	userHandler := api.NewUserHandler(app.userStore)
	llmHandler := api.NewLLMHandler(app.llmProvider)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	itemHandler := api.NewRecordHandler[domain.Item, domain.ItemPatch](app.itemStore, api.ParseItemFilters, "item")
	foodHandler := api.NewRecordHandler[domain.Food, domain.FoodPatch](app.foodStore, api.ParseFoodFilters, "food")
	drinkHandler := api.NewRecordHandler[domain.Drink, domain.DrinkPatch](app.drinkStore, api.ParseDrinkFilters, "drink")
	enjoyHandler := api.NewRecordHandler[domain.Enjoy, domain.EnjoyPatch](app.enjoyStore, api.ParseEnjoyFilters, "enjoy")

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/me", userHandler.Me)
			r.Put("/users/me", userHandler.UpdateMe)

			registerRecordRoutes(r, "/items", itemHandler)
			registerRecordRoutes(r, "/foods", foodHandler)
			registerRecordRoutes(r, "/drinks", drinkHandler)
			registerRecordRoutes(r, "/enjoys", enjoyHandler)

			if app.objectStore != nil {
				uploadHandler := api.NewUploadHandler(app.objectStore, app.fileStore)
				r.Get("/upload/config", uploadHandler.Config)
				r.Get("/upload/files", uploadHandler.ListFiles)
				r.Post("/upload/files", uploadHandler.Upload)
			} else {
				r.HandleFunc("/upload/*", uploadUnavailable)
			}

			r.Post("/llm/generate", llmHandler.Generate)
			r.Post("/llm/chat", llmHandler.Chat)
			r.Get("/llm/models", llmHandler.Models)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// registerRecordRoutes mounts the shared CRUD and search routes for one
// resource under its path prefix.
func registerRecordRoutes[R any, P any](r chi.Router, prefix string, h *api.RecordHandler[R, P]) {
	r.Route(prefix, func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func uploadUnavailable(w http.ResponseWriter, r *http.Request) {
	shared.RespondError(w, r, http.StatusServiceUnavailable, shared.CodeInternal, "Upload storage is not configured")
}
