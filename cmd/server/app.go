package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/yolo-life/yolo-api/internal/config"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/llm"
	"github.com/yolo-life/yolo-api/internal/platform/gemini"
	"github.com/yolo-life/yolo-api/internal/platform/objectstore"
	"github.com/yolo-life/yolo-api/internal/platform/ollama"
	"github.com/yolo-life/yolo-api/internal/platform/postgres"
	"github.com/yolo-life/yolo-api/internal/service/auth"
	"github.com/yolo-life/yolo-api/internal/store"
)

// application holds all wired components of the server. Handlers and
// middleware receive their dependencies from here; nothing reaches for
// globals.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	itemStore  store.RecordStore[domain.Item, domain.ItemPatch]
	foodStore  store.RecordStore[domain.Food, domain.FoodPatch]
	drinkStore store.RecordStore[domain.Drink, domain.DrinkPatch]
	enjoyStore store.RecordStore[domain.Enjoy, domain.EnjoyPatch]
	fileStore  store.FileStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	llmProvider llm.Provider

	// objectStore is nil when storage is not configured; the upload
	// endpoints then report the feature as unavailable.
	objectStore *objectstore.Store
}

// newApplication wires stores, services and providers from configuration.
func newApplication(ctx context.Context, cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	provider, err := setupLLMProvider(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	app := &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger),
		itemStore:        postgres.NewItemStore(db, logger),
		foodStore:        postgres.NewFoodStore(db, logger),
		drinkStore:       postgres.NewDrinkStore(db, logger),
		enjoyStore:       postgres.NewEnjoyStore(db, logger),
		fileStore:        postgres.NewPostgresFileStore(db, logger),
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
		llmProvider:      provider,
	}

	if cfg.Storage.Endpoint != "" {
		objects, err := objectstore.New(cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create object store: %w", err)
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure storage bucket: %w", err)
		}
		app.objectStore = objects
	} else {
		logger.Warn("object storage not configured, upload endpoints disabled")
	}

	return app, nil
}

// setupLLMProvider selects the text generation backend from configuration.
func setupLLMProvider(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (llm.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		provider, err := gemini.New(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		return provider, nil
	default:
		provider, err := ollama.New(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama provider: %w", err)
		}
		return provider, nil
	}
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
