package domain

import (
	"time"

	"github.com/google/uuid"
)

// Enjoy is a restaurant visit record. Title, Maker (who recommended the
// place) and Location are required.
type Enjoy struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Cover           string    `json:"cover"`
	Images          []string  `json:"images"`
	Tags            []string  `json:"tags"`
	Star            *float64  `json:"star"`
	Maker           string    `json:"maker"`
	Flavor          string    `json:"flavor"`
	Location        string    `json:"location"`
	PricePerPerson  *float64  `json:"price_per_person"`
	RecommendDishes []string  `json:"recommend_dishes"`
	CreatedBy       uuid.UUID `json:"created_by"`
	UpdatedBy       uuid.UUID `json:"updated_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate checks if the Enjoy has valid data.
func (e *Enjoy) Validate() error {
	if e.Title == "" {
		return ErrEmptyTitle
	}
	if e.Maker == "" {
		return ErrEmptyMaker
	}
	if e.Location == "" {
		return ErrEmptyLocation
	}
	if e.Star != nil && (*e.Star < StarMin || *e.Star > StarMax) {
		return ErrStarOutOfRange
	}
	if e.PricePerPerson != nil && *e.PricePerPerson <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// EnjoyPatch carries the fields of a partial restaurant-record update.
type EnjoyPatch struct {
	Title           *string   `json:"title"`
	Content         *string   `json:"content"`
	Cover           *string   `json:"cover"`
	Images          *[]string `json:"images"`
	Tags            *[]string `json:"tags"`
	Star            *float64  `json:"star"`
	Maker           *string   `json:"maker"`
	Flavor          *string   `json:"flavor"`
	Location        *string   `json:"location"`
	PricePerPerson  *float64  `json:"price_per_person"`
	RecommendDishes *[]string `json:"recommend_dishes"`
}

// Apply copies the supplied patch fields onto the restaurant record.
func (e *Enjoy) Apply(p EnjoyPatch) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Cover != nil {
		e.Cover = *p.Cover
	}
	if p.Images != nil {
		e.Images = *p.Images
	}
	if p.Tags != nil {
		e.Tags = *p.Tags
	}
	if p.Star != nil {
		e.Star = p.Star
	}
	if p.Maker != nil {
		e.Maker = *p.Maker
	}
	if p.Flavor != nil {
		e.Flavor = *p.Flavor
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.PricePerPerson != nil {
		e.PricePerPerson = p.PricePerPerson
	}
	if p.RecommendDishes != nil {
		e.RecommendDishes = *p.RecommendDishes
	}
}
