package domain

import (
	"time"

	"github.com/google/uuid"
)

// Drink is a beverage record. Title and Brand are required. Star uses the
// 0-5 interval, where 0 means "tried it, not rating it".
type Drink struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover"`
	Images    []string  `json:"images"`
	Tags      []string  `json:"tags"`
	Star      *float64  `json:"star"`
	Brand     string    `json:"brand"`
	Flavor    string    `json:"flavor"`
	DrinkType string    `json:"drink_type"`
	Sweetness string    `json:"sweetness"`
	Ice       string    `json:"ice"`
	CreatedBy uuid.UUID `json:"created_by"`
	UpdatedBy uuid.UUID `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the Drink has valid data.
func (d *Drink) Validate() error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if d.Brand == "" {
		return ErrEmptyBrand
	}
	if d.Star != nil && (*d.Star < DrinkStarMin || *d.Star > StarMax) {
		return ErrStarOutOfRange
	}
	return nil
}

// DrinkPatch carries the fields of a partial drink update.
type DrinkPatch struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Cover     *string   `json:"cover"`
	Images    *[]string `json:"images"`
	Tags      *[]string `json:"tags"`
	Star      *float64  `json:"star"`
	Brand     *string   `json:"brand"`
	Flavor    *string   `json:"flavor"`
	DrinkType *string   `json:"drink_type"`
	Sweetness *string   `json:"sweetness"`
	Ice       *string   `json:"ice"`
}

// Apply copies the supplied patch fields onto the drink record.
func (d *Drink) Apply(p DrinkPatch) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Content != nil {
		d.Content = *p.Content
	}
	if p.Cover != nil {
		d.Cover = *p.Cover
	}
	if p.Images != nil {
		d.Images = *p.Images
	}
	if p.Tags != nil {
		d.Tags = *p.Tags
	}
	if p.Star != nil {
		d.Star = p.Star
	}
	if p.Brand != nil {
		d.Brand = *p.Brand
	}
	if p.Flavor != nil {
		d.Flavor = *p.Flavor
	}
	if p.DrinkType != nil {
		d.DrinkType = *p.DrinkType
	}
	if p.Sweetness != nil {
		d.Sweetness = *p.Sweetness
	}
	if p.Ice != nil {
		d.Ice = *p.Ice
	}
}
