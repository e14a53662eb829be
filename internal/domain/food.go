package domain

import (
	"time"

	"github.com/google/uuid"
)

// Star rating bounds. Foods and restaurant records use the 1-5 interval;
// drinks historically allow 0 as "unrated".
const (
	StarMin      = 1.0
	StarMax      = 5.0
	DrinkStarMin = 0.0
)

// Food is a home-cooking record: what was eaten, who made it, how it rated.
// Title and Maker are required; everything else is optional color.
type Food struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover"`
	Images    []string  `json:"images"`
	Tags      []string  `json:"tags"`
	Star      *float64  `json:"star"`
	Maker     string    `json:"maker"`
	Flavor    string    `json:"flavor"`
	CreatedBy uuid.UUID `json:"created_by"`
	UpdatedBy uuid.UUID `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the Food has valid data.
func (f *Food) Validate() error {
	if f.Title == "" {
		return ErrEmptyTitle
	}
	if f.Maker == "" {
		return ErrEmptyMaker
	}
	if f.Star != nil && (*f.Star < StarMin || *f.Star > StarMax) {
		return ErrStarOutOfRange
	}
	return nil
}

// FoodPatch carries the fields of a partial food update.
// Only non-nil fields are applied; absent fields are left untouched.
type FoodPatch struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Cover   *string   `json:"cover"`
	Images  *[]string `json:"images"`
	Tags    *[]string `json:"tags"`
	Star    *float64  `json:"star"`
	Maker   *string   `json:"maker"`
	Flavor  *string   `json:"flavor"`
}

// Apply copies the supplied patch fields onto the food record.
func (f *Food) Apply(p FoodPatch) {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Content != nil {
		f.Content = *p.Content
	}
	if p.Cover != nil {
		f.Cover = *p.Cover
	}
	if p.Images != nil {
		f.Images = *p.Images
	}
	if p.Tags != nil {
		f.Tags = *p.Tags
	}
	if p.Star != nil {
		f.Star = p.Star
	}
	if p.Maker != nil {
		f.Maker = *p.Maker
	}
	if p.Flavor != nil {
		f.Flavor = *p.Flavor
	}
}
