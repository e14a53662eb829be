package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a generic owned entry. Unlike the other record types, item
// mutations are restricted to the owner.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"`
	IsAvailable bool      `json:"is_available"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks if the Item has valid data.
func (i *Item) Validate() error {
	if i.Title == "" {
		return ErrEmptyTitle
	}
	if i.OwnerID == uuid.Nil {
		return ErrEmptyOwner
	}
	if i.Price != nil && *i.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// ItemPatch carries the fields of a partial item update.
type ItemPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"is_available"`
}

// Apply copies the supplied patch fields onto the item.
func (i *Item) Apply(p ItemPatch) {
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Price != nil {
		i.Price = p.Price
	}
	if p.IsAvailable != nil {
		i.IsAvailable = *p.IsAvailable
	}
}
