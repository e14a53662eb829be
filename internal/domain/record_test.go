package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yolo-life/yolo-api/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestFoodValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		food    domain.Food
		wantErr error
	}{
		{
			name: "valid minimal",
			food: domain.Food{Title: "dumplings", Maker: "mom"},
		},
		{
			name: "valid with star",
			food: domain.Food{Title: "dumplings", Maker: "mom", Star: floatPtr(4.5)},
		},
		{
			name:    "missing title",
			food:    domain.Food{Maker: "mom"},
			wantErr: domain.ErrEmptyTitle,
		},
		{
			name:    "missing maker",
			food:    domain.Food{Title: "dumplings"},
			wantErr: domain.ErrEmptyMaker,
		},
		{
			name:    "star below range",
			food:    domain.Food{Title: "dumplings", Maker: "mom", Star: floatPtr(0.5)},
			wantErr: domain.ErrStarOutOfRange,
		},
		{
			name:    "star above range",
			food:    domain.Food{Title: "dumplings", Maker: "mom", Star: floatPtr(5.5)},
			wantErr: domain.ErrStarOutOfRange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.food.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDrinkValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		drink   domain.Drink
		wantErr error
	}{
		{
			name:  "valid minimal",
			drink: domain.Drink{Title: "oolong latte", Brand: "corner shop"},
		},
		{
			name: "zero star allowed",
			drink: domain.Drink{
				Title: "oolong latte", Brand: "corner shop", Star: floatPtr(0),
			},
		},
		{
			name:    "missing brand",
			drink:   domain.Drink{Title: "oolong latte"},
			wantErr: domain.ErrEmptyBrand,
		},
		{
			name: "negative star",
			drink: domain.Drink{
				Title: "oolong latte", Brand: "corner shop", Star: floatPtr(-1),
			},
			wantErr: domain.ErrStarOutOfRange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.drink.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnjoyValidate(t *testing.T) {
	t.Parallel()

	valid := domain.Enjoy{Title: "hotpot night", Maker: "coworker", Location: "downtown"}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		e := valid
		assert.NoError(t, e.Validate())
	})

	t.Run("missing location", func(t *testing.T) {
		t.Parallel()
		e := valid
		e.Location = ""
		assert.ErrorIs(t, e.Validate(), domain.ErrEmptyLocation)
	})

	t.Run("non-positive price per person", func(t *testing.T) {
		t.Parallel()
		e := valid
		e.PricePerPerson = floatPtr(0)
		assert.ErrorIs(t, e.Validate(), domain.ErrInvalidPrice)
	})
}

func TestItemValidate(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		item := domain.Item{Title: "bicycle", OwnerID: owner, Price: floatPtr(120)}
		assert.NoError(t, item.Validate())
	})

	t.Run("missing owner", func(t *testing.T) {
		t.Parallel()
		item := domain.Item{Title: "bicycle"}
		assert.ErrorIs(t, item.Validate(), domain.ErrEmptyOwner)
	})

	t.Run("non-positive price", func(t *testing.T) {
		t.Parallel()
		item := domain.Item{Title: "bicycle", OwnerID: owner, Price: floatPtr(-1)}
		assert.ErrorIs(t, item.Validate(), domain.ErrInvalidPrice)
	})
}

func TestFileInfoValidate(t *testing.T) {
	t.Parallel()

	valid := domain.FileInfo{
		ID:        uuid.New(),
		ObjectKey: "images/20260101T120000_abcd1234.png",
		Filename:  "cat.png",
		Size:      1024,
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		f := valid
		assert.NoError(t, f.Validate())
	})

	t.Run("missing object key", func(t *testing.T) {
		t.Parallel()
		f := valid
		f.ObjectKey = ""
		assert.ErrorIs(t, f.Validate(), domain.ErrEmptyObjectKey)
	})

	t.Run("zero size", func(t *testing.T) {
		t.Parallel()
		f := valid
		f.Size = 0
		assert.ErrorIs(t, f.Validate(), domain.ErrInvalidSize)
	})
}

func TestFoodApply(t *testing.T) {
	t.Parallel()

	food := domain.Food{Title: "dumplings", Maker: "mom", Content: "pork and chive"}

	food.Apply(domain.FoodPatch{
		Title: strPtr("boiled dumplings"),
		Star:  floatPtr(5),
		Tags:  &[]string{"comfort", "winter"},
	})

	assert.Equal(t, "boiled dumplings", food.Title)
	assert.Equal(t, "pork and chive", food.Content)
	assert.Equal(t, "mom", food.Maker)
	assert.Equal(t, 5.0, *food.Star)
	assert.Equal(t, []string{"comfort", "winter"}, food.Tags)
}

func TestDrinkApply(t *testing.T) {
	t.Parallel()

	drink := domain.Drink{Title: "oolong latte", Brand: "corner shop", Ice: "less"}

	drink.Apply(domain.DrinkPatch{
		Sweetness: strPtr("half"),
		Ice:       strPtr("none"),
	})

	assert.Equal(t, "half", drink.Sweetness)
	assert.Equal(t, "none", drink.Ice)
	assert.Equal(t, "corner shop", drink.Brand)
}

func TestEnjoyApply(t *testing.T) {
	t.Parallel()

	enjoy := domain.Enjoy{Title: "hotpot night", Maker: "coworker", Location: "downtown"}

	enjoy.Apply(domain.EnjoyPatch{
		PricePerPerson:  floatPtr(38),
		RecommendDishes: &[]string{"tripe", "lotus root"},
	})

	assert.Equal(t, 38.0, *enjoy.PricePerPerson)
	assert.Equal(t, []string{"tripe", "lotus root"}, enjoy.RecommendDishes)
	assert.Equal(t, "downtown", enjoy.Location)
}

func TestItemApply(t *testing.T) {
	t.Parallel()

	available := true
	item := domain.Item{Title: "bicycle", OwnerID: uuid.New()}

	item.Apply(domain.ItemPatch{
		Description: strPtr("single speed"),
		Price:       floatPtr(99.5),
		IsAvailable: &available,
	})

	assert.Equal(t, "single speed", item.Description)
	assert.Equal(t, 99.5, *item.Price)
	assert.True(t, item.IsAvailable)
}
