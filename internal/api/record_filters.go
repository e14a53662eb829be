package api

import (
	"net/url"

	"github.com/yolo-life/yolo-api/internal/store"
)

// Per-resource filter parsers. Title and content always match as
// case-insensitive substrings; categorical fields match exactly;
// min_/max_ pairs bound numeric fields inclusively.

// ParseFoodFilters reads the food search parameters.
func ParseFoodFilters(values url.Values) store.Filters {
	return store.Filters{}.
		WithContains("title", values.Get("title")).
		WithContains("content", values.Get("content")).
		WithEquals("maker", values.Get("maker")).
		WithEquals("flavor", values.Get("flavor")).
		WithRange("star", queryFloat(values, "min_star"), queryFloat(values, "max_star")).
		WithTag(values.Get("tag"))
}

// ParseDrinkFilters reads the drink search parameters.
func ParseDrinkFilters(values url.Values) store.Filters {
	return store.Filters{}.
		WithContains("title", values.Get("title")).
		WithContains("content", values.Get("content")).
		WithEquals("brand", values.Get("brand")).
		WithEquals("flavor", values.Get("flavor")).
		WithEquals("drink_type", values.Get("drink_type")).
		WithEquals("sweetness", values.Get("sweetness")).
		WithEquals("ice", values.Get("ice")).
		WithRange("star", queryFloat(values, "min_star"), queryFloat(values, "max_star")).
		WithTag(values.Get("tag"))
}

// ParseEnjoyFilters reads the dining-out search parameters.
func ParseEnjoyFilters(values url.Values) store.Filters {
	return store.Filters{}.
		WithContains("title", values.Get("title")).
		WithContains("content", values.Get("content")).
		WithContains("location", values.Get("location")).
		WithEquals("maker", values.Get("maker")).
		WithEquals("flavor", values.Get("flavor")).
		WithRange("star", queryFloat(values, "min_star"), queryFloat(values, "max_star")).
		WithRange("price_per_person", queryFloat(values, "min_price"), queryFloat(values, "max_price")).
		WithTag(values.Get("tag"))
}

// ParseItemFilters reads the item search parameters.
func ParseItemFilters(values url.Values) store.Filters {
	return store.Filters{}.
		WithContains("title", values.Get("title")).
		WithContains("description", values.Get("description")).
		WithRange("price", queryFloat(values, "min_price"), queryFloat(values, "max_price")).
		WithBool("is_available", queryBool(values, "available"))
}
