package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yolo-life/yolo-api/internal/store"
)

func TestPageNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   store.Page
		want store.Page
	}{
		{
			name: "zero value gets default limit",
			in:   store.Page{},
			want: store.Page{Skip: 0, Limit: store.DefaultLimit},
		},
		{
			name: "negative skip clamped to zero",
			in:   store.Page{Skip: -10, Limit: 20},
			want: store.Page{Skip: 0, Limit: 20},
		},
		{
			name: "negative limit gets default",
			in:   store.Page{Skip: 5, Limit: -1},
			want: store.Page{Skip: 5, Limit: store.DefaultLimit},
		},
		{
			name: "limit capped at maximum",
			in:   store.Page{Skip: 0, Limit: store.MaxLimit + 1},
			want: store.Page{Skip: 0, Limit: store.MaxLimit},
		},
		{
			name: "in-range page unchanged",
			in:   store.Page{Skip: 40, Limit: 20},
			want: store.Page{Skip: 40, Limit: 20},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestFiltersBuilders(t *testing.T) {
	t.Parallel()

	t.Run("zero filters", func(t *testing.T) {
		t.Parallel()
		assert.True(t, store.Filters{}.IsZero())
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		t.Parallel()
		f := store.Filters{}.
			WithContains("title", "").
			WithEquals("maker", "").
			WithRange("star", nil, nil).
			WithBool("is_available", nil).
			WithTag("")
		assert.True(t, f.IsZero())
	})

	t.Run("predicates accumulate", func(t *testing.T) {
		t.Parallel()
		min, max := 3.0, 5.0
		available := false
		f := store.Filters{}.
			WithContains("title", "noodle").
			WithEquals("maker", "mom").
			WithRange("star", &min, &max).
			WithBool("is_available", &available).
			WithTag("dinner")

		assert.False(t, f.IsZero())
		assert.Equal(t, "noodle", f.Contains["title"])
		assert.Equal(t, "mom", f.Equals["maker"])
		assert.Equal(t, store.Range{Min: &min, Max: &max}, f.Ranges["star"])
		assert.Equal(t, false, f.Bools["is_available"])
		assert.Equal(t, "dinner", f.Tag)
	})

	t.Run("single-sided range kept", func(t *testing.T) {
		t.Parallel()
		min := 4.0
		f := store.Filters{}.WithRange("star", &min, nil)
		assert.False(t, f.IsZero())
		assert.Nil(t, f.Ranges["star"].Max)
	})
}
