package store

// MaxLimit caps a single page. The HTTP layer also clamps page_size, but
// the store enforces the ceiling so no caller can drag the whole table
// through one query.
const MaxLimit = 500

// DefaultLimit is used when a caller supplies no page size.
const DefaultLimit = 100

// Page describes an offset/limit window over a result set.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps the page to sane bounds: negative skip becomes 0,
// a zero or negative limit becomes DefaultLimit, and the limit is capped
// at MaxLimit.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Range is an inclusive numeric interval; a nil bound is unconstrained.
type Range struct {
	Min *float64
	Max *float64
}

// Filters is a sparse predicate set for record search. Absent entries
// impose no constraint; present entries compose as a logical AND.
//
// Keys are column names; each store validates them against its own
// whitelist, so a filter built from request parameters can never reach
// an unknown column.
type Filters struct {
	// Contains matches case-insensitive substrings (title, content, ...).
	Contains map[string]string
	// Equals matches categorical fields exactly (maker, brand, flavor, ...).
	Equals map[string]string
	// Ranges matches numeric fields against inclusive intervals (star, price).
	Ranges map[string]Range
	// Bools matches flag fields exactly (is_available).
	Bools map[string]bool
	// Tag matches records whose tag sequence contains this value anywhere.
	Tag string
}

// IsZero reports whether no predicate is set.
func (f Filters) IsZero() bool {
	return len(f.Contains) == 0 && len(f.Equals) == 0 && len(f.Ranges) == 0 &&
		len(f.Bools) == 0 && f.Tag == ""
}

// WithContains returns a copy of f with a substring predicate added.
// Empty values are ignored so request parameters can be passed through
// without presence checks.
func (f Filters) WithContains(column, value string) Filters {
	if value == "" {
		return f
	}
	if f.Contains == nil {
		f.Contains = make(map[string]string)
	}
	f.Contains[column] = value
	return f
}

// WithEquals returns a copy of f with an exact-match predicate added.
func (f Filters) WithEquals(column, value string) Filters {
	if value == "" {
		return f
	}
	if f.Equals == nil {
		f.Equals = make(map[string]string)
	}
	f.Equals[column] = value
	return f
}

// WithRange returns a copy of f with an inclusive range predicate added.
// When both bounds are nil the predicate is ignored.
func (f Filters) WithRange(column string, min, max *float64) Filters {
	if min == nil && max == nil {
		return f
	}
	if f.Ranges == nil {
		f.Ranges = make(map[string]Range)
	}
	f.Ranges[column] = Range{Min: min, Max: max}
	return f
}

// WithBool returns a copy of f with an exact-match flag predicate
// added. A nil value is ignored, matching the other builders.
func (f Filters) WithBool(column string, value *bool) Filters {
	if value == nil {
		return f
	}
	if f.Bools == nil {
		f.Bools = make(map[string]bool)
	}
	f.Bools[column] = *value
	return f
}

// WithTag returns a copy of f with a tag membership predicate.
func (f Filters) WithTag(tag string) Filters {
	f.Tag = tag
	return f
}
