package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yolo-life/yolo-api/internal/store"
)

// searchColumns declares which columns of a table may appear in search
// filters, by predicate kind. Filter keys are checked against these sets
// before any SQL is built, so request-supplied column names never reach
// the query text.
type searchColumns struct {
	Contains map[string]bool
	Equals   map[string]bool
	Ranges   map[string]bool
	Bools    map[string]bool
	// Tags names the JSONB array column used for tag membership, or ""
	// when the table has no tags.
	Tags string
}

// buildWhere renders the filters into a WHERE clause body (without the
// keyword) and its positional arguments, numbering placeholders from 1.
// An empty clause means no predicates. Predicates are emitted in sorted
// column order so the same filters always produce the same SQL, which
// keeps Search and SearchCount provably aligned.
func (sc searchColumns) buildWhere(f store.Filters) (string, []any, error) {
	var conds []string
	var args []any

	next := func() int { return len(args) + 1 }

	for _, col := range sortedKeys(f.Contains) {
		if !sc.Contains[col] {
			return "", nil, fmt.Errorf("%w: %s", store.ErrUnknownColumn, col)
		}
		conds = append(conds, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, col, next()))
		args = append(args, "%"+escapeLike(f.Contains[col])+"%")
	}

	for _, col := range sortedKeys(f.Equals) {
		if !sc.Equals[col] {
			return "", nil, fmt.Errorf("%w: %s", store.ErrUnknownColumn, col)
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", col, next()))
		args = append(args, f.Equals[col])
	}

	for _, col := range sortedKeys(f.Bools) {
		if !sc.Bools[col] {
			return "", nil, fmt.Errorf("%w: %s", store.ErrUnknownColumn, col)
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", col, next()))
		args = append(args, f.Bools[col])
	}

	for _, col := range sortedKeys(f.Ranges) {
		if !sc.Ranges[col] {
			return "", nil, fmt.Errorf("%w: %s", store.ErrUnknownColumn, col)
		}
		r := f.Ranges[col]
		if r.Min != nil {
			conds = append(conds, fmt.Sprintf("%s >= $%d", col, next()))
			args = append(args, *r.Min)
		}
		if r.Max != nil {
			conds = append(conds, fmt.Sprintf("%s <= $%d", col, next()))
			args = append(args, *r.Max)
		}
	}

	if f.Tag != "" {
		if sc.Tags == "" {
			return "", nil, fmt.Errorf("%w: tags", store.ErrUnknownColumn)
		}
		tagJSON, err := jsonbFromStrings([]string{f.Tag})
		if err != nil {
			return "", nil, err
		}
		conds = append(conds, fmt.Sprintf("%s @> $%d::jsonb", sc.Tags, next()))
		args = append(args, string(tagJSON))
	}

	return strings.Join(conds, " AND "), args, nil
}

// escapeLike neutralizes LIKE metacharacters in a user-supplied value so
// a search for "100%" matches the literal text.
func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "%", `\%`)
	value = strings.ReplaceAll(value, "_", `\_`)
	return value
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
