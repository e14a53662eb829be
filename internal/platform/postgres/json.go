package postgres

import (
	"encoding/json"
	"fmt"
)

// jsonbFromStrings marshals a string slice for a JSONB column. A nil
// slice is stored as an empty array so reads never produce SQL NULL.
func jsonbFromStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string array: %w", err)
	}
	return data, nil
}

// stringsFromJSONB decodes a JSONB column value back into a string
// slice. NULL and empty input decode to nil.
func stringsFromJSONB(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode string array: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
