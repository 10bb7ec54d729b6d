package cocktaildb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// envelope is the top-level shape of every API response.
// "drinks" is an array, null, or the string "None Found" depending on the
// endpoint, so it is decoded lazily.
type envelope struct {
	Drinks json.RawMessage `json:"drinks"`
}

// record is one element of the drinks array. Every field the API sends is a
// string or null; strIngredientN/strMeasureN are numbered 1 to 15.
type record map[string]any

// records decodes the drinks field, treating null and any non-array value as
// no results.
func (e envelope) records() ([]record, error) {
	raw := bytes.TrimSpace(e.Drinks)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil
	}

	var out []record
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode drinks: %w", err)
	}
	return out, nil
}

// str returns the trimmed string value of key, or "" when it is absent,
// null or not a string.
func (r record) str(key string) string {
	v, ok := r[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
