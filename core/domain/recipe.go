// ABOUTME: Recipe domain model, an opaque structured document fetched from a source URL
// ABOUTME: The collection preserves source order and is cached as a single JSON array

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Recipe is a schema-free structured record. The raw JSON bytes of the source
// document are kept as-is so that the payload handed to the renderer is exactly
// what the source served.
type Recipe struct {
	raw json.RawMessage
}

// ParseRecipe validates data as a single JSON value and wraps it.
func ParseRecipe(data []byte) (Recipe, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Recipe{}, errors.New("empty recipe document")
	}

	// Compact so that a record read back from the cache compares equal to
	// the one fetched from the network.
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return Recipe{}, err
	}
	return Recipe{raw: json.RawMessage(buf.Bytes())}, nil
}

// MustParseRecipe is like ParseRecipe but panics on invalid input.
// Intended for tests and fixed fixtures.
func MustParseRecipe(data string) Recipe {
	r, err := ParseRecipe([]byte(data))
	if err != nil {
		panic(err)
	}
	return r
}

// Raw returns the JSON encoding of the record.
func (r Recipe) Raw() json.RawMessage {
	return r.raw
}

// IsZero reports whether the record holds no document.
func (r Recipe) IsZero() bool {
	return len(r.raw) == 0
}

// Value decodes the record into a generic value: map[string]interface{},
// []interface{}, string, float64, bool or nil.
func (r Recipe) Value() (interface{}, error) {
	if r.IsZero() {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(r.raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Equal reports whether both records carry the same compacted JSON.
func (r Recipe) Equal(other Recipe) bool {
	return bytes.Equal(r.raw, other.raw)
}

// MarshalJSON implements json.Marshaler.
func (r Recipe) MarshalJSON() ([]byte, error) {
	if r.IsZero() {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	parsed, err := ParseRecipe(data)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Collection is an ordered sequence of recipes, in source URL order.
type Collection []Recipe

// Encode serializes the collection for storage as a JSON array of the raw
// records. json.Marshal is avoided since it would HTML-escape the records.
func (c Collection) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		raw, err := r.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// DecodeCollection parses a serialized collection.
func DecodeCollection(data []byte) (Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("stored collection is null")
	}
	return c, nil
}
