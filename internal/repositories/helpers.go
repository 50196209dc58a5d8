package repositories

import (
	"encoding/json"
	"errors"
)

// ErrNotFound marks lookups where the record does not exist, as opposed to
// the store being unreachable. Callers branch with errors.Is.
var ErrNotFound = errors.New("record not found")

// toJSON renders a value for a jsonb column inside a map-based Updates call,
// where gorm's field serializers do not apply.
func toJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
