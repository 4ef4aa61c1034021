package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSONMap stores an arbitrary JSON object inside a JSONB column.
type JSONMap map[string]any

// Value serializes the map for persistence. The receiver is a value so the
// driver sees a Valuer even when the field is not addressable; empty maps
// persist as NULL.
func (j JSONMap) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan hydrates the map from a JSONB column.
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonmap: unsupported scan type %T", value)
	}
	if len(raw) == 0 {
		*j = nil
		return nil
	}
	var decoded JSONMap
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return errors.New("jsonmap: invalid JSON payload")
	}
	*j = decoded
	return nil
}
