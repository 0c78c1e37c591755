package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONDoc is an opaque document persisted as JSONB. Store design, settings,
// product-display preferences, KYC payloads, and shipping addresses all use it.
type JSONDoc map[string]any

// Value marshals the document into JSON for Postgres.
func (d JSONDoc) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the document.
func (d *JSONDoc) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("jsondoc: unsupported scan type %T", value)
	}

	result := make(JSONDoc)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*d = result
	return nil
}

// IsEmpty reports whether the document carries no keys. Missing sub-documents
// resolve to component defaults rather than errors.
func (d JSONDoc) IsEmpty() bool {
	return len(d) == 0
}
