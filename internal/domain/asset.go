package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Asset references a binary stored in the remote object store. The entity
// holding it owns it exclusively.
type Asset struct {
	URL      string `json:"url"`
	RemoteID string `json:"remote_id"`
}

// Images is the ordered image sequence of a pet, stored as a JSONB array.
type Images []Asset

// Value implements driver.Valuer.
func (im Images) Value() (driver.Value, error) {
	if im == nil {
		im = Images{}
	}
	b, err := json.Marshal(im)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (im *Images) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*im = Images{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported images column type %T", src)
	}
	if len(raw) == 0 {
		return errors.New("empty images column")
	}
	return json.Unmarshal(raw, im)
}

// RemoteIDs lists the store ids in sequence order.
func (im Images) RemoteIDs() []string {
	ids := make([]string, 0, len(im))
	for _, a := range im {
		ids = append(ids, a.RemoteID)
	}
	return ids
}
