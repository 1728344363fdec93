package settings

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Setting is a single configuration record. Value is arbitrary JSON owned by
// the portal frontend; the server stores and serves it opaquely.
type Setting struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Key         string    `json:"key" db:"key"`
	Value       Value     `json:"value" db:"value"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	UpdatedBy   uuid.UUID `json:"updated_by" db:"updated_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Value is a raw JSON document stored in a JSONB column.
type Value json.RawMessage

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	*v = append((*v)[0:0], data...)
	return nil
}

func (v Value) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return []byte(v), nil
}

func (v *Value) Scan(src any) error {
	switch s := src.(type) {
	case []byte:
		*v = append((*v)[0:0], s...)
		return nil
	case string:
		*v = Value(s)
		return nil
	case nil:
		*v = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for setting value", src)
	}
}

// UpsertSettingRequest creates or replaces a setting by key.
type UpsertSettingRequest struct {
	Key         string `json:"key" validate:"required"`
	Value       Value  `json:"value" validate:"required"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}
