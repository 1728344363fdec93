package timesheet

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Entries is stored as a JSONB column; it implements sql.Scanner and
// driver.Valuer so sqlx can map it directly.
type Entries []Entry

func (e Entries) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *Entries) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		*e = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for timesheet entries", src)
	}
}
