package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is a []string stored as JSONB. The pgx stdlib driver has no
// native text-array support through database/sql, so list fields round-trip
// through JSON instead.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("StringList: unsupported scan source")
	}
}
