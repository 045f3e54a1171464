package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is a custom type for handling JSON arrays of strings in the
// database.
type StringSlice []string

// Value implements driver.Valuer interface for database storage
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// Scan implements sql.Scanner interface for database retrieval
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// GormDataType returns the data type for GORM
func (StringSlice) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (ss StringSlice) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// UnmarshalJSON implements json.Unmarshaler interface
func (ss *StringSlice) UnmarshalJSON(data []byte) error {
	var slice []string
	if err := json.Unmarshal(data, &slice); err != nil {
		return err
	}
	*ss = StringSlice(slice)
	return nil
}
