package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringList is an ordered list of strings stored as JSONB.
type StringList []string

// Value returns json value, implement driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan scan value into StringList, implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*l = StringList(result)
	return nil
}

// Contains reports whether the list holds s.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// HourMap maps a weekday name to its ordered list of bookable
// time-of-day strings ("09:00", "10:00", ...). Stored as JSONB.
type HourMap map[string][]string

// Value returns json value, implement driver.Valuer interface
func (m HourMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(map[string][]string{})
	}
	return json.Marshal(map[string][]string(m))
}

// Scan scan value into HourMap, implements sql.Scanner interface
func (m *HourMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	result := map[string][]string{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*m = HourMap(result)
	return nil
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	result := map[string]interface{}{}
	err = json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
}
