package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONList is a []string stored as a JSON column.
type JSONList []string

func (l JSONList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *JSONList) Scan(src interface{}) error {
	if src == nil {
		*l = JSONList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONList: %T", src)
	}
	if len(data) == 0 {
		*l = JSONList{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}
