// internal/models/record.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// KnowledgeRecord is the per-disease knowledge entry. Unknown source fields are dropped.
type KnowledgeRecord struct {
	Name         string     `json:"name" db:"name"`
	Symptom      StringList `json:"symptom,omitempty" db:"symptom"`
	Cause        string     `json:"cause,omitempty" db:"cause"`
	CureWay      StringList `json:"cure_way,omitempty" db:"cure_way"`
	CureLasttime string     `json:"cure_lasttime,omitempty" db:"cure_lasttime"`
	CuredProb    string     `json:"cured_prob,omitempty" db:"cured_prob"`
	Desc         string     `json:"desc,omitempty" db:"description"`
}

// StringList is a []string stored as a JSON array in SQL columns.
type StringList []string

// Scan implements sql.Scanner.
func (s *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
	if len(raw) == 0 {
		*s = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to decode StringList: %w", err)
	}
	*s = out
	return nil
}

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
