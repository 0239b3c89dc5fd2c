package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FieldValue is a tagged variant holding one submitted answer: either text
// or a boolean flag (checkbox). On the wire it is a plain JSON string or
// bool, matching what clients send for each field.
type FieldValue struct {
	flag   bool
	str    string
	isFlag bool
}

// TextValue wraps a text answer.
func TextValue(s string) FieldValue { return FieldValue{str: s} }

// FlagValue wraps a boolean answer.
func FlagValue(b bool) FieldValue { return FieldValue{flag: b, isFlag: true} }

// IsFlag reports whether the value is a boolean.
func (v FieldValue) IsFlag() bool { return v.isFlag }

// Flag returns the boolean answer; false for text values.
func (v FieldValue) Flag() bool { return v.isFlag && v.flag }

// Text returns the text answer; empty for flag values.
func (v FieldValue) Text() string {
	if v.isFlag {
		return ""
	}
	return v.str
}

// Empty reports whether a text value carries no content. Flag values are
// never empty; an unchecked checkbox is an explicit "No".
func (v FieldValue) Empty() bool { return !v.isFlag && v.str == "" }

func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.isFlag {
		return json.Marshal(v.flag)
	}
	return json.Marshal(v.str)
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = FlagValue(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextValue(s)
		return nil
	}
	return fmt.Errorf("models.FieldValue: expected string or bool, got %s", data)
}

// ValueMap maps field ids to submitted values, stored as a JSON column.
type ValueMap map[string]FieldValue

func (m ValueMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]FieldValue(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *ValueMap) Scan(value interface{}) error {
	if m == nil {
		return fmt.Errorf("models.ValueMap: Scan on nil pointer")
	}
	if value == nil {
		*m = ValueMap{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models.ValueMap: unsupported Scan type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		*m = ValueMap{}
		return nil
	}

	var values map[string]FieldValue
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("models.ValueMap: %w", err)
	}
	*m = values
	return nil
}
