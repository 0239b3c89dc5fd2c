package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// FieldKind enumerates the input types a form field can take. Rendering and
// PDF export both switch exhaustively on this type, so adding a kind forces
// every call site to handle it.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldNumber   FieldKind = "number"
	FieldTel      FieldKind = "tel"
	FieldDate     FieldKind = "date"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldRadio    FieldKind = "radio"
	FieldCheckbox FieldKind = "checkbox"
)

// Valid reports whether k is a known field kind.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldText, FieldEmail, FieldNumber, FieldTel, FieldDate,
		FieldTextarea, FieldSelect, FieldRadio, FieldCheckbox:
		return true
	}
	return false
}

// NeedsOptions reports whether the kind requires a non-empty options list.
func (k FieldKind) NeedsOptions() bool {
	return k == FieldSelect || k == FieldRadio
}

// IsFlag reports whether values for this kind are booleans rather than text.
func (k FieldKind) IsFlag() bool {
	return k == FieldCheckbox
}

// FieldSchema describes one input slot within a form definition.
// Placeholder doubles as the checkbox's affirmative label.
type FieldSchema struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// Validate checks the schema invariants for a single field.
func (f FieldSchema) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("field %q: id is required", f.Label)
	}
	if strings.TrimSpace(f.Label) == "" {
		return fmt.Errorf("field %q: label is required", f.ID)
	}
	if !f.Kind.Valid() {
		return fmt.Errorf("field %q: unknown type %q", f.ID, f.Kind)
	}
	if f.Kind.NeedsOptions() && len(f.Options) == 0 {
		return fmt.Errorf("field %q: type %q requires options", f.ID, f.Kind)
	}
	return nil
}

// FieldList stores an ordered field sequence as a JSON column.
type FieldList []FieldSchema

func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]FieldSchema(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FieldList) Scan(value interface{}) error {
	if l == nil {
		return fmt.Errorf("models.FieldList: Scan on nil pointer")
	}
	if value == nil {
		*l = FieldList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models.FieldList: unsupported Scan type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		*l = FieldList{}
		return nil
	}

	var fields []FieldSchema
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("models.FieldList: %w", err)
	}
	*l = fields
	return nil
}
