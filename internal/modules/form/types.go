package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dsp-forms/core/internal/models"
)

// CreateDTO is the admin form-authoring payload. Forms are created whole;
// there is no per-field edit operation.
type CreateDTO struct {
	Title        string               `json:"title" binding:"required"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	Fields       []models.FieldSchema `json:"fields" binding:"required"`
	IsPublic     *bool                `json:"is_public"`
	RequiresAuth bool                 `json:"requires_auth"`
}

var errFormNotFound = errors.New("form not found")

// validate applies the all-or-nothing field checks and assigns ids to fields
// that arrived without one. The DTO is mutated in place; nothing is persisted
// unless every field passes.
func (d *CreateDTO) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if len(d.Fields) == 0 {
		return errors.New("at least one field is required")
	}
	seen := make(map[string]bool, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		if strings.TrimSpace(f.ID) == "" {
			f.ID = fmt.Sprintf("field_%d", i+1)
		}
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.ID] {
			return fmt.Errorf("field %q: duplicate id", f.ID)
		}
		seen[f.ID] = true
	}
	return nil
}
