package submission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dsp-forms/core/internal/models"
)

// Submitter describes who is sending a submission. Authenticated callers
// carry their account identity; anonymous callers must supply name and
// email inside the submitted data.
type Submitter struct {
	UserID        string
	Name          string
	Email         string
	Authenticated bool
}

var (
	errAccessDenied      = errors.New("this form requires you to sign in")
	errFormMissing       = errors.New("form not found")
	errSubmissionMissing = errors.New("submission not found")
)

// validationError marks client-fixable payload problems so the handler can
// answer 422 instead of 500.
type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func invalidf(format string, args ...interface{}) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// buildRecord validates submitted data against the form's schema and
// assembles the row to persist. Anonymous submitters must include the
// synthetic identity keys, which stay inside data and are also copied into
// the submitter columns. Unknown keys are rejected outright.
func buildRecord(form *models.FormModel, data models.ValueMap, who Submitter) (*models.SubmissionModel, error) {
	if form.RequiresAuth && !who.Authenticated {
		return nil, errAccessDenied
	}

	rec := &models.SubmissionModel{
		FormID: form.ID,
		Data:   data,
		Status: models.StatusPending,
	}
	if data == nil {
		rec.Data = models.ValueMap{}
	}

	if who.Authenticated {
		uid := who.UserID
		rec.UserID = &uid
		rec.SubmitterName = who.Name
		rec.SubmitterEmail = who.Email
	} else {
		name := strings.TrimSpace(rec.Data[models.SyntheticNameKey].Text())
		email := strings.TrimSpace(rec.Data[models.SyntheticEmailKey].Text())
		if name == "" {
			return nil, invalidf("your name is required")
		}
		if email == "" {
			return nil, invalidf("your email is required")
		}
		rec.SubmitterName = name
		rec.SubmitterEmail = email
	}

	known := make(map[string]models.FieldSchema, len(form.Fields))
	for _, f := range form.Fields {
		known[f.ID] = f
	}

	for key, val := range rec.Data {
		if key == models.SyntheticNameKey || key == models.SyntheticEmailKey {
			if who.Authenticated {
				return nil, invalidf("unexpected field %q", key)
			}
			continue
		}
		field, ok := known[key]
		if !ok {
			return nil, invalidf("unexpected field %q", key)
		}
		if field.Kind.IsFlag() != val.IsFlag() {
			if field.Kind.IsFlag() {
				return nil, invalidf("field %q expects a boolean", key)
			}
			return nil, invalidf("field %q expects text", key)
		}
		if field.Kind.NeedsOptions() && !val.Empty() && !contains(field.Options, val.Text()) {
			return nil, invalidf("field %q: %q is not one of the options", key, val.Text())
		}
	}

	for _, f := range form.Fields {
		if !f.Required {
			continue
		}
		val, ok := rec.Data[f.ID]
		if f.Kind.IsFlag() {
			if !ok {
				return nil, invalidf("field %q is required", f.ID)
			}
			continue
		}
		if !ok || val.Empty() {
			return nil, invalidf("field %q is required", f.ID)
		}
	}

	return rec, nil
}

func contains(opts []string, s string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}
