package render

import "github.com/dsp-forms/core/internal/models"

// Control names the widget family the client should draw for a field.
type Control string

const (
	ControlInput    Control = "input"
	ControlTextarea Control = "textarea"
	ControlSelect   Control = "select"
	ControlRadio    Control = "radio"
	ControlCheckbox Control = "checkbox"
)

// Widget is one renderable slot in a form. Synthetic widgets are the
// identity inputs injected for anonymous submitters; they are not part of
// the form's field schema.
type Widget struct {
	FieldID       string   `json:"field_id"`
	Label         string   `json:"label"`
	Control       Control  `json:"control"`
	InputType     string   `json:"input_type,omitempty"`
	Required      bool     `json:"required"`
	Placeholder   string   `json:"placeholder,omitempty"`
	Options       []string `json:"options,omitempty"`
	CheckboxLabel string   `json:"checkbox_label,omitempty"`
	Synthetic     bool     `json:"synthetic,omitempty"`
}

// Plan is the server-side description of how a form should be presented.
type Plan struct {
	FormID       string   `json:"form_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	AccessDenied bool     `json:"access_denied"`
	Widgets      []Widget `json:"widgets"`
}

// BuildPlan turns a form definition into widget descriptors. Forms that
// require authentication produce an access-denied plan with no widgets for
// anonymous callers. Anonymous callers otherwise get two extra required
// identity widgets ahead of the form's own fields.
func BuildPlan(form *models.FormModel, authenticated bool) Plan {
	p := Plan{
		FormID:      form.ID,
		Title:       form.Title,
		Description: form.Description,
	}

	if form.RequiresAuth && !authenticated {
		p.AccessDenied = true
		p.Widgets = []Widget{}
		return p
	}

	widgets := make([]Widget, 0, len(form.Fields)+2)
	if !authenticated {
		widgets = append(widgets,
			Widget{FieldID: models.SyntheticNameKey, Label: "Your Name", Control: ControlInput, InputType: "text", Required: true, Synthetic: true},
			Widget{FieldID: models.SyntheticEmailKey, Label: "Your Email", Control: ControlInput, InputType: "email", Required: true, Synthetic: true},
		)
	}
	for _, f := range form.Fields {
		widgets = append(widgets, widgetFor(f))
	}
	p.Widgets = widgets
	return p
}

func widgetFor(f models.FieldSchema) Widget {
	w := Widget{
		FieldID:     f.ID,
		Label:       f.Label,
		Required:    f.Required,
		Placeholder: f.Placeholder,
	}

	switch f.Kind {
	case models.FieldTextarea:
		w.Control = ControlTextarea
	case models.FieldSelect:
		w.Control = ControlSelect
		w.Options = f.Options
	case models.FieldRadio:
		w.Control = ControlRadio
		w.Options = f.Options
	case models.FieldCheckbox:
		w.Control = ControlCheckbox
		w.Placeholder = ""
		w.CheckboxLabel = f.Placeholder
		if w.CheckboxLabel == "" {
			w.CheckboxLabel = "Yes"
		}
	case models.FieldText, models.FieldEmail, models.FieldNumber,
		models.FieldTel, models.FieldDate:
		w.Control = ControlInput
		w.InputType = string(f.Kind)
	default:
		// Unknown kinds cannot survive create-time validation; fall back
		// to a plain text input rather than dropping the field.
		w.Control = ControlInput
		w.InputType = "text"
	}
	return w
}
