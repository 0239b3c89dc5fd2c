package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dsp-forms/core/internal/models"
)

// Page geometry shared by every variant: content runs from y 20, a new page
// begins once the cursor passes 270.
const (
	pageBreakY = 270
	pageTopY   = 20
)

type cursor struct {
	y   float64
	ins []Instruction
}

func (c *cursor) add(ins ...Instruction) { c.ins = append(c.ins, ins...) }

func (c *cursor) breakPage() {
	if c.y > pageBreakY {
		c.add(Instruction{Op: OpNewPage})
		c.y = pageTopY
	}
}

// header emits the title line and optional gray description, leaving the
// cursor where the body should start.
func header(c *cursor, title, description string) {
	c.add(font(20, ""), text(title, 20, 25))
	if description != "" {
		c.add(font(11, ""), textColor(100), text(description, 20, 35), textColor(0))
		c.y = 50
	} else {
		c.y = 40
	}
}

// LayoutBlank produces the printable empty template for a form: each field's
// label followed by the appropriate fill-in shape.
func LayoutBlank(form *models.FormModel) []Instruction {
	c := &cursor{}
	header(c, form.Title, form.Description)
	c.add(font(12, ""))

	for _, f := range form.Fields {
		c.breakPage()

		label := f.Label
		if f.Required {
			label += " *"
		}
		c.add(text(label, 20, c.y))
		c.y += 6

		switch {
		case f.Kind == models.FieldTextarea:
			c.add(drawColor(180), rect(20, c.y, 170, 20))
			c.y += 28
		case f.Kind == models.FieldCheckbox:
			c.add(drawColor(180), rect(20, c.y-3, 4, 4), text("Yes", 27, c.y))
			c.y += 10
		case f.Kind == models.FieldRadio && len(f.Options) > 0:
			for _, opt := range f.Options {
				c.add(circle(22, c.y-1, 2), text(opt, 27, c.y))
				c.y += 7
			}
			c.y += 3
		case f.Kind == models.FieldSelect && len(f.Options) > 0:
			c.add(text("Options: "+strings.Join(f.Options, ", "), 20, c.y))
			c.y += 6
			c.add(drawColor(180), rect(20, c.y, 170, 8))
			c.y += 15
		default:
			c.add(drawColor(180), rect(20, c.y, 170, 8))
			c.y += 15
		}
	}
	return c.ins
}

// LayoutFilled produces a copy of the form with the given answers, for the
// submitter's own download right after submitting.
func LayoutFilled(form *models.FormModel, data models.ValueMap) []Instruction {
	c := &cursor{}
	header(c, form.Title, form.Description)
	c.add(font(12, ""))
	answers(c, form.Fields, data)
	return c.ins
}

// LayoutSubmission produces the admin review copy, headed by the submitter's
// identity, the submission date and the review status.
func LayoutSubmission(sub *models.SubmissionModel) []Instruction {
	title := "Submission"
	var fields models.FieldList
	if sub.Form != nil {
		title = sub.Form.Title
		fields = sub.Form.Fields
	}

	name := sub.SubmitterName
	if name == "" {
		name = "Anonymous"
	}
	email := sub.SubmitterEmail
	if email == "" {
		email = "N/A"
	}

	c := &cursor{}
	c.add(font(20, ""), text(title, 20, 25))
	c.add(font(10, ""), textColor(100),
		text(fmt.Sprintf("Submitted by: %s (%s)", name, email), 20, 35),
		text("Date: "+formatDate(sub.SubmittedAt), 20, 41),
		text("Status: "+string(sub.Status), 20, 47),
		textColor(0))
	c.y = 60

	c.add(font(12, ""))
	answers(c, fields, sub.Data)
	return c.ins
}

// LayoutOwnSubmission produces the "my submissions" copy, headed by the
// submission date and status only.
func LayoutOwnSubmission(sub *models.SubmissionModel) []Instruction {
	title := "Form Submission"
	var fields models.FieldList
	if sub.Form != nil {
		title = sub.Form.Title
		fields = sub.Form.Fields
	}

	c := &cursor{}
	c.add(font(20, ""), text(title, 20, 25))
	c.add(font(10, ""), textColor(100),
		text("Submitted: "+formatDate(sub.SubmittedAt), 20, 35),
		text("Status: "+string(sub.Status), 20, 41),
		textColor(0))
	c.y = 55

	c.add(font(12, ""))
	answers(c, fields, sub.Data)
	return c.ins
}

// answers renders the bold label / plain value pairs shared by every filled
// variant.
func answers(c *cursor, fields models.FieldList, data models.ValueMap) {
	for _, f := range fields {
		c.breakPage()

		c.add(font(12, "B"), text(f.Label, 20, c.y))
		c.y += 7

		val, ok := data[f.ID]
		c.add(font(12, ""), text(DisplayValue(val, ok), 20, c.y))
		c.y += 10
	}
}

// DisplayValue renders one answer for print: missing or blank text becomes
// "(not provided)", flags become Yes/No, anything else is the text itself.
func DisplayValue(val models.FieldValue, present bool) string {
	if !present || val.Empty() {
		return "(not provided)"
	}
	if val.IsFlag() {
		if val.Flag() {
			return "Yes"
		}
		return "No"
	}
	return val.Text()
}

var whitespace = regexp.MustCompile(`\s+`)

func slugTitle(title string) string {
	return whitespace.ReplaceAllString(title, "_")
}

// BlankFileName names the blank-template download for a form title.
func BlankFileName(title string) string { return slugTitle(title) + "_blank.pdf" }

// FilledFileName names the filled-copy download for a form title.
func FilledFileName(title string) string { return slugTitle(title) + "_filled.pdf" }

// OwnSubmissionFileName names the "my submissions" download for a form title.
func OwnSubmissionFileName(title string) string { return slugTitle(title) + "_submission.pdf" }

// SubmissionFileName names the admin review download for a submission id.
func SubmissionFileName(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "submission_" + id + ".pdf"
}

// formatDate matches the short locale date the review screens show.
func formatDate(t time.Time) string { return t.Format("1/2/2006") }
