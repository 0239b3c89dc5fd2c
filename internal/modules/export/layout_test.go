package export

import (
	"testing"
	"time"

	"github.com/dsp-forms/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textOps(plan []Instruction) []string {
	var out []string
	for _, in := range plan {
		if in.Op == OpText {
			out = append(out, in.Text)
		}
	}
	return out
}

func countOp(plan []Instruction, op Op) int {
	n := 0
	for _, in := range plan {
		if in.Op == op {
			n++
		}
	}
	return n
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "(not provided)", DisplayValue(models.FieldValue{}, false))
	assert.Equal(t, "(not provided)", DisplayValue(models.TextValue(""), true))
	assert.Equal(t, "Yes", DisplayValue(models.FlagValue(true), true))
	assert.Equal(t, "No", DisplayValue(models.FlagValue(false), true))
	assert.Equal(t, "hello", DisplayValue(models.TextValue("hello"), true))
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "Building_Permit_blank.pdf", BlankFileName("Building Permit"))
	assert.Equal(t, "Building_Permit_filled.pdf", FilledFileName("Building Permit"))
	assert.Equal(t, "Building_Permit_submission.pdf", OwnSubmissionFileName("Building Permit"))
	assert.Equal(t, "A_B_blank.pdf", BlankFileName("A \t B"))
	assert.Equal(t, "submission_abcd1234.pdf", SubmissionFileName("abcd1234-5678-90ab"))
	assert.Equal(t, "submission_short.pdf", SubmissionFileName("short"))
}

func TestLayoutBlankHeader(t *testing.T) {
	f := &models.FormModel{Title: "Survey", Description: "About you"}
	plan := LayoutBlank(f)

	texts := textOps(plan)
	require.GreaterOrEqual(t, len(texts), 2)
	assert.Equal(t, "Survey", texts[0])
	assert.Equal(t, "About you", texts[1])

	// Without a description the body starts higher up.
	f2 := &models.FormModel{Title: "Survey", Fields: models.FieldList{
		{ID: "a", Label: "A", Kind: models.FieldText},
	}}
	plan2 := LayoutBlank(f2)
	var labelY float64
	for _, in := range plan2 {
		if in.Op == OpText && in.Text == "A" {
			labelY = in.Y
		}
	}
	assert.Equal(t, 40.0, labelY)
}

func TestLayoutBlankRequiredMarker(t *testing.T) {
	f := &models.FormModel{Title: "T", Fields: models.FieldList{
		{ID: "a", Label: "Name", Kind: models.FieldText, Required: true},
		{ID: "b", Label: "Nickname", Kind: models.FieldText},
	}}
	texts := textOps(LayoutBlank(f))
	assert.Contains(t, texts, "Name *")
	assert.Contains(t, texts, "Nickname")
}

func TestLayoutBlankRadioMarkers(t *testing.T) {
	f := &models.FormModel{Title: "T", Fields: models.FieldList{
		{ID: "transport", Label: "Transport", Kind: models.FieldRadio,
			Options: []string{"Car", "Bike", "Bus"}},
	}}
	plan := LayoutBlank(f)

	// One circle per option, each followed by its caption at x 27.
	assert.Equal(t, 3, countOp(plan, OpCircle))
	texts := textOps(plan)
	assert.Equal(t, []string{"T", "Transport", "Car", "Bike", "Bus"}, texts)

	for _, in := range plan {
		if in.Op == OpCircle {
			assert.Equal(t, 22.0, in.X)
			assert.Equal(t, 2.0, in.R)
		}
		if in.Op == OpText && (in.Text == "Car" || in.Text == "Bike" || in.Text == "Bus") {
			assert.Equal(t, 27.0, in.X)
		}
	}
}

func TestLayoutBlankSelectShowsOptions(t *testing.T) {
	f := &models.FormModel{Title: "T", Fields: models.FieldList{
		{ID: "district", Label: "District", Kind: models.FieldSelect,
			Options: []string{"North", "South"}},
	}}
	texts := textOps(LayoutBlank(f))
	assert.Contains(t, texts, "Options: North, South")
}

func TestLayoutBlankShapesPerKind(t *testing.T) {
	f := &models.FormModel{Title: "T", Fields: models.FieldList{
		{ID: "a", Label: "Text", Kind: models.FieldText},
		{ID: "b", Label: "Notes", Kind: models.FieldTextarea},
		{ID: "c", Label: "Agree", Kind: models.FieldCheckbox},
	}}
	plan := LayoutBlank(f)

	var rects []Instruction
	for _, in := range plan {
		if in.Op == OpRect {
			rects = append(rects, in)
		}
	}
	require.Len(t, rects, 3)
	assert.Equal(t, 8.0, rects[0].H)  // single-line box
	assert.Equal(t, 20.0, rects[1].H) // textarea box
	assert.Equal(t, 4.0, rects[2].H)  // checkbox square
	assert.Equal(t, 4.0, rects[2].W)
}

func TestLayoutBlankPageBreak(t *testing.T) {
	fields := make(models.FieldList, 30)
	for i := range fields {
		fields[i] = models.FieldSchema{ID: "f", Label: "Field", Kind: models.FieldText}
	}
	f := &models.FormModel{Title: "Long", Fields: fields}
	plan := LayoutBlank(f)

	require.GreaterOrEqual(t, countOp(plan, OpNewPage), 1)

	// Every drawn label sits above the break threshold.
	for _, in := range plan {
		if in.Op == OpText {
			assert.LessOrEqual(t, in.Y, 270.0+6.0)
		}
	}

	// The cursor restarts at the top of the fresh page.
	for i, in := range plan {
		if in.Op == OpNewPage {
			next := plan[i+1]
			require.Equal(t, OpText, next.Op)
			assert.Equal(t, 20.0, next.Y)
			break
		}
	}
}

func TestLayoutFilledAnswers(t *testing.T) {
	f := &models.FormModel{Title: "Survey", Fields: models.FieldList{
		{ID: "name", Label: "Name", Kind: models.FieldText},
		{ID: "subscribed", Label: "Subscribed", Kind: models.FieldCheckbox},
		{ID: "skipped", Label: "Skipped", Kind: models.FieldText},
	}}
	data := models.ValueMap{
		"name":       models.TextValue("Jane"),
		"subscribed": models.FlagValue(false),
	}
	texts := textOps(LayoutFilled(f, data))
	assert.Equal(t, []string{"Survey", "Name", "Jane", "Subscribed", "No", "Skipped", "(not provided)"}, texts)
}

func TestLayoutSubmissionHeader(t *testing.T) {
	sub := &models.SubmissionModel{
		SubmitterName:  "Jane Doe",
		SubmitterEmail: "jane@example.com",
		Status:         models.StatusApproved,
		SubmittedAt:    time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
		Data:           models.ValueMap{},
		Form: &models.FormModel{
			Title:  "Permit",
			Fields: models.FieldList{},
		},
	}
	texts := textOps(LayoutSubmission(sub))
	assert.Equal(t, []string{
		"Permit",
		"Submitted by: Jane Doe (jane@example.com)",
		"Date: 3/9/2026",
		"Status: approved",
	}, texts)
}

func TestLayoutSubmissionAnonymousFallbacks(t *testing.T) {
	sub := &models.SubmissionModel{
		Status:      models.StatusPending,
		SubmittedAt: time.Now(),
		Data:        models.ValueMap{},
	}
	texts := textOps(LayoutSubmission(sub))
	assert.Equal(t, "Submission", texts[0])
	assert.Equal(t, "Submitted by: Anonymous (N/A)", texts[1])
}

func TestLayoutOwnSubmissionHeader(t *testing.T) {
	sub := &models.SubmissionModel{
		Status:      models.StatusPending,
		SubmittedAt: time.Date(2026, 11, 21, 9, 0, 0, 0, time.UTC),
		Data:        models.ValueMap{},
		Form: &models.FormModel{
			Title:  "Permit",
			Fields: models.FieldList{},
		},
	}
	texts := textOps(LayoutOwnSubmission(sub))
	assert.Equal(t, []string{
		"Permit",
		"Submitted: 11/21/2026",
		"Status: pending",
	}, texts)
}

func TestRenderProducesPDF(t *testing.T) {
	f := &models.FormModel{Title: "Survey", Description: "About you", Fields: models.FieldList{
		{ID: "a", Label: "Name", Kind: models.FieldText, Required: true},
		{ID: "b", Label: "Transport", Kind: models.FieldRadio, Options: []string{"Car", "Bike"}},
	}}
	pdf, err := Render(LayoutBlank(f))
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
