package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// Render executes a layout plan into PDF bytes on an A4 portrait page.
func Render(plan []Instruction) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	for _, in := range plan {
		switch in.Op {
		case OpText:
			doc.Text(in.X, in.Y, in.Text)
		case OpRect:
			doc.Rect(in.X, in.Y, in.W, in.H, "D")
		case OpCircle:
			doc.Circle(in.X, in.Y, in.R, "D")
		case OpNewPage:
			doc.AddPage()
		case OpFont:
			doc.SetFont("Helvetica", in.Style, in.Size)
		case OpTextColor:
			doc.SetTextColor(in.Gray, in.Gray, in.Gray)
		case OpDrawColor:
			doc.SetDrawColor(in.Gray, in.Gray, in.Gray)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
