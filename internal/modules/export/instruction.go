package export

// Op identifies one drawing primitive in a layout plan.
type Op string

const (
	OpText      Op = "text"
	OpRect      Op = "rect"
	OpCircle    Op = "circle"
	OpNewPage   Op = "new_page"
	OpFont      Op = "font"
	OpTextColor Op = "text_color"
	OpDrawColor Op = "draw_color"
)

// Instruction is one step of a layout plan. Coordinates are millimetres on
// an A4 portrait page; colors are grayscale 0..255.
type Instruction struct {
	Op    Op
	Text  string
	X, Y  float64
	W, H  float64
	R     float64
	Size  float64
	Style string
	Gray  int
}

func text(s string, x, y float64) Instruction { return Instruction{Op: OpText, Text: s, X: x, Y: y} }
func rect(x, y, w, h float64) Instruction     { return Instruction{Op: OpRect, X: x, Y: y, W: w, H: h} }
func circle(x, y, r float64) Instruction      { return Instruction{Op: OpCircle, X: x, Y: y, R: r} }
func font(size float64, style string) Instruction {
	return Instruction{Op: OpFont, Size: size, Style: style}
}
func textColor(gray int) Instruction { return Instruction{Op: OpTextColor, Gray: gray} }
func drawColor(gray int) Instruction { return Instruction{Op: OpDrawColor, Gray: gray} }
