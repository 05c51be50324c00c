// Package layout computes the printable geometry of an invoice document.
// Build turns an Invoice plus a BusinessProfile into a Plan: an ordered
// list of backend-agnostic draw instructions (boxes, rules, text runs)
// that any rendering backend can paint onto a page. The computation is
// pure geometry and text math; it cannot fail.
package layout

// Plan describes a complete document as one or more pages of ordered
// draw instructions.
type Plan struct {
	PageW float64
	PageH float64
	Pages []Page
}

// Page holds the instructions for a single page, in draw order.
type Page struct {
	Ops []Op
}

// Op is a single draw instruction: a Box, Rule or TextRun.
type Op interface {
	op()
}

// Box is a rectangle, optionally filled and/or bordered.
type Box struct {
	X, Y, W, H float64
	Fill       string // hex color, empty for no fill
	Border     bool
}

// Rule is a straight line segment.
type Rule struct {
	X1, Y1, X2, Y2 float64
}

// TextRun places a piece of text. Width bounds alignment and wrapping;
// zero means natural width.
type TextRun struct {
	Text  string
	X, Y  float64
	Size  float64
	Bold  bool
	Align string // "", "C" or "R"
	Width float64
}

func (Box) op()     {}
func (Rule) op()    {}
func (TextRun) op() {}
