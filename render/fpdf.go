// Package render paints a computed layout plan onto PDF bytes. The
// layout engine specifies geometry in backend-agnostic terms; this
// package holds the one concrete backend, built on gofpdf with absolute
// positioning.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"invoicegen/layout"
)

// Renderer turns a layout plan into a finished document byte stream.
type Renderer interface {
	Render(p layout.Plan) ([]byte, error)
}

// FPDF renders plans with gofpdf. The zero value is ready to use and
// safe for concurrent use; each Render call builds its own document.
type FPDF struct{}

// Render draws every page of the plan and returns the PDF bytes.
func (FPDF) Render(p layout.Plan) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)

	for _, page := range p.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch v := op.(type) {
			case layout.Box:
				drawBox(pdf, v)
			case layout.Rule:
				pdf.Line(v.X1, v.Y1, v.X2, v.Y2)
			case layout.TextRun:
				drawText(pdf, v)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	return buf.Bytes(), nil
}

func drawBox(pdf *gofpdf.Fpdf, b layout.Box) {
	style := "D"
	if b.Fill != "" {
		r, g, bl := hexColor(b.Fill)
		pdf.SetFillColor(r, g, bl)
		if b.Border {
			style = "FD"
		} else {
			style = "F"
		}
	}
	pdf.Rect(b.X, b.Y, b.W, b.H, style)
}

func drawText(pdf *gofpdf.Fpdf, t layout.TextRun) {
	style := ""
	if t.Bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, t.Size)
	pdf.SetTextColor(0, 0, 0)

	w := t.Width
	if w == 0 {
		w = pdf.GetStringWidth(t.Text) + 2
	}
	align := t.Align
	if align == "" {
		align = "L"
	}
	pdf.SetXY(t.X, t.Y)
	pdf.CellFormat(w, t.Size+3, t.Text, "", 0, align, false, 0, "")
}

// hexColor parses a "#rrggbb" color into its components. Malformed
// input reads as black.
func hexColor(s string) (r, g, b int) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	var rr, gg, bb int
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &rr, &gg, &bb); err != nil {
		return 0, 0, 0
	}
	return rr, gg, bb
}
