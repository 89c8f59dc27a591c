package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page layout constants. The bottom margin drives automatic page breaks
// when a block would overflow the page.
const (
	bottomMargin = 15.0
	lineHeight   = 8.0
	blockGap     = 2.0
)

// RenderPDF paginates blocks into a PDF document. Headings render bold at
// 14pt, body text regular at 12pt; page breaks are inserted automatically.
func RenderPDF(blocks []Block) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AddPage()

	for _, b := range blocks {
		switch b.Kind {
		case KindHeading:
			pdf.SetFont("Arial", "B", 14)
		default:
			pdf.SetFont("Arial", "", 12)
		}
		pdf.MultiCell(0, lineHeight, b.Text, "", "L", false)
		pdf.Ln(blockGap)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderModulePDF segments raw module text and renders it in one step.
func RenderModulePDF(text string) ([]byte, error) {
	return RenderPDF(Segment(text))
}
