package document

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Page geometry in inches.
const (
	margin       = 0.75
	bottomMargin = 1.0
	footerY      = -0.5
	lineHeight   = 0.18
	cellPadding  = 0.05
	bulletIndent = 0.2
	indentStep   = 0.3
)

type rgb struct{ r, g, b int }

var (
	brandBlue = rgb{34, 97, 174}
	darkBlue  = rgb{42, 65, 89}
	black     = rgb{0, 0, 0}
	white     = rgb{255, 255, 255}
	stripe    = rgb{242, 242, 242}
)

// RenderPDF writes doc as a Letter-sized PDF. The creation and modification
// dates are taken from doc.GeneratedAt, so equal documents give equal bytes.
func RenderPDF(doc *Document, w io.Writer) error {
	pdf := fpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title+" - "+doc.Company, true)
	pdf.SetSubject(string(doc.Variant), false)
	pdf.SetCreator("wispgen", false)

	r := &pdfRenderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(footerY)
		r.font("", 9, darkBlue)
		pdf.CellFormat(0, 0.2, r.tr(doc.Footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	for _, b := range doc.Blocks {
		r.block(b)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to layout pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

type pdfRenderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *pdfRenderer) font(style string, size float64, c rgb) {
	r.pdf.SetFont("Helvetica", style, size)
	r.pdf.SetTextColor(c.r, c.g, c.b)
}

func (r *pdfRenderer) lines(h float64, text, align string, indent float64) {
	left, _, right, _ := r.pdf.GetMargins()
	width, _ := r.pdf.GetPageSize()
	r.pdf.SetX(left + indent)
	r.pdf.MultiCell(width-left-right-indent, h, r.tr(text), "", align, false)
}

func (r *pdfRenderer) block(b Block) {
	pdf := r.pdf
	indent := float64(b.Indent) * indentStep

	switch b.Kind {
	case BlockTitle:
		r.font("B", 24, brandBlue)
		r.lines(0.45, b.Text, "C", 0)
		pdf.Ln(0.2)
	case BlockLabel:
		pdf.Ln(0.2)
		r.font("B", 12, black)
		r.lines(0.22, b.Text, "C", 0)
		pdf.Ln(0.05)
	case BlockCentered:
		r.font("", 10, black)
		r.lines(lineHeight, b.Text, "C", 0)
		pdf.Ln(0.05)
	case BlockHeading:
		pdf.Ln(0.15)
		r.font("B", 14, brandBlue)
		r.lines(0.25, b.Text, "L", 0)
		pdf.Ln(0.05)
	case BlockSubheading:
		pdf.Ln(0.08)
		r.font("B", 12, darkBlue)
		r.lines(0.22, b.Text, "L", 0)
	case BlockParagraph:
		r.font("", 10, black)
		r.lines(lineHeight, b.Text, "L", indent)
		pdf.Ln(0.06)
	case BlockBullet:
		r.font("", 10, black)
		r.lines(lineHeight, "• "+b.Text, "L", indent+bulletIndent)
		pdf.Ln(0.04)
	case BlockField:
		left, _, _, _ := pdf.GetMargins()
		pdf.SetX(left + indent)
		r.font("B", 10, black)
		pdf.Write(lineHeight, r.tr(b.Label+" "))
		r.font("", 10, black)
		pdf.Write(lineHeight, r.tr(b.Text))
		pdf.Ln(lineHeight + 0.06)
	case BlockTable:
		r.table(b.Table)
		pdf.Ln(0.1)
	case BlockSpacer:
		pdf.Ln(0.15)
	case BlockPageBreak:
		pdf.AddPage()
	}
}

// table draws t with wrapped cells. The header row is repeated on every page
// the table spans.
func (r *pdfRenderer) table(t *Table) {
	if t == nil {
		return
	}
	pdf := r.pdf
	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - bottomMargin

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Title
	}

	r.font("B", 9, white)
	headerHeight := r.rowHeight(t.Columns, header, 0.16)
	if pdf.GetY()+2*headerHeight > limit {
		pdf.AddPage()
		r.font("B", 9, white)
	}
	r.row(t.Columns, header, 0.16, headerHeight, &brandBlue)

	for i, cells := range t.Rows {
		r.font("", 8, black)
		h := r.rowHeight(t.Columns, cells, 0.14)
		if pdf.GetY()+h > limit {
			pdf.AddPage()
			r.font("B", 9, white)
			r.row(t.Columns, header, 0.16, headerHeight, &brandBlue)
			r.font("", 8, black)
		}
		var fill *rgb
		if i%2 == 1 {
			fill = &stripe
		}
		r.row(t.Columns, cells, 0.14, h, fill)
	}
}

func (r *pdfRenderer) rowHeight(cols []Column, cells []string, lh float64) float64 {
	n := 1
	for i, c := range cols {
		if i >= len(cells) {
			break
		}
		if k := len(r.pdf.SplitLines([]byte(r.tr(cells[i])), c.Width-2*cellPadding)); k > n {
			n = k
		}
	}
	return float64(n)*lh + 2*cellPadding
}

func (r *pdfRenderer) row(cols []Column, cells []string, lh, h float64, fill *rgb) {
	pdf := r.pdf
	left, _, _, _ := pdf.GetMargins()
	x, y := left, pdf.GetY()

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.01)
	for i, c := range cols {
		style := "D"
		if fill != nil {
			pdf.SetFillColor(fill.r, fill.g, fill.b)
			style = "FD"
		}
		pdf.Rect(x, y, c.Width, h, style)

		align := "L"
		if c.Center {
			align = "C"
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		pdf.SetXY(x+cellPadding, y+cellPadding)
		pdf.MultiCell(c.Width-2*cellPadding, lh, r.tr(text), "", align, false)
		x += c.Width
	}
	pdf.SetXY(left, y+h)
}
