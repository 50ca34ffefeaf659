// Package report renders the count report as a printable PDF.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/guttosm/count-service/internal/domain/model"
)

const (
	pageMarginMM    = 14.0
	tableStartY     = 65.0
	rowHeight       = 10.0
	skuColumnWidth  = 110.0
	qtyColumnWidth  = 60.0
	signatureOffset = 40.0
)

var (
	accent = [3]int{37, 99, 235}
	body   = [3]int{50, 50, 50}
)

// Renderer turns a report document into a downloadable file.
type Renderer interface {
	Render(doc model.ReportDocument) ([]byte, string, error)
}

// PDFRenderer draws the report on A4 pages.
type PDFRenderer struct {
	Title string
}

// NewPDFRenderer returns a renderer with the default title.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Title: "Count Report"}
}

// Render returns the PDF bytes and the suggested file name.
func (r *PDFRenderer) Render(doc model.ReportDocument) ([]byte, string, error) {
	pdf := r.draw(doc)
	if err := pdf.Error(); err != nil {
		return nil, "", fmt.Errorf("render report: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("write report: %w", err)
	}
	return buf.Bytes(), Filename(doc), nil
}

// Filename is Report_<warehouse>_<unix millis>.pdf.
func Filename(doc model.ReportDocument) string {
	warehouse := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return '_'
	}, doc.WarehouseCode)
	return fmt.Sprintf("Report_%s_%d.pdf", warehouse, doc.GeneratedAt.UnixMilli())
}

func (r *PDFRenderer) draw(doc model.ReportDocument) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Title, true)
	pdf.SetCreator("count-service", true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(false, pageMarginMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(accent[0], accent[1], accent[2])
	pdf.Text(pageMarginMM, 22, tr(r.Title))

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(body[0], body[1], body[2])
	header := []string{
		"Date: " + doc.GeneratedAt.Format("2006-01-02 15:04:05"),
		"Warehouse: " + doc.WarehouseCode,
		"Location: " + doc.LocationCode,
		"Operator: " + doc.OperatorID,
	}
	for i, line := range header {
		pdf.Text(pageMarginMM, 32+float64(i)*6, tr(line))
	}
	pdf.Text(pageMarginMM, 58, fmt.Sprintf("Distinct SKUs: %d | Units: %d", doc.DistinctCount, doc.TotalUnits))

	_, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - pageMarginMM

	pdf.SetXY(pageMarginMM, tableStartY)
	tableHeader(pdf)
	for _, row := range doc.Rows {
		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
			pdf.SetXY(pageMarginMM, pageMarginMM)
			tableHeader(pdf)
		}
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(body[0], body[1], body[2])
		pdf.CellFormat(skuColumnWidth, rowHeight, tr(row.SKU), "1", 0, "L", false, 0, "")
		pdf.CellFormat(qtyColumnWidth, rowHeight, strconv.Itoa(row.Qty), "1", 1, "C", false, 0, "")
		pdf.SetX(pageMarginMM)
	}

	signY := pdf.GetY() + signatureOffset
	if signY > bottom {
		pdf.AddPage()
		signY = signatureOffset
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Line(20, signY, 80, signY)
	pdf.Text(30, signY+6, "Operator signature")
	pdf.Line(120, signY, 190, signY)
	pdf.Text(135, signY+6, "Supervisor signature")

	return pdf
}

func tableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(accent[0], accent[1], accent[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(accent[0], accent[1], accent[2])
	pdf.CellFormat(skuColumnWidth, rowHeight, "Product code (SKU)", "1", 0, "L", true, 0, "")
	pdf.CellFormat(qtyColumnWidth, rowHeight, "Counted quantity", "1", 1, "C", true, 0, "")
	pdf.SetX(pageMarginMM)
	pdf.SetDrawColor(0, 0, 0)
}
