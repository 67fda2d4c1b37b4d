package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/finhealth/internal/domain"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFFormatter renders the report as an A4 PDF document
type PDFFormatter struct {
	// Now stamps the generation date; nil uses time.Now
	Now func() time.Time
}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *domain.Report) ([]byte, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle("Financial Health Report", false)
	pdf.AddPage()

	title := "Financial Health Report"
	if report.Name != "" {
		title += ": " + report.Name
	}
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, pdfText(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", now().Format("2 January 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	widths := []float64{contentWidth * 0.55, contentWidth * 0.45}
	for _, s := range buildSections(report) {
		drawSectionHeader(pdf, s.Title)
		for i, r := range s.Rows {
			drawTableRow(pdf, []string{r.Label, r.Value}, widths, i%2 == 1)
		}
		if s.Key == "networth" {
			drawGauge(pdf, report.NetWorth.Health)
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(contentWidth, 4, "Figures are estimates based on the values entered. This is not financial advice.", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawSectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 9, pdfText(title), "", 1, "L", false, 0, "")
	pdf.SetDrawColor(0, 51, 102)
	pdf.Line(marginLeft, pdf.GetY(), marginLeft+contentWidth, pdf.GetY())
	pdf.Ln(3)
}

func drawTableRow(pdf *fpdf.Fpdf, cells []string, widths []float64, shaded bool) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	pdf.SetDrawColor(220, 220, 220)
	if shaded {
		pdf.SetFillColor(245, 247, 250)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 6, pdfText(cell), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
}

// drawGauge draws the tier-segmented track with a marker at BarPercent
func drawGauge(pdf *fpdf.Fpdf, a domain.HealthAssessment) {
	pdf.Ln(3)
	total := 0
	for _, b := range domain.HealthTierBands {
		total += b.DisplayWeight
	}

	x, y, h := marginLeft, pdf.GetY(), 5.0
	for _, b := range domain.HealthTierBands {
		w := contentWidth * float64(b.DisplayWeight) / float64(total)
		r, g, bl := tierRGB(b.Tier)
		pdf.SetFillColor(r, g, bl)
		pdf.Rect(x, y, w, h, "F")
		x += w
	}

	marker := marginLeft + contentWidth*a.BarPercent.InexactFloat64()/100
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.6)
	pdf.Line(marker, y-1, marker, y+h+1)
	pdf.SetLineWidth(0.2)
	pdf.SetY(y + h + 2)
}

func tierRGB(t domain.HealthTier) (int, int, int) {
	hex := strings.TrimPrefix(string(tierColors[t]), "#")
	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

// pdfText replaces runes the core fonts cannot draw
func pdfText(s string) string {
	return strings.NewReplacer("∞", "Infinite", "≥", ">=", "≤", "<=").Replace(s)
}
