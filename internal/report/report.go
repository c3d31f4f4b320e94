package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"resume-screener/internal/analyses"
)

// ArtifactName is the filename offered for download.
const ArtifactName = "resume_analysis_report.pdf"

// GenerationError wraps any failure while rendering the report PDF.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate report: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

const (
	pageMargin    = 15.0
	bottomReserve = 30.0
	lineHeight    = 6.0
	titleBandH    = 14.0
)

// Build renders the latest run as a paginated PDF. Entries never straddle the
// reserved band at the page bottom; a new page starts instead.
func Build(run analyses.Run) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	_, pageH := pdf.GetPageSize()
	usableW := usableWidth(pdf)

	// Title band.
	pdf.SetFillColor(41, 98, 255)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Rect(pageMargin, pageMargin, usableW, titleBandH, "F")
	pdf.SetXY(pageMargin, pageMargin)
	pdf.CellFormat(usableW, titleBandH, "Resume Analysis Report", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(pageMargin, pageMargin+titleBandH+lineHeight)

	writeLine := func(style string, size float64, text string) {
		pdf.SetFont("Helvetica", style, size)
		for _, line := range pdf.SplitText(text, usableW) {
			if pdf.GetY()+lineHeight > pageH-bottomReserve {
				pdf.AddPage()
				pdf.SetXY(pageMargin, pageMargin)
				pdf.SetFont("Helvetica", style, size)
			}
			pdf.CellFormat(usableW, lineHeight, line, "", 1, "L", false, 0, "")
		}
	}

	for i, result := range run.Results {
		writeLine("B", 12, fmt.Sprintf("%d. Resume: %s", i+1, result.Name))
		if result.Status == analyses.ResultFailed {
			writeLine("", 11, "Status: failed")
			if result.Error != "" {
				writeLine("", 11, "Reason: "+result.Error)
			}
		} else {
			writeLine("", 11, fmt.Sprintf("Score: %d", result.Score))
			writeLine("", 11, "Feedback:")
			writeLine("", 11, result.Feedback)
		}
		pdf.SetY(pdf.GetY() + lineHeight/2)
	}

	// Outer border on every page.
	pageW, _ := pdf.GetPageSize()
	for page := 1; page <= pdf.PageCount(); page++ {
		pdf.SetPage(page)
		pdf.Rect(pageMargin/2, pageMargin/2, pageW-pageMargin, pageH-pageMargin, "D")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &GenerationError{Err: err}
	}
	return buf.Bytes(), nil
}

func usableWidth(pdf *gofpdf.Fpdf) float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return pageW - left - right
}
