// Package report renders a credit analysis as a printable PDF document.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/bankflowhq/bankflow/internal/model"
)

// Data collects everything one report page needs. Result must come from a
// completed decision; the national id arrives already masked.
type Data struct {
	GeneratedAt    time.Time
	MaskedID       string
	Officer        string
	Result         *model.DecisionResult
	Amount         float64
	DurationMonths int
	InterestRate   float64
}

// Generate writes a single-page analysis report to w.
func Generate(w io.Writer, d Data) error {
	if d.Result == nil {
		return fmt.Errorf("report requires a decision result")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Credit Analysis Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Credit Analysis Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", d.GeneratedAt.Format("2006-01-02 15:04 MST")),
		"", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	writeSectionHeader(pdf, "Application")
	writeKeyValue(pdf, "Applicant ID", d.MaskedID)
	writeKeyValue(pdf, "Officer", d.Officer)
	writeKeyValue(pdf, "Requested Amount", fmt.Sprintf("%.2f", d.Amount))
	writeKeyValue(pdf, "Term", fmt.Sprintf("%d months", d.DurationMonths))
	writeKeyValue(pdf, "Interest Rate", fmt.Sprintf("%.2f%%", d.InterestRate))
	pdf.Ln(3)

	writeSectionHeader(pdf, "Assessment")
	writeKeyValue(pdf, "Model Score", fmt.Sprintf("%d", d.Result.RawScore))
	writeKeyValue(pdf, "Final Score", fmt.Sprintf("%d / 1900", d.Result.FinalScore))
	writeKeyValue(pdf, "Risk Threshold", fmt.Sprintf("%d", d.Result.Threshold))
	writeKeyValue(pdf, "Recommendation", string(d.Result.Decision))
	writeKeyValue(pdf, "Status", string(d.Result.Status))
	pdf.Ln(3)

	if len(d.Result.Messages) > 0 {
		writeSectionHeader(pdf, "Policy Notes")
		pdf.SetFont("Helvetica", "", 10)
		for _, msg := range d.Result.Messages {
			pdf.CellFormat(0, 6, "- "+msg, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(d.Result.Explanation.Effects) > 0 {
		writeSectionHeader(pdf, "Factor Analysis")
		writeEffectsTable(pdf, d.Result.Explanation.Effects)
		pdf.Ln(3)
	}

	writeSectionHeader(pdf, "Payment Plan")
	writeKeyValue(pdf, "Monthly Payment", fmt.Sprintf("%.2f", d.Result.Payment.MonthlyPayment))
	writeKeyValue(pdf, "Total Payment", fmt.Sprintf("%.2f", d.Result.Payment.TotalPayment))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func writeSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func writeKeyValue(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func writeEffectsTable(pdf *gofpdf.Fpdf, effects model.FeatureEffects) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(70, 7, "Feature", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Direction", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Score Impact", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, effect := range effects {
		pdf.CellFormat(70, 7, effect.Feature, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, string(effect.Direction), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%+d", effect.Delta), "1", 1, "R", false, 0, "")
	}
}
