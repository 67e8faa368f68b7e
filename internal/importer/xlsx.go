// Package importer reads bulk application workbooks into decision requests.
package importer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bankflowhq/bankflow/internal/engine"
	"github.com/bankflowhq/bankflow/internal/model"
)

// columnAliases maps the header spellings seen in branch workbooks onto
// canonical column names. Headers are normalized before lookup.
var columnAliases = map[string]string{
	"national_id":      "national_id",
	"id":               "national_id",
	"identity_no":      "national_id",
	"customer_id":      "national_id",
	"amount":           "amount",
	"credit_amount":    "amount",
	"loan_amount":      "amount",
	"duration":         "duration",
	"duration_months":  "duration",
	"term":             "duration",
	"term_months":      "duration",
	"interest_rate":    "interest_rate",
	"annual_rate":      "interest_rate",
	"rate":             "interest_rate",
	"age":              "age",
	"installment_rate": "installment_rate",
	"installment_tier": "installment_rate",

	"checking_account": "checking_account",
	"checking":         "checking_account",
	"credit_history":   "credit_history",
	"history":          "credit_history",
	"purpose":          "purpose",
	"savings_account":  "savings_account",
	"savings":          "savings_account",
	"employment":       "employment",
	"property":         "property",
	"housing":          "housing",
	"job":              "job",
}

// requiredColumns must be present in the header row for the sheet to be
// importable at all. Every other column falls back to a branch default so a
// minimal sheet still scores.
var requiredColumns = []string{"national_id", "amount"}

// ReadFile parses the first sheet of an xlsx workbook into decision
// requests. Every row gets the same officer attribution.
func ReadFile(path, officer string) ([]engine.DecisionRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return Read(f, officer)
}

// Read parses an xlsx workbook stream into decision requests.
func Read(r io.Reader, officer string) ([]engine.DecisionRequest, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	requests := make([]engine.DecisionRequest, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}

		req, err := parseRow(row, columns, officer)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		requests = append(requests, req)
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}
	return requests, nil
}

// mapHeader resolves the header row into canonical column positions.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		name, ok := columnAliases[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		columns[name] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int, officer string) (engine.DecisionRequest, error) {
	rec := model.DefaultApplicantRecord()
	rec.CheckingAccount = model.CheckingStatus(cellCode(row, columns, "checking_account", string(model.CheckingNone)))
	rec.CreditHistory = model.CreditHistory(cellCode(row, columns, "credit_history", string(model.CreditHistoryClean)))
	rec.Purpose = model.Purpose(cellCode(row, columns, "purpose", string(model.PurposeNewCar)))
	rec.SavingsAccount = model.Savings(cellCode(row, columns, "savings_account", string(model.SavingsUnknown)))
	rec.Employment = model.Employment(cellCode(row, columns, "employment", string(model.EmploymentOneToFour)))
	rec.Property = model.Property(cellCode(row, columns, "property", string(model.PropertyRealEstate)))
	rec.Housing = model.Housing(cellCode(row, columns, "housing", string(model.HousingOwner)))
	rec.Job = model.Job(cellCode(row, columns, "job", string(model.JobSkilled)))

	var err error
	if rec.Duration, err = cellInt(row, columns, "duration", 24); err != nil {
		return engine.DecisionRequest{}, err
	}
	if rec.Age, err = cellInt(row, columns, "age", 30); err != nil {
		return engine.DecisionRequest{}, err
	}
	if rec.InstallmentRate, err = cellInt(row, columns, "installment_rate", 2); err != nil {
		return engine.DecisionRequest{}, err
	}

	amount, err := cellFloat(row, columns, "amount", 0)
	if err != nil {
		return engine.DecisionRequest{}, err
	}
	rate, err := cellFloat(row, columns, "interest_rate", 0)
	if err != nil {
		return engine.DecisionRequest{}, err
	}

	return engine.DecisionRequest{
		NationalID:   cellString(row, columns, "national_id"),
		Officer:      officer,
		Record:       rec,
		Amount:       amount,
		InterestRate: rate,
	}, nil
}

func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.ReplaceAll(cell, " ", "_")
	return strings.ReplaceAll(cell, "-", "_")
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellString(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// cellCode reads a categorical cell, falling back to the branch default when
// the column is absent or the cell empty.
func cellCode(row []string, columns map[string]int, name, fallback string) string {
	if v := cellString(row, columns, name); v != "" {
		return v
	}
	return fallback
}

// cellFloat parses a numeric cell, tolerating the ".0" suffix excel adds to
// whole numbers.
func cellFloat(row []string, columns map[string]int, name string, fallback float64) (float64, error) {
	raw := cellString(row, columns, name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: invalid number %q", name, raw)
	}
	return v, nil
}

func cellInt(row []string, columns map[string]int, name string, fallback int) (int, error) {
	v, err := cellFloat(row, columns, name, float64(fallback))
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
