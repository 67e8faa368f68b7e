package importer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bankflowhq/bankflow/internal/engine"
	"github.com/bankflowhq/bankflow/internal/model"
	"github.com/bankflowhq/bankflow/internal/testutil"
)

// buildWorkbook writes a one-sheet workbook with the given rows and returns
// it as a byte stream.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, book.SetSheetRow(sheet, cell, &row))
	}

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"National ID", "Credit Amount", "Term", "Interest Rate", "Age",
			"Installment Rate", "Checking", "Credit History", "Purpose",
			"Savings", "Employment", "Property", "Housing", "Job"},
		{"12345678901", 120000, 24, 3.99, 40,
			4, "A14", "A34", "A40", "A65", "A73", "A121", "A152", "A171"},
		{"10987654321", 50000, 12, 2.5, 31,
			2, "A11", "A32", "A42", "A61", "A74", "A124", "A151", "A173"},
	})

	requests, err := Read(buf, "Jane Teller")
	require.NoError(t, err)
	require.Len(t, requests, 2)

	first := requests[0]
	assert.Equal(t, "12345678901", first.NationalID)
	assert.Equal(t, "Jane Teller", first.Officer)
	assert.Equal(t, 120000.0, first.Amount)
	assert.Equal(t, 3.99, first.InterestRate)
	assert.Equal(t, 24, first.Record.Duration)
	assert.Equal(t, 40, first.Record.Age)
	assert.Equal(t, model.CreditHistoryExcellent, first.Record.CreditHistory)
	assert.Equal(t, model.JobExecutive, first.Record.Job)

	// Fields the workbook does not carry keep their intake defaults.
	assert.Equal(t, model.GuarantorNone, first.Record.Guarantors)
	assert.Equal(t, model.TelephoneRegistered, first.Record.Telephone)

	second := requests[1]
	assert.Equal(t, model.HousingRent, second.Record.Housing)
	assert.Equal(t, 2, second.Record.InstallmentRate)
}

func TestRead_MinimalSheetUsesDefaults(t *testing.T) {
	// Branch workbooks often carry only identity and amount; every other
	// column falls back to a default that still passes validation.
	buf := buildWorkbook(t, [][]interface{}{
		{"national_id", "amount"},
		{"12345678901", 96000},
	})

	requests, err := Read(buf, "Jane Teller")
	require.NoError(t, err)
	require.Len(t, requests, 1)

	rec := requests[0].Record
	assert.Equal(t, 24, rec.Duration)
	assert.Equal(t, 30, rec.Age)
	assert.Equal(t, 2, rec.InstallmentRate)
	assert.Equal(t, model.CheckingNone, rec.CheckingAccount)
	assert.Equal(t, model.CreditHistoryClean, rec.CreditHistory)
	assert.Equal(t, model.PurposeNewCar, rec.Purpose)
	assert.Equal(t, model.SavingsUnknown, rec.SavingsAccount)
	assert.Equal(t, model.EmploymentOneToFour, rec.Employment)
	assert.Equal(t, model.PropertyRealEstate, rec.Property)
	assert.Equal(t, model.HousingOwner, rec.Housing)
	assert.Equal(t, model.JobSkilled, rec.Job)

	// The defaulted record must score end to end.
	store := testutil.SetupTestDB(t)
	mock := &engine.MockModel{Probability: 0.3}
	eng := engine.New(store, mock, mock)

	results, err := eng.ProcessBatch(context.Background(), requests, engine.BatchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.NotEmpty(t, results[0].HistoryID)
}

func TestRead_SkipsEmptyRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"national_id", "amount", "duration"},
		{"12345678901", 1000, 6},
		{"", "", ""},
		{"10987654321", 2000, 12},
	})

	requests, err := Read(buf, "officer")
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"national_id", "duration"},
		{"12345678901", 6},
	})

	_, err := Read(buf, "officer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"amount"`)
}

func TestRead_BadNumberReportsRow(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"national_id", "amount", "duration"},
		{"12345678901", 1000, 6},
		{"10987654321", "not-a-number", 12},
	})

	_, err := Read(buf, "officer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestRead_NoDataRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"national_id", "amount", "duration"},
	})

	_, err := Read(buf, "officer")
	assert.Error(t, err)
}
