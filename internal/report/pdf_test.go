package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankflowhq/bankflow/internal/model"
)

func sampleData() Data {
	return Data{
		GeneratedAt:    time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		MaskedID:       "123*****901",
		Officer:        "Jane Teller",
		Amount:         120_000,
		DurationMonths: 24,
		InterestRate:   3.99,
		Result: &model.DecisionResult{
			RawScore:   1330,
			FinalScore: 1780,
			Threshold:  1400,
			Decision:   model.DecisionApprovable,
			Status:     model.StatusCompleted,
			Messages:   []string{"Positive credit history (+250)"},
			Payment:    model.PaymentPlan{MonthlyPayment: 5210.98, TotalPayment: 125063.52},
			Explanation: model.Explanation{
				BaseScore: 1330,
				Effects: model.FeatureEffects{
					{Feature: "credit_history", Direction: model.DirectionNegative, Delta: -120},
					{Feature: "age", Direction: model.DirectionPositive, Delta: 40},
				},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, sampleData()))

	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"), "output is not a PDF document")
	assert.Greater(t, buf.Len(), 1000, "document suspiciously small")
}

func TestGenerate_RequiresResult(t *testing.T) {
	d := sampleData()
	d.Result = nil

	var buf bytes.Buffer
	assert.Error(t, Generate(&buf, d))
}

func TestGenerate_NoExplanation(t *testing.T) {
	// Batch decisions skip the explanation pass; the report still renders.
	d := sampleData()
	d.Result.Explanation = model.Explanation{}
	d.Result.Messages = nil

	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, d))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}
