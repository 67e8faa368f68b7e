// Package inference provides the default model collaborator for the decision
// engine: a deterministic logistic scorecard with an embedded preprocessing
// transform. The engine itself only depends on the scoring contracts, so a
// served model can replace this package without touching the core.
package inference

import (
	"context"
	"fmt"
	"math"

	"github.com/bankflowhq/bankflow/internal/model"
)

// numericFeature is one standard-scaled numeric input.
type numericFeature struct {
	get    func(*model.ApplicantRecord) float64
	name   string
	mean   float64
	std    float64
	weight float64
}

// categoricalFeature is one one-hot encoded input. Codes not listed here
// encode as all-zero indicators rather than failing the transform.
type categoricalFeature struct {
	get     func(*model.ApplicantRecord) string
	weights map[string]float64
	name    string
	codes   []string
}

// Scaling statistics and coefficients fitted offline on the statlog corpus.
var numericFeatures = []numericFeature{
	{name: "duration", mean: 20.9, std: 12.06, weight: 0.38,
		get: func(r *model.ApplicantRecord) float64 { return float64(r.Duration) }},
	{name: "credit_amount", mean: 3271.3, std: 2822.7, weight: 0.27,
		get: func(r *model.ApplicantRecord) float64 { return r.CreditAmount }},
	{name: "installment_rate", mean: 2.97, std: 1.12, weight: 0.16,
		get: func(r *model.ApplicantRecord) float64 { return float64(r.InstallmentRate) }},
	{name: "residence_since", mean: 2.85, std: 1.10, weight: 0.02,
		get: func(r *model.ApplicantRecord) float64 { return float64(r.ResidenceSince) }},
	{name: "age", mean: 35.5, std: 11.38, weight: -0.22,
		get: func(r *model.ApplicantRecord) float64 { return float64(r.Age) }},
	{name: "existing_credits", mean: 1.41, std: 0.58, weight: 0.06,
		get: func(r *model.ApplicantRecord) float64 { return float64(r.ExistingCredits) }},
	{name: "people_liable", mean: 1.16, std: 0.36, weight: 0.03,
		get: func(r *model.ApplicantRecord) float64 { return float64(r.PeopleLiable) }},
}

var categoricalFeatures = []categoricalFeature{
	{
		name:  "checking_account",
		codes: []string{"A11", "A12", "A13", "A14"},
		weights: map[string]float64{
			"A11": 0.52, "A12": 0.21, "A13": -0.18, "A14": -0.55,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.CheckingAccount) },
	},
	{
		name:  "credit_history",
		codes: []string{"A30", "A31", "A32", "A33", "A34"},
		weights: map[string]float64{
			"A30": 0.61, "A31": 0.43, "A32": 0.02, "A33": 0.31, "A34": -0.49,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.CreditHistory) },
	},
	{
		name:  "purpose",
		codes: []string{"A40", "A41", "A42", "A43", "A44", "A45", "A46", "A48", "A49", "A410"},
		weights: map[string]float64{
			"A40": 0.12, "A41": -0.21, "A42": 0.03, "A43": -0.08, "A44": 0.05,
			"A45": 0.07, "A46": 0.18, "A48": -0.04, "A49": 0.02, "A410": 0.09,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.Purpose) },
	},
	{
		name:  "savings_account",
		codes: []string{"A61", "A62", "A63", "A64", "A65"},
		weights: map[string]float64{
			"A61": 0.24, "A62": 0.11, "A63": -0.14, "A64": -0.31, "A65": -0.09,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.SavingsAccount) },
	},
	{
		name:  "employment",
		codes: []string{"A71", "A72", "A73", "A74", "A75"},
		weights: map[string]float64{
			"A71": 0.29, "A72": 0.17, "A73": 0.01, "A74": -0.13, "A75": -0.19,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.Employment) },
	},
	{
		name:  "status_sex",
		codes: []string{"A91", "A92", "A93", "A94", "A95"},
		weights: map[string]float64{
			"A91": 0.08, "A92": 0.06, "A93": -0.07, "A94": -0.02, "A95": 0.01,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.StatusSex) },
	},
	{
		name:  "guarantors",
		codes: []string{"A101", "A102", "A103"},
		weights: map[string]float64{
			"A101": 0.01, "A102": 0.12, "A103": -0.22,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.Guarantors) },
	},
	{
		name:  "property",
		codes: []string{"A121", "A122", "A123", "A124"},
		weights: map[string]float64{
			"A121": -0.21, "A122": -0.06, "A123": 0.02, "A124": 0.23,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.Property) },
	},
	{
		name:  "other_installments",
		codes: []string{"A141", "A142", "A143"},
		weights: map[string]float64{
			"A141": 0.19, "A142": 0.11, "A143": -0.12,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.OtherInstallments) },
	},
	{
		name:  "housing",
		codes: []string{"A151", "A152", "A153"},
		weights: map[string]float64{
			"A151": 0.11, "A152": -0.19, "A153": 0.06,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.Housing) },
	},
	{
		name:  "job",
		codes: []string{"A171", "A172", "A173", "A174"},
		weights: map[string]float64{
			"A171": -0.12, "A172": 0.09, "A173": -0.04, "A174": 0.17,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.Job) },
	},
	{
		name:  "telephone",
		codes: []string{"A191", "A192"},
		weights: map[string]float64{
			"A191": 0.05, "A192": -0.05,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.Telephone) },
	},
	{
		name:  "foreign_worker",
		codes: []string{"A201", "A202"},
		weights: map[string]float64{
			"A201": 0.08, "A202": -0.14,
		},
		get: func(r *model.ApplicantRecord) string { return string(r.ForeignWorker) },
	},
}

const scorecardBias = -0.62

// Scorecard implements both scoring.Transformer and scoring.Predictor.
type Scorecard struct {
	weights []float64
}

// NewScorecard builds the scorecard, flattening the per-feature coefficients
// into a weight vector aligned with the transform output.
func NewScorecard() *Scorecard {
	var weights []float64
	for _, f := range numericFeatures {
		weights = append(weights, f.weight)
	}
	for _, f := range categoricalFeatures {
		for _, code := range f.codes {
			weights = append(weights, f.weights[code])
		}
	}
	return &Scorecard{weights: weights}
}

// Transform encodes a raw record into the model's feature vector:
// standard-scaled numerics followed by one-hot categorical indicators.
// Unknown categorical codes encode as all-zero indicators.
func (s *Scorecard) Transform(_ context.Context, rec *model.ApplicantRecord) ([]float64, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil applicant record")
	}

	features := make([]float64, 0, len(s.weights))
	for _, f := range numericFeatures {
		features = append(features, (f.get(rec)-f.mean)/f.std)
	}
	for _, f := range categoricalFeatures {
		value := f.get(rec)
		for _, code := range f.codes {
			if code == value {
				features = append(features, 1)
			} else {
				features = append(features, 0)
			}
		}
	}

	return features, nil
}

// Predict computes the default-risk probability for a transformed vector.
func (s *Scorecard) Predict(_ context.Context, features []float64) (float64, error) {
	if len(features) != len(s.weights) {
		return 0, fmt.Errorf("feature vector length %d, expected %d", len(features), len(s.weights))
	}

	z := scorecardBias
	for i, w := range s.weights {
		z += w * features[i]
	}

	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	// Split to avoid overflow for large |z|.
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
