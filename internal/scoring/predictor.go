// Package scoring implements the credit decision engine: the hybrid score
// calculator, the threshold classifier, the affordability arithmetic, and the
// perturbation-based explainability routine.
package scoring

import (
	"context"
	"math"

	"github.com/bankflowhq/bankflow/internal/model"
)

// ScoreMax is the top of the creditworthiness scale. A raw model risk of 0
// maps to ScoreMax, a risk of 1 maps to 0.
const ScoreMax = 1900

// Predictor produces a default-risk probability in [0,1] for a preprocessed
// feature vector. Implementations must be deterministic for identical input.
type Predictor interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

// Transformer encodes a raw applicant record into the feature vector the
// predictor consumes.
type Transformer interface {
	Transform(ctx context.Context, rec *model.ApplicantRecord) ([]float64, error)
}

// ScoreFromProbability converts a model risk probability into a base score on
// the 0-1900 scale. Higher score means lower risk.
func ScoreFromProbability(p float64) int {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return int(math.Round((1 - p) * ScoreMax))
}

// ClampScore bounds a score to the [0, ScoreMax] scale.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}
