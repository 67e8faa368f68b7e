package scoring

import (
	"context"
	"fmt"

	"github.com/bankflowhq/bankflow/internal/model"
)

// DefaultTopK is how many feature effects an explanation reports by default.
const DefaultTopK = 6

// numericPerturbation shifts one numeric feature by a fixed step. Perturbed
// values are clamped to >= 1 so the modified record stays scorable.
type numericPerturbation struct {
	get     func(*model.ApplicantRecord) int
	setInt  func(*model.ApplicantRecord, int)
	feature string
	step    int
}

// numericPerturbations is the fixed perturbation table, in evaluation order.
var numericPerturbations = []numericPerturbation{
	{
		feature: "age",
		step:    5,
		get:     func(r *model.ApplicantRecord) int { return r.Age },
		setInt:  func(r *model.ApplicantRecord, v int) { r.Age = v },
	},
	{
		feature: "credit_amount",
		step:    500,
		get:     func(r *model.ApplicantRecord) int { return int(r.CreditAmount) },
		setInt:  func(r *model.ApplicantRecord, v int) { r.CreditAmount = float64(v) },
	},
	{
		feature: "duration",
		step:    6,
		get:     func(r *model.ApplicantRecord) int { return r.Duration },
		setInt:  func(r *model.ApplicantRecord, v int) { r.Duration = v },
	},
	{
		feature: "installment_rate",
		step:    1,
		get:     func(r *model.ApplicantRecord) int { return r.InstallmentRate },
		setInt:  func(r *model.ApplicantRecord, v int) { r.InstallmentRate = v },
	},
}

// categoricalPerturbation swaps one categorical feature for the first listed
// alternative that differs from the current value. Only one alternative is
// tried per feature, not an exhaustive sweep.
type categoricalPerturbation struct {
	get          func(*model.ApplicantRecord) string
	set          func(*model.ApplicantRecord, string)
	feature      string
	alternatives []string
}

var categoricalPerturbations = []categoricalPerturbation{
	{
		feature:      "credit_history",
		alternatives: []string{"A34", "A32", "A31"},
		get:          func(r *model.ApplicantRecord) string { return string(r.CreditHistory) },
		set:          func(r *model.ApplicantRecord, v string) { r.CreditHistory = model.CreditHistory(v) },
	},
	{
		feature:      "job",
		alternatives: []string{"A171", "A173", "A172"},
		get:          func(r *model.ApplicantRecord) string { return string(r.Job) },
		set:          func(r *model.ApplicantRecord, v string) { r.Job = model.Job(v) },
	},
	{
		feature:      "housing",
		alternatives: []string{"A152", "A151"},
		get:          func(r *model.ApplicantRecord) string { return string(r.Housing) },
		set:          func(r *model.ApplicantRecord, v string) { r.Housing = model.Housing(v) },
	},
}

// Explainer attributes score deltas to individual applicant features by
// re-scoring controlled single-feature perturbations of the base record.
// It measures only the learned-model contribution: the policy adjustment
// layer is deliberately bypassed.
type Explainer struct {
	predictor   Predictor
	transformer Transformer
}

// NewExplainer creates an explainer over the given model collaborators.
func NewExplainer(predictor Predictor, transformer Transformer) *Explainer {
	return &Explainer{
		predictor:   predictor,
		transformer: transformer,
	}
}

// score runs one full transform+predict pass. This is the expensive path:
// every call is a model inference.
func (e *Explainer) score(ctx context.Context, rec *model.ApplicantRecord) (int, error) {
	features, err := e.transformer.Transform(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("failed to transform record: %w", err)
	}

	p, err := e.predictor.Predict(ctx, features)
	if err != nil {
		return 0, fmt.Errorf("failed to predict: %w", err)
	}

	return ScoreFromProbability(p), nil
}

// Explain re-scores single-feature perturbations of rec and returns the
// topK effects ranked by absolute score delta. The input record is never
// mutated; each trial scores an independent copy. A feature with no value on
// the record is skipped without an effect entry. Any collaborator failure
// aborts the whole explanation.
func (e *Explainer) Explain(ctx context.Context, rec *model.ApplicantRecord, topK int) (model.Explanation, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	baseScore, err := e.score(ctx, rec)
	if err != nil {
		return model.Explanation{}, fmt.Errorf("failed to score base record: %w", err)
	}

	effects := make(model.FeatureEffects, 0, len(numericPerturbations)+len(categoricalPerturbations))

	for _, p := range numericPerturbations {
		current := p.get(rec)
		if current == 0 {
			continue
		}

		modified := rec.Clone()
		perturbed := current + p.step
		if perturbed < 1 {
			perturbed = 1
		}
		p.setInt(modified, perturbed)

		newScore, err := e.score(ctx, modified)
		if err != nil {
			return model.Explanation{}, fmt.Errorf("failed to score %s perturbation: %w", p.feature, err)
		}

		effects = append(effects, newEffect(p.feature, newScore-baseScore))
	}

	for _, p := range categoricalPerturbations {
		current := p.get(rec)
		if current == "" {
			continue
		}

		for _, alt := range p.alternatives {
			if alt == current {
				continue
			}

			modified := rec.Clone()
			p.set(modified, alt)

			newScore, err := e.score(ctx, modified)
			if err != nil {
				return model.Explanation{}, fmt.Errorf("failed to score %s perturbation: %w", p.feature, err)
			}

			effects = append(effects, newEffect(p.feature, newScore-baseScore))
			break // one alternative is enough
		}
	}

	return model.Explanation{
		BaseScore: baseScore,
		Effects:   effects.TopN(topK),
	}, nil
}

func newEffect(feature string, delta int) model.FeatureEffect {
	direction := model.DirectionNegative
	if delta > 0 {
		direction = model.DirectionPositive
	}
	return model.FeatureEffect{
		Feature:   feature,
		Delta:     delta,
		Direction: direction,
	}
}
