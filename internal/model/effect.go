package model

import "sort"

// EffectDirection indicates which way a perturbation moved the score.
type EffectDirection string

// Effect direction constants.
const (
	DirectionPositive EffectDirection = "positive"
	DirectionNegative EffectDirection = "negative"
)

// FeatureEffect records the score delta attributed to perturbing one
// applicant feature around the base record.
type FeatureEffect struct {
	Feature   string
	Direction EffectDirection
	Delta     int
}

// FeatureEffects is a slice of FeatureEffect that supports sorting and
// truncation helpers.
type FeatureEffects []FeatureEffect

// Sort orders effects by absolute delta descending. Ties break on feature
// name so repeated explanations of the same record stay identical.
func (e FeatureEffects) Sort() {
	sort.SliceStable(e, func(i, j int) bool {
		ai, aj := absInt(e[i].Delta), absInt(e[j].Delta)
		if ai != aj {
			return ai > aj
		}
		return e[i].Feature < e[j].Feature
	})
}

// TopN returns the N largest-magnitude effects.
func (e FeatureEffects) TopN(n int) FeatureEffects {
	if n <= 0 {
		return FeatureEffects{}
	}

	e.Sort()

	if n > len(e) {
		n = len(e)
	}

	result := make(FeatureEffects, n)
	copy(result, e[:n])
	return result
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
