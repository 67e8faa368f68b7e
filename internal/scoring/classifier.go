package scoring

import (
	"fmt"

	"github.com/bankflowhq/bankflow/internal/common"
	"github.com/bankflowhq/bankflow/internal/model"
)

// Risk threshold policy bounds. The threshold itself lives in the settings
// store and is read fresh at classification time.
const (
	DefaultRiskThreshold = 1400
	MinRiskThreshold     = 1000
	MaxRiskThreshold     = 1800
)

// ManagerEscalationLimit is the face-value amount above which a file bypasses
// score-driven classification and waits for a manager, regardless of score.
const ManagerEscalationLimit = 500_000

// reviewBand is how far below the threshold a score may fall and still be
// routed to review instead of rejection.
const reviewBand = 400

// ValidateThreshold checks a candidate risk threshold against policy bounds.
func ValidateThreshold(threshold int) error {
	if threshold < MinRiskThreshold || threshold > MaxRiskThreshold {
		return fmt.Errorf("%w: %d not in [%d,%d]",
			common.ErrThresholdOutOfBand, threshold, MinRiskThreshold, MaxRiskThreshold)
	}
	return nil
}

// Classify maps a final score, the requested face amount, and the current
// risk threshold to a decision outcome. Rules are evaluated in order, first
// match wins. The score is still computed and stored for escalated files but
// does not drive their outcome.
func Classify(finalScore int, amount float64, threshold int) (model.Decision, model.Status) {
	switch {
	case amount > ManagerEscalationLimit:
		return model.DecisionAwaitingManager, model.StatusPendingManager
	case finalScore >= threshold:
		return model.DecisionApprovable, model.StatusCompleted
	case finalScore >= threshold-reviewBand:
		return model.DecisionNeedsReview, model.StatusCompleted
	default:
		return model.DecisionRejectAdvised, model.StatusCompleted
	}
}
