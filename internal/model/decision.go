package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Decision is the outcome label assigned to one credit application.
type Decision string

// Decision outcome constants.
const (
	DecisionApprovable     Decision = "APPROVABLE"
	DecisionNeedsReview    Decision = "NEEDS_REVIEW"
	DecisionRejectAdvised  Decision = "REJECT_RECOMMENDED"
	DecisionAwaitingManager Decision = "AWAITING_MANAGER"
	DecisionApproved       Decision = "APPROVED"
	DecisionRejected       Decision = "REJECTED"
)

// Status tracks the lifecycle of a decision record.
type Status string

// Status constants. PENDING_MANAGER transitions to COMPLETED exactly once,
// when a manager approves or rejects the file.
const (
	StatusCompleted      Status = "COMPLETED"
	StatusPendingManager Status = "PENDING_MANAGER"
)

// Explanation is the output of the explainability engine: the base model
// score (no policy adjustments) and the ranked feature effects around it.
type Explanation struct {
	Effects   FeatureEffects
	BaseScore int
}

// PaymentPlan holds the amortization result for the requested credit.
type PaymentPlan struct {
	MonthlyPayment float64
	TotalPayment   float64
}

// DecisionResult is the immutable aggregate returned by the decision engine
// for one completed analysis.
type DecisionResult struct {
	HistoryID   string
	Decision    Decision
	Status      Status
	Messages    []string
	Explanation Explanation
	Payment     PaymentPlan
	RawScore    int
	FinalScore  int
	Threshold   int
}

// HistoryEntry is the append-only persistence record of one decision. The
// national id is stored masked for display plus hashed for dedup; the raw
// value is never persisted.
type HistoryEntry struct {
	CreatedAt time.Time
	ID        string
	MaskedID  string
	IDHash    string
	Decision  Decision
	Status    Status
	Officer   string
	Age       int
	Amount    int64
	Duration  int
	Score     int
}

// MaskNationalID hides the middle digits of a national id for display.
func MaskNationalID(id string) string {
	if len(id) < 7 {
		return "***"
	}
	return fmt.Sprintf("%s*****%s", id[:3], id[len(id)-3:])
}

// HashNationalID produces the stable hash used for duplicate detection.
func HashNationalID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return fmt.Sprintf("%x", sum)
}
