package scoring

import (
	"testing"

	"github.com/bankflowhq/bankflow/internal/model"
)

func TestClassify(t *testing.T) {
	const threshold = 1400

	tests := []struct {
		name         string
		wantDecision model.Decision
		wantStatus   model.Status
		score        int
		amount       float64
	}{
		{
			name:         "score at threshold approves",
			score:        1400,
			amount:       100_000,
			wantDecision: model.DecisionApprovable,
			wantStatus:   model.StatusCompleted,
		},
		{
			name:         "score above threshold approves",
			score:        1900,
			amount:       100_000,
			wantDecision: model.DecisionApprovable,
			wantStatus:   model.StatusCompleted,
		},
		{
			name:         "one below threshold needs review",
			score:        1399,
			amount:       100_000,
			wantDecision: model.DecisionNeedsReview,
			wantStatus:   model.StatusCompleted,
		},
		{
			name:         "bottom of review band needs review",
			score:        1000,
			amount:       100_000,
			wantDecision: model.DecisionNeedsReview,
			wantStatus:   model.StatusCompleted,
		},
		{
			name:         "below review band rejects",
			score:        999,
			amount:       100_000,
			wantDecision: model.DecisionRejectAdvised,
			wantStatus:   model.StatusCompleted,
		},
		{
			name:         "high amount escalates regardless of perfect score",
			score:        1900,
			amount:       500_001,
			wantDecision: model.DecisionAwaitingManager,
			wantStatus:   model.StatusPendingManager,
		},
		{
			name:         "high amount escalates regardless of zero score",
			score:        0,
			amount:       2_000_000,
			wantDecision: model.DecisionAwaitingManager,
			wantStatus:   model.StatusPendingManager,
		},
		{
			name:         "amount exactly at limit stays score-driven",
			score:        0,
			amount:       500_000,
			wantDecision: model.DecisionRejectAdvised,
			wantStatus:   model.StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, status := Classify(tt.score, tt.amount, threshold)
			if decision != tt.wantDecision {
				t.Errorf("Classify() decision = %s, want %s", decision, tt.wantDecision)
			}
			if status != tt.wantStatus {
				t.Errorf("Classify() status = %s, want %s", status, tt.wantStatus)
			}
		})
	}
}

func TestClassify_RespectsCurrentThreshold(t *testing.T) {
	// The same score flips outcomes when policy moves the threshold.
	decision, _ := Classify(1500, 100_000, 1400)
	if decision != model.DecisionApprovable {
		t.Errorf("threshold 1400: decision = %s, want %s", decision, model.DecisionApprovable)
	}

	decision, _ = Classify(1500, 100_000, 1600)
	if decision != model.DecisionNeedsReview {
		t.Errorf("threshold 1600: decision = %s, want %s", decision, model.DecisionNeedsReview)
	}
}

func TestValidateThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		wantErr   bool
	}{
		{name: "default", threshold: 1400, wantErr: false},
		{name: "lower bound", threshold: 1000, wantErr: false},
		{name: "upper bound", threshold: 1800, wantErr: false},
		{name: "below range", threshold: 999, wantErr: true},
		{name: "above range", threshold: 1801, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThreshold(tt.threshold)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThreshold(%d) error = %v, wantErr %v", tt.threshold, err, tt.wantErr)
			}
		})
	}
}
