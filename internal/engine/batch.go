package engine

import (
	"context"

	"github.com/schollz/progressbar/v3"

	"github.com/bankflowhq/bankflow/internal/common"
)

// Bulk override: very large requests with middling scores are rejected
// outright in batch runs instead of being left for review.
const (
	BulkHighRiskAmount = 750_000
	BulkHighRiskScore  = 1700
)

// BatchOptions controls a bulk run.
type BatchOptions struct {
	// ShowProgress renders a terminal progress bar while processing.
	ShowProgress bool
}

// BatchResult records the outcome of one row in a bulk run.
type BatchResult struct {
	Err       error
	HistoryID string
	Decision  string
	Index     int
	Score     int
}

// ProcessBatch runs the decision flow over each request in order. It is a
// thin loop over the same per-record engine: a failed row is recorded and
// skipped, never a reason to abort the run. Batch rows skip the explanation
// pass (one explanation costs several model inferences) and the daily query
// limit, and apply the bulk high-risk override.
func (e *Engine) ProcessBatch(ctx context.Context, requests []DecisionRequest, opts BatchOptions) ([]BatchResult, error) {
	policy := decidePolicy{highRiskReject: true, persist: true}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(len(requests)), "analyzing applications")
	}

	results := make([]BatchResult, 0, len(requests))
	for i, req := range requests {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result := BatchResult{Index: i}

		decision, err := e.decide(ctx, req, policy)
		if err != nil {
			common.LogError(err, "Batch row failed", common.Fields{"row": i})
			result.Err = err
		} else {
			result.HistoryID = decision.HistoryID
			result.Score = decision.FinalScore
			result.Decision = string(decision.Decision)
		}

		results = append(results, result)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return results, nil
}
