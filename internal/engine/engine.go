// Package engine orchestrates the credit decision flow: validation, model
// inference, policy adjustment, classification, explanation, and persistence.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bankflowhq/bankflow/internal/common"
	"github.com/bankflowhq/bankflow/internal/model"
	"github.com/bankflowhq/bankflow/internal/scoring"
	"github.com/bankflowhq/bankflow/internal/service"
)

// ModelScaleFactor converts a face-value credit amount into the units the
// model was trained on.
const ModelScaleFactor = 80

// DecisionRequest carries everything one decision needs. Amount is the
// face value; the engine derives the scaled model units itself.
type DecisionRequest struct {
	NationalID   string
	Officer      string
	Record       model.ApplicantRecord
	Amount       float64
	InterestRate float64
	TopK         int
}

// decidePolicy selects the flow variant. The interactive flow explains and
// enforces the daily query limit; the batch flow skips both and applies the
// bulk high-risk override.
type decidePolicy struct {
	explain        bool
	enforceDaily   bool
	highRiskReject bool
	persist        bool
}

// Engine wires the persistence layer to the model collaborators.
type Engine struct {
	storage     service.Storage
	predictor   scoring.Predictor
	transformer scoring.Transformer
	explainer   *scoring.Explainer
}

// New creates a decision engine with the given dependencies.
func New(storage service.Storage, predictor scoring.Predictor, transformer scoring.Transformer) *Engine {
	return &Engine{
		storage:     storage,
		predictor:   predictor,
		transformer: transformer,
		explainer:   scoring.NewExplainer(predictor, transformer),
	}
}

// Decide runs the full interactive decision flow for one applicant and
// persists the outcome. A predictor or transform failure aborts the attempt
// with no history entry.
func (e *Engine) Decide(ctx context.Context, req DecisionRequest) (*model.DecisionResult, error) {
	return e.decide(ctx, req, decidePolicy{explain: true, enforceDaily: true, persist: true})
}

// Analyze runs the same flow without recording anything: no history entry,
// no audit trail, no daily limit. Used for ad hoc what-if reports.
func (e *Engine) Analyze(ctx context.Context, req DecisionRequest) (*model.DecisionResult, error) {
	return e.decide(ctx, req, decidePolicy{explain: true})
}

func (e *Engine) decide(ctx context.Context, req DecisionRequest, policy decidePolicy) (*model.DecisionResult, error) {
	if err := validateRequest(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidApplicant, err)
	}

	rec := req.Record
	rec.CreditAmount = req.Amount / ModelScaleFactor

	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidApplicant, err)
	}

	idHash := model.HashNationalID(req.NationalID)

	if policy.enforceDaily {
		count, err := e.storage.CountQueriesOn(ctx, idHash, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("failed to check daily query limit: %w", err)
		}
		if count > 0 {
			return nil, common.NewUserError(
				"this applicant has already been queried today", common.ErrDailyQueryLimit)
		}
	}

	rawScore, err := e.scoreRecord(ctx, &rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInferenceFailed, err)
	}

	finalScore, messages := scoring.Compute(rawScore, &rec)

	// Read the threshold fresh for every decision; policy may have moved
	// since the last call.
	threshold, err := e.storage.GetRiskThreshold(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read risk threshold: %w", err)
	}

	decision, status := scoring.Classify(finalScore, req.Amount, threshold)

	// In bulk runs a very large request with a middling score carries a
	// rejection recommendation even when the file still waits for a manager.
	if policy.highRiskReject && req.Amount > BulkHighRiskAmount && finalScore < BulkHighRiskScore {
		decision = model.DecisionRejectAdvised
	}

	payment, err := scoring.Amortize(req.Amount, rec.Duration, req.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute payment plan: %w", err)
	}

	result := &model.DecisionResult{
		RawScore:   rawScore,
		FinalScore: finalScore,
		Messages:   messages,
		Decision:   decision,
		Status:     status,
		Threshold:  threshold,
		Payment:    payment,
	}

	if policy.explain {
		explanation, explainErr := e.explainer.Explain(ctx, &rec, req.TopK)
		if explainErr != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInferenceFailed, explainErr)
		}
		result.Explanation = explanation
	}

	if !policy.persist {
		return result, nil
	}

	entry := &model.HistoryEntry{
		ID:        uuid.New().String(),
		MaskedID:  model.MaskNationalID(req.NationalID),
		IDHash:    idHash,
		Age:       rec.Age,
		Amount:    int64(req.Amount),
		Duration:  rec.Duration,
		Score:     finalScore,
		Decision:  decision,
		Status:    status,
		Officer:   req.Officer,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.storage.AppendHistory(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}
	result.HistoryID = entry.ID

	if err := e.storage.AppendAudit(ctx, req.Officer, "decision_completed",
		fmt.Sprintf("entry=%s score=%d decision=%s", entry.ID, finalScore, decision)); err != nil {
		slog.Warn("Failed to write audit entry", "error", err, "entry", entry.ID)
	}

	slog.Info("Decision completed",
		"entry", entry.ID,
		"score", finalScore,
		"decision", decision,
		"status", status)

	return result, nil
}

// scoreRecord runs one transform+predict pass and converts the probability
// to the 0-1900 scale.
func (e *Engine) scoreRecord(ctx context.Context, rec *model.ApplicantRecord) (int, error) {
	features, err := e.transformer.Transform(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("transform failed: %w", err)
	}

	p, err := e.predictor.Predict(ctx, features)
	if err != nil {
		return 0, fmt.Errorf("predict failed: %w", err)
	}

	return scoring.ScoreFromProbability(p), nil
}

// PendingEntries lists all files awaiting manager approval.
func (e *Engine) PendingEntries(ctx context.Context) ([]model.HistoryEntry, error) {
	return e.storage.GetPendingEntries(ctx)
}

// Finalize applies a manager's decision to a pending file. This is the only
// mutation a history entry ever receives.
func (e *Engine) Finalize(ctx context.Context, entryID string, approve bool, actor string) error {
	decision := model.DecisionRejected
	action := "manager_rejected"
	if approve {
		decision = model.DecisionApproved
		action = "manager_approved"
	}

	if err := e.storage.FinalizeEntry(ctx, entryID, decision); err != nil {
		return err
	}

	if err := e.storage.AppendAudit(ctx, actor, action, fmt.Sprintf("entry=%s", entryID)); err != nil {
		slog.Warn("Failed to write audit entry", "error", err, "entry", entryID)
	}

	return nil
}

func validateRequest(req *DecisionRequest) error {
	switch {
	case len(req.NationalID) != 11 || !allDigits(req.NationalID):
		return fmt.Errorf("national id must be 11 digits")
	case req.Officer == "":
		return fmt.Errorf("officer is required")
	case req.Amount <= 0:
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
