package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bankflowhq/bankflow/internal/common"
	"github.com/bankflowhq/bankflow/internal/scoring"
)

const riskThresholdKey = "risk_threshold"

// GetRiskThreshold reads the current risk threshold. Every call hits the
// database so concurrent decisions always observe the latest configured
// value; SQLite guarantees the read is never torn.
func (s *SQLiteStorage) GetRiskThreshold(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var threshold int
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", riskThresholdKey).
		Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", common.ErrMissingConfig, riskThresholdKey)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read risk threshold: %w", err)
	}

	// A hand-edited settings row outside policy bounds must not silently
	// drive decisions.
	if err := scoring.ValidateThreshold(threshold); err != nil {
		return 0, fmt.Errorf("%w: stored risk threshold %d", common.ErrInvalidConfig, threshold)
	}

	return threshold, nil
}

// SetRiskThreshold updates the risk threshold after validating policy bounds.
func (s *SQLiteStorage) SetRiskThreshold(ctx context.Context, threshold int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := scoring.ValidateThreshold(threshold); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		riskThresholdKey, threshold)
	if err != nil {
		return fmt.Errorf("failed to set risk threshold: %w", err)
	}

	return nil
}
