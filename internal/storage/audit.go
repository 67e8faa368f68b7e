package storage

import (
	"context"
	"fmt"

	"github.com/bankflowhq/bankflow/internal/model"
)

// AppendAudit records one staff action in the append-only audit log.
func (s *SQLiteStorage) AppendAudit(ctx context.Context, actor, action, details string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(actor, "actor"); err != nil {
		return err
	}
	if err := validateString(action, "action"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO audit_logs (actor, action, details) VALUES (?, ?, ?)",
		actor, action, details)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// GetAuditLog returns the newest audit entries, most recent first.
func (s *SQLiteStorage) GetAuditLog(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, actor, action, COALESCE(details, ''), timestamp
		FROM audit_logs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.AuditEntry
	for rows.Next() {
		var entry model.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.Actor, &entry.Action, &entry.Details, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit rows: %w", err)
	}

	return entries, nil
}
