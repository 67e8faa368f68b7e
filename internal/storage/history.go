package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/bankflowhq/bankflow/internal/common"
	"github.com/bankflowhq/bankflow/internal/model"
	"github.com/bankflowhq/bankflow/internal/service"
)

// AppendHistory inserts one completed decision. History is append-only; the
// only permitted update is the FinalizeEntry status transition.
func (s *SQLiteStorage) AppendHistory(ctx context.Context, entry *model.HistoryEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHistoryEntry(entry); err != nil {
		return err
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_history
			(id, masked_id, id_hash, age, amount, duration, score, decision, status, officer, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.MaskedID, entry.IDHash, entry.Age, entry.Amount,
		entry.Duration, entry.Score, string(entry.Decision), string(entry.Status),
		entry.Officer, createdAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: history entry %s", common.ErrDuplicateEntry, entry.ID)
		}
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	return nil
}

// GetHistory returns entries matching the filter, newest first.
func (s *SQLiteStorage) GetHistory(ctx context.Context, filter service.HistoryFilter) ([]model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if filter.Officer != "" {
		conditions = append(conditions, "officer = ?")
		args = append(args, filter.Officer)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *filter.EndDate)
	}

	query := `SELECT id, masked_id, id_hash, age, amount, duration, score,
		decision, status, officer, created_at FROM credit_history`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanHistoryEntries(rows)
}

// GetHistoryEntry returns a single entry by id.
func (s *SQLiteStorage) GetHistoryEntry(ctx context.Context, id string) (*model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT id, masked_id, id_hash, age, amount,
		duration, score, decision, status, officer, created_at
		FROM credit_history WHERE id = ?`, id)

	entry, err := scanHistoryEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history entry %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history entry: %w", err)
	}

	return entry, nil
}

// GetPendingEntries returns all files awaiting manager approval, oldest first.
func (s *SQLiteStorage) GetPendingEntries(ctx context.Context) ([]model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, masked_id, id_hash, age, amount,
		duration, score, decision, status, officer, created_at
		FROM credit_history WHERE status = ? ORDER BY created_at ASC`,
		string(model.StatusPendingManager))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanHistoryEntries(rows)
}

// FinalizeEntry performs the single permitted status transition: a pending
// file becomes completed with the manager's decision. Finalizing an entry
// that is not pending is an error.
func (s *SQLiteStorage) FinalizeEntry(ctx context.Context, id string, decision model.Decision) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE credit_history
		SET decision = ?, status = ?
		WHERE id = ? AND status = ?`,
		string(decision), string(model.StatusCompleted),
		id, string(model.StatusPendingManager))
	if err != nil {
		return fmt.Errorf("failed to finalize entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check finalize result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("entry %s: %w", id, common.ErrNotPending)
	}

	return nil
}

// CountQueriesOn counts how many history entries exist for one applicant hash
// on the given calendar day. Used to enforce the daily query limit.
func (s *SQLiteStorage) CountQueriesOn(ctx context.Context, idHash string, day time.Time) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(idHash, "idHash"); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM credit_history
		WHERE id_hash = ? AND date(created_at) = ?`,
		idHash, day.UTC().Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count queries: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(row rowScanner) (*model.HistoryEntry, error) {
	var entry model.HistoryEntry
	var decision, status string

	err := row.Scan(&entry.ID, &entry.MaskedID, &entry.IDHash, &entry.Age,
		&entry.Amount, &entry.Duration, &entry.Score, &decision, &status,
		&entry.Officer, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	entry.Decision = model.Decision(decision)
	entry.Status = model.Status(status)
	return &entry, nil
}

func scanHistoryEntries(rows *sql.Rows) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return entries, nil
}
