package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/bankflowhq/bankflow/internal/common"
	"github.com/bankflowhq/bankflow/internal/model"
	"github.com/bankflowhq/bankflow/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func makeTestEntry(num int, status model.Status) *model.HistoryEntry {
	nationalID := fmt.Sprintf("1234567%04d", num)
	return &model.HistoryEntry{
		ID:        fmt.Sprintf("entry-%03d", num),
		MaskedID:  model.MaskNationalID(nationalID),
		IDHash:    model.HashNationalID(nationalID),
		Age:       30 + num,
		Amount:    int64(num) * 50_000,
		Duration:  24,
		Score:     1400 + num,
		Decision:  model.DecisionApprovable,
		Status:    status,
		Officer:   "Jane Teller",
		CreatedAt: time.Now().UTC(),
	}
}

func TestSQLiteStorage_AppendAndGetHistory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := store.AppendHistory(ctx, makeTestEntry(i, model.StatusCompleted)); err != nil {
			t.Fatalf("AppendHistory() error = %v", err)
		}
	}

	entries, err := store.GetHistory(ctx, service.HistoryFilter{})
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("GetHistory() returned %d entries, want 3", len(entries))
	}

	got, err := store.GetHistoryEntry(ctx, "entry-002")
	if err != nil {
		t.Fatalf("GetHistoryEntry() error = %v", err)
	}
	if got.Score != 1402 {
		t.Errorf("entry score = %d, want 1402", got.Score)
	}
	if got.Status != model.StatusCompleted {
		t.Errorf("entry status = %s, want %s", got.Status, model.StatusCompleted)
	}
}

func TestSQLiteStorage_AppendHistory_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		entry *model.HistoryEntry
		name  string
	}{
		{name: "nil entry", entry: nil},
		{
			name: "missing decision",
			entry: func() *model.HistoryEntry {
				e := makeTestEntry(1, model.StatusCompleted)
				e.Decision = ""
				return e
			}(),
		},
		{
			name: "unknown status",
			entry: func() *model.HistoryEntry {
				e := makeTestEntry(1, model.StatusCompleted)
				e.Status = "IN_FLIGHT"
				return e
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.AppendHistory(ctx, tt.entry); err == nil {
				t.Error("AppendHistory() expected error, got nil")
			}
		})
	}
}

func TestSQLiteStorage_AppendHistory_DuplicateID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.AppendHistory(ctx, makeTestEntry(1, model.StatusCompleted)); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	err := store.AppendHistory(ctx, makeTestEntry(1, model.StatusCompleted))
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("AppendHistory() duplicate error = %v, want ErrDuplicateEntry", err)
	}
}

func TestSQLiteStorage_HistoryFilters(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	pending := makeTestEntry(1, model.StatusPendingManager)
	pending.Decision = model.DecisionAwaitingManager
	if err := store.AppendHistory(ctx, pending); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	completed := makeTestEntry(2, model.StatusCompleted)
	completed.Officer = "Omar Clerk"
	if err := store.AppendHistory(ctx, completed); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	byOfficer, err := store.GetHistory(ctx, service.HistoryFilter{Officer: "Omar Clerk"})
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(byOfficer) != 1 || byOfficer[0].ID != "entry-002" {
		t.Errorf("officer filter returned %v", byOfficer)
	}

	byStatus, err := store.GetHistory(ctx, service.HistoryFilter{Status: model.StatusPendingManager})
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != "entry-001" {
		t.Errorf("status filter returned %v", byStatus)
	}

	limited, err := store.GetHistory(ctx, service.HistoryFilter{Limit: 1})
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit filter returned %d entries, want 1", len(limited))
	}
}

func TestSQLiteStorage_FinalizeEntry(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	pending := makeTestEntry(1, model.StatusPendingManager)
	pending.Decision = model.DecisionAwaitingManager
	if err := store.AppendHistory(ctx, pending); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	if err := store.FinalizeEntry(ctx, pending.ID, model.DecisionApproved); err != nil {
		t.Fatalf("FinalizeEntry() error = %v", err)
	}

	got, err := store.GetHistoryEntry(ctx, pending.ID)
	if err != nil {
		t.Fatalf("GetHistoryEntry() error = %v", err)
	}
	if got.Decision != model.DecisionApproved {
		t.Errorf("decision = %s, want %s", got.Decision, model.DecisionApproved)
	}
	if got.Status != model.StatusCompleted {
		t.Errorf("status = %s, want %s", got.Status, model.StatusCompleted)
	}

	// The transition happens exactly once.
	err = store.FinalizeEntry(ctx, pending.ID, model.DecisionRejected)
	if !errors.Is(err, common.ErrNotPending) {
		t.Errorf("second FinalizeEntry() error = %v, want ErrNotPending", err)
	}

	pendingEntries, err := store.GetPendingEntries(ctx)
	if err != nil {
		t.Fatalf("GetPendingEntries() error = %v", err)
	}
	if len(pendingEntries) != 0 {
		t.Errorf("expected no pending entries after finalize, got %d", len(pendingEntries))
	}
}

func TestSQLiteStorage_CountQueriesOn(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	entry := makeTestEntry(1, model.StatusCompleted)
	if err := store.AppendHistory(ctx, entry); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	today, err := store.CountQueriesOn(ctx, entry.IDHash, time.Now().UTC())
	if err != nil {
		t.Fatalf("CountQueriesOn() error = %v", err)
	}
	if today != 1 {
		t.Errorf("count today = %d, want 1", today)
	}

	yesterday, err := store.CountQueriesOn(ctx, entry.IDHash, time.Now().UTC().AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("CountQueriesOn() error = %v", err)
	}
	if yesterday != 0 {
		t.Errorf("count yesterday = %d, want 0", yesterday)
	}

	other, err := store.CountQueriesOn(ctx, model.HashNationalID("99999999999"), time.Now().UTC())
	if err != nil {
		t.Fatalf("CountQueriesOn() error = %v", err)
	}
	if other != 0 {
		t.Errorf("count for other applicant = %d, want 0", other)
	}
}

func TestSQLiteStorage_RiskThreshold(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Migration seeds the default.
	threshold, err := store.GetRiskThreshold(ctx)
	if err != nil {
		t.Fatalf("GetRiskThreshold() error = %v", err)
	}
	if threshold != 1400 {
		t.Errorf("default threshold = %d, want 1400", threshold)
	}

	if err := store.SetRiskThreshold(ctx, 1550); err != nil {
		t.Fatalf("SetRiskThreshold() error = %v", err)
	}

	threshold, err = store.GetRiskThreshold(ctx)
	if err != nil {
		t.Fatalf("GetRiskThreshold() error = %v", err)
	}
	if threshold != 1550 {
		t.Errorf("updated threshold = %d, want 1550", threshold)
	}

	if err := store.SetRiskThreshold(ctx, 900); !errors.Is(err, common.ErrThresholdOutOfBand) {
		t.Errorf("SetRiskThreshold(900) error = %v, want ErrThresholdOutOfBand", err)
	}
}

func TestSQLiteStorage_RiskThreshold_CorruptValue(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Simulate a hand-edited settings row outside policy bounds.
	if _, err := store.db.ExecContext(ctx,
		"UPDATE settings SET value = ? WHERE key = ?", 9999, riskThresholdKey); err != nil {
		t.Fatalf("failed to rewrite settings row: %v", err)
	}

	if _, err := store.GetRiskThreshold(ctx); !errors.Is(err, common.ErrInvalidConfig) {
		t.Errorf("GetRiskThreshold() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSQLiteStorage_Users(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	user := &model.User{
		Email: "teller@bank.example",
		Role:  model.RoleOfficer,
		Name:  "Jane Teller",
	}
	if err := store.SaveUser(ctx, user); err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}

	got, err := store.GetUser(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.PasswordHash != "" {
		t.Errorf("new user should have no password hash, got %q", got.PasswordHash)
	}

	if err := store.SetUserPassword(ctx, user.Email, "$2a$10$fakehash"); err != nil {
		t.Fatalf("SetUserPassword() error = %v", err)
	}

	got, err = store.GetUser(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.PasswordHash != "$2a$10$fakehash" {
		t.Errorf("password hash = %q, want stored hash", got.PasswordHash)
	}

	users, err := store.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("GetAllUsers() returned %d users, want 1", len(users))
	}

	if err := store.DeleteUser(ctx, user.Email); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if _, err := store.GetUser(ctx, user.Email); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetUser() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteUser(ctx, user.Email); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("DeleteUser() twice error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStorage_AuditLog(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.AppendAudit(ctx, "teller@bank.example", "decision_completed", "entry-001"); err != nil {
		t.Fatalf("AppendAudit() error = %v", err)
	}
	if err := store.AppendAudit(ctx, "admin@bank.example", "threshold_updated", "1550"); err != nil {
		t.Fatalf("AppendAudit() error = %v", err)
	}

	entries, err := store.GetAuditLog(ctx, 10)
	if err != nil {
		t.Fatalf("GetAuditLog() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("GetAuditLog() returned %d entries, want 2", len(entries))
	}
	if entries[0].Action != "threshold_updated" {
		t.Errorf("newest entry action = %s, want threshold_updated", entries[0].Action)
	}

	if err := store.AppendAudit(ctx, "", "x", ""); err == nil {
		t.Error("AppendAudit() with empty actor expected error")
	}
}
