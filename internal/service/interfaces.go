// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/bankflowhq/bankflow/internal/model"
)

// HistoryFilter defines filtering options for history queries.
type HistoryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Officer   string
	Status    model.Status
	Limit     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// History operations. Append is insert-only; the single permitted
	// update is FinalizeEntry's pending -> completed transition.
	AppendHistory(ctx context.Context, entry *model.HistoryEntry) error
	GetHistory(ctx context.Context, filter HistoryFilter) ([]model.HistoryEntry, error)
	GetHistoryEntry(ctx context.Context, id string) (*model.HistoryEntry, error)
	GetPendingEntries(ctx context.Context) ([]model.HistoryEntry, error)
	FinalizeEntry(ctx context.Context, id string, decision model.Decision) error
	CountQueriesOn(ctx context.Context, idHash string, day time.Time) (int, error)

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, email string) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, email string) error
	SetUserPassword(ctx context.Context, email, passwordHash string) error

	// Risk policy settings. The threshold is read fresh on every call;
	// implementations must not cache it across decisions.
	GetRiskThreshold(ctx context.Context) (int, error)
	SetRiskThreshold(ctx context.Context, threshold int) error

	// Audit log operations
	AppendAudit(ctx context.Context, actor, action, details string) error
	GetAuditLog(ctx context.Context, limit int) ([]model.AuditEntry, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
