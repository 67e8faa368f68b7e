package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bankflowhq/bankflow/internal/common"
	"github.com/bankflowhq/bankflow/internal/model"
)

// SaveUser inserts or updates a staff account.
func (s *SQLiteStorage) SaveUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if err := validateString(user.Email, "email"); err != nil {
		return err
	}
	if user.Role != model.RoleOfficer && user.Role != model.RoleAdmin {
		return fmt.Errorf("invalid role %q", user.Role)
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, role, name, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET role = excluded.role, name = excluded.name`,
		user.Email, user.PasswordHash, string(user.Role), user.Name, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// GetUser returns the account for an email address.
func (s *SQLiteStorage) GetUser(ctx context.Context, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	var user model.User
	var role string
	var passwordHash sql.NullString

	err := s.db.QueryRowContext(ctx, `SELECT email, password_hash, role, name, created_at
		FROM users WHERE email = ?`, email).
		Scan(&user.Email, &passwordHash, &role, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = model.Role(role)
	user.PasswordHash = passwordHash.String
	return &user, nil
}

// GetAllUsers returns every staff account.
func (s *SQLiteStorage) GetAllUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT email, password_hash, role, name, created_at
		FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		var user model.User
		var role string
		var passwordHash sql.NullString

		if err := rows.Scan(&user.Email, &passwordHash, &role, &user.Name, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		user.Role = model.Role(role)
		user.PasswordHash = passwordHash.String
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

// DeleteUser removes a staff account.
func (s *SQLiteStorage) DeleteUser(ctx context.Context, email string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", email, common.ErrNotFound)
	}

	return nil
}

// SetUserPassword stores a new bcrypt hash for an existing account.
func (s *SQLiteStorage) SetUserPassword(ctx context.Context, email, passwordHash string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}
	if err := validateString(passwordHash, "passwordHash"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE email = ?",
		passwordHash, email)
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", email, common.ErrNotFound)
	}

	return nil
}
