package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bankflowhq/bankflow/internal/auth"
	"github.com/bankflowhq/bankflow/internal/common"
	"github.com/bankflowhq/bankflow/internal/config"
	"github.com/bankflowhq/bankflow/internal/model"
	"github.com/bankflowhq/bankflow/internal/service"
	"github.com/bankflowhq/bankflow/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

On a fresh database this also seeds the first admin account when
BANKFLOW_ADMIN_PASSWORD is set.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	slog.Info("Running database migrations", "database", dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err := seedAdmin(ctx, store); err != nil {
		return err
	}

	common.LogInfo("Database migrations completed", common.Fields{"database": dbPath})
	return nil
}

// seedAdmin creates the first admin account on an empty user table so a
// fresh install has someone who can manage accounts.
func seedAdmin(ctx context.Context, store service.Storage) error {
	users, err := store.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	password := os.Getenv("BANKFLOW_ADMIN_PASSWORD")
	if password == "" {
		slog.Warn("No users exist and BANKFLOW_ADMIN_PASSWORD is not set; skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Email:        "admin@bankflow.local",
		Name:         "Administrator",
		Role:         model.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.SaveUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	slog.Info("Seeded initial admin account", "email", admin.Email)
	return nil
}
