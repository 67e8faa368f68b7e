package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/bankflowhq/bankflow/internal/config"
	"github.com/bankflowhq/bankflow/internal/engine"
	"github.com/bankflowhq/bankflow/internal/inference"
	"github.com/bankflowhq/bankflow/internal/service"
	"github.com/bankflowhq/bankflow/internal/storage"
)

// initStorage opens the decision database and brings the schema current.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine wires the decision engine over the storage layer and the
// embedded scorecard model.
func initEngine(ctx context.Context) (*engine.Engine, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	scorecard := inference.NewScorecard()
	return engine.New(store, scorecard, scorecard), store, nil
}
