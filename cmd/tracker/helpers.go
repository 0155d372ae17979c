package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/Rprog-06/Expense-Tracker/internal/anomaly"
	"github.com/Rprog-06/Expense-Tracker/internal/classify"
	"github.com/Rprog-06/Expense-Tracker/internal/config"
	"github.com/Rprog-06/Expense-Tracker/internal/llm"
	"github.com/Rprog-06/Expense-Tracker/internal/storage"
)

// initStorage opens the configured database and runs migrations.
// Callers own the returned storage and must Close it.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dbPath, err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newClassifier assembles the tiered classifier from config. A missing
// model file or absent LLM credentials disable those tiers rather than
// failing; the keyword table and the default always work.
func newClassifier() *classify.Classifier {
	opts := classify.Options{
		RemoteTimeout: viper.GetDuration("classifier.remote_timeout"),
	}

	modelPath := config.ExpandPath(viper.GetString("classifier.model_path"))
	if modelPath != "" {
		m, err := classify.LoadModel(modelPath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("failed to load classifier model", "path", modelPath, "error", err)
			}
		} else {
			opts.Model = m
		}
	}

	if provider := viper.GetString("llm.provider"); provider != "" {
		client, err := llm.NewClient(llm.Config{
			Provider:  provider,
			APIKey:    viper.GetString("llm.api_key"),
			Model:     viper.GetString("llm.model"),
			Timeout:   viper.GetDuration("classifier.remote_timeout"),
			MaxTokens: viper.GetInt("llm.max_tokens"),
		})
		if err != nil {
			slog.Warn("failed to create LLM client", "provider", provider, "error", err)
		} else {
			opts.Remote = client
		}
	}

	return classify.New(opts)
}

// scannerConfig reads the alert tunables from config.
func scannerConfig() anomaly.Config {
	return anomaly.Config{
		LargeExpenseFloor:      decimal.NewFromFloat(viper.GetFloat64("alerts.large_expense_floor")),
		LargeExpenseMultiplier: decimal.NewFromFloat(viper.GetFloat64("alerts.large_expense_multiplier")),
		BillClusterMin:         viper.GetInt("alerts.bill_cluster_min"),
		MaxAlerts:              viper.GetInt("alerts.max"),
	}
}
