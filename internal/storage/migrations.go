package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// migrations are applied in order; PRAGMA user_version records how far the
// schema has advanced. Append only.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)`,
}

// Migrate brings the schema up to date.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		slog.Debug("applied migration", "version", i+1)
	}
	return nil
}
