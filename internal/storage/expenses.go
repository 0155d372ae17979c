package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rprog-06/Expense-Tracker/internal/classify"
	"github.com/Rprog-06/Expense-Tracker/internal/common"
	"github.com/Rprog-06/Expense-Tracker/internal/model"
)

const dateLayout = "2006-01-02"

// SaveExpense inserts one expense. Amounts are stored as decimal strings so
// nothing is lost to binary floating point. Re-inserting an existing ID is
// a no-op, which lets bank imports run repeatedly without duplicating rows.
func (s *SQLiteStorage) SaveExpense(ctx context.Context, e model.Expense) error {
	if e.ID == "" {
		return fmt.Errorf("expense ID must not be empty")
	}
	if !e.Usable() {
		return fmt.Errorf("%w: expense %q", common.ErrInvalidExpense, e.ID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO expenses (id, description, amount, category, date)
		VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.Description, e.Amount.String(), string(e.Category), e.Date.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

// ListExpenses returns every expense, newest first and largest first within
// a day. This is the order the dashboard displays and the order the anomaly
// scanner receives.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, amount, category, date
		FROM expenses
		ORDER BY date DESC, CAST(amount AS REAL) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func scanExpense(rows *sql.Rows) (model.Expense, error) {
	var e model.Expense
	var amount, category, date string
	if err := rows.Scan(&e.ID, &e.Description, &amount, &category, &date); err != nil {
		return model.Expense{}, fmt.Errorf("failed to scan expense: %w", err)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Expense{}, fmt.Errorf("%w: %q", common.ErrInvalidAmount, amount)
	}
	e.Amount = parsed
	e.Category = model.Category(category)

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return model.Expense{}, fmt.Errorf("%w: %q", common.ErrInvalidDate, date)
	}
	e.Date = day

	return e, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// LabeledExamples returns training data for the local text model: every
// stored expense carrying a category inside the closed set. Rows with
// unknown categories or empty descriptions are skipped silently.
func (s *SQLiteStorage) LabeledExamples(ctx context.Context) ([]classify.Example, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT description, category FROM expenses ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query labeled examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var examples []classify.Example
	for rows.Next() {
		var description, category string
		if err := rows.Scan(&description, &category); err != nil {
			return nil, fmt.Errorf("failed to scan labeled example: %w", err)
		}
		cat, ok := model.ParseCategory(category)
		if !ok || description == "" {
			continue
		}
		examples = append(examples, classify.Example{Description: description, Category: cat})
	}
	return examples, rows.Err()
}
