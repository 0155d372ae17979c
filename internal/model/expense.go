// Package model defines the domain types shared by the spending analysis
// engine and its collaborators.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single expense record supplied by the storage layer. The
// analysis engine treats it as read-only input; nothing derived from it
// outlives a single call.
type Expense struct {
	Date        time.Time
	ID          string
	Description string
	Category    Category
	Amount      decimal.Decimal
}

// Usable reports whether the record can participate in statistical
// analysis. Records with a zero date or a negative amount came from a
// misbehaving producer and are excluded from scans rather than aborting
// them.
func (e Expense) Usable() bool {
	return !e.Date.IsZero() && !e.Amount.IsNegative()
}
