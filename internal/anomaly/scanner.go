// Package anomaly scans a user's expense history for unusual spending and
// reports a small, ranked set of human-readable alerts. Three detectors run
// in priority order: large single expenses, weekly bill clusters, and
// per-category weekly IQR outliers. Alerts are ephemeral; nothing here is
// persisted or shared between calls.
package anomaly

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Rprog-06/Expense-Tracker/internal/model"
	"github.com/Rprog-06/Expense-Tracker/internal/stats"
)

// Default tunables.
const (
	DefaultLargeExpenseFloor      = 2000
	DefaultLargeExpenseMultiplier = 2.5
	DefaultBillClusterMin         = 2
	DefaultMaxAlerts              = 5
)

// Config carries the scanner tunables. Zero-valued fields are replaced with
// the defaults by NewScanner.
type Config struct {
	LargeExpenseFloor      decimal.Decimal
	LargeExpenseMultiplier decimal.Decimal
	BillClusterMin         int
	MaxAlerts              int
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		LargeExpenseFloor:      decimal.NewFromInt(DefaultLargeExpenseFloor),
		LargeExpenseMultiplier: decimal.NewFromFloat(DefaultLargeExpenseMultiplier),
		BillClusterMin:         DefaultBillClusterMin,
		MaxAlerts:              DefaultMaxAlerts,
	}
}

// Scanner runs the spending detectors. It holds no per-call state, so one
// Scanner may serve concurrent scans.
type Scanner struct {
	cfg Config
}

// NewScanner creates a Scanner, filling unset tunables from DefaultConfig.
func NewScanner(cfg Config) *Scanner {
	def := DefaultConfig()
	if cfg.LargeExpenseFloor.IsZero() {
		cfg.LargeExpenseFloor = def.LargeExpenseFloor
	}
	if cfg.LargeExpenseMultiplier.IsZero() {
		cfg.LargeExpenseMultiplier = def.LargeExpenseMultiplier
	}
	if cfg.BillClusterMin <= 0 {
		cfg.BillClusterMin = def.BillClusterMin
	}
	if cfg.MaxAlerts <= 0 {
		cfg.MaxAlerts = def.MaxAlerts
	}
	return &Scanner{cfg: cfg}
}

// Scan inspects the supplied expenses and returns at most MaxAlerts alert
// strings in detector priority order: large expenses first, then weekly
// bill clusters, then IQR outliers. The cap is a hard truncation of the
// concatenated detector output. Records with a zero date or negative amount
// are excluded from analysis rather than aborting the scan, and identical
// input always yields identical output.
func (s *Scanner) Scan(expenses []model.Expense) []string {
	records := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.Usable() {
			slog.Debug("excluding malformed expense from scan", "id", e.ID)
			continue
		}
		if !e.Category.Known() {
			// Producer contract violation: keep the record grouped under
			// its literal category, but surface the data-quality problem.
			slog.Warn("expense category outside the known set",
				"id", e.ID, "category", string(e.Category))
		}
		records = append(records, e)
	}
	if len(records) == 0 {
		return nil
	}

	amounts := make([]decimal.Decimal, len(records))
	for i, e := range records {
		amounts[i] = e.Amount
	}
	median := stats.Median(amounts)

	var alerts []string
	alerts = append(alerts, s.largeExpenses(records, median)...)
	alerts = append(alerts, s.billClusters(records)...)
	alerts = append(alerts, s.iqrOutliers(records)...)

	if len(alerts) > s.cfg.MaxAlerts {
		alerts = alerts[:s.cfg.MaxAlerts]
	}
	return alerts
}
