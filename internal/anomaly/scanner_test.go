package anomaly

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rprog-06/Expense-Tracker/internal/model"
)

// exp builds a test expense. day is YYYY-MM-DD.
func exp(day, description string, amount float64, category model.Category) model.Expense {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return model.Expense{
		ID:          fmt.Sprintf("%s/%s", day, description),
		Date:        date,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Category:    category,
	}
}

func TestScanEmptyInput(t *testing.T) {
	s := NewScanner(DefaultConfig())
	assert.Empty(t, s.Scan(nil))
	assert.Empty(t, s.Scan([]model.Expense{}))
}

func TestLargeExpenseDetector(t *testing.T) {
	s := NewScanner(DefaultConfig())

	// Median is 100, so the threshold is max(2000, 250) = 2000. Each record
	// sits in its own week so no other detector can fire.
	expenses := []model.Expense{
		exp("2024-01-01", "groceries", 100, model.CategoryFood),
		exp("2024-01-08", "groceries", 100, model.CategoryFood),
		exp("2024-01-15", "groceries", 100, model.CategoryFood),
		exp("2024-01-22", "groceries", 100, model.CategoryFood),
		exp("2024-01-29", "laptop", 5000, model.CategoryShopping),
	}

	alerts := s.Scan(expenses)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "Unusually large expense")
	assert.Contains(t, alerts[0], "5000.00")
	assert.Contains(t, alerts[0], `"laptop"`)
	assert.Contains(t, alerts[0], "2000.00")
}

func TestLargeExpenseDetectorZeroMedian(t *testing.T) {
	s := NewScanner(DefaultConfig())

	// All amounts zero: median 0, so only the fixed floor applies.
	expenses := []model.Expense{
		exp("2024-01-01", "freebie", 0, model.CategoryOther),
		exp("2024-01-08", "freebie", 0, model.CategoryOther),
		exp("2024-01-15", "freebie", 0, model.CategoryOther),
	}
	assert.Empty(t, s.Scan(expenses))

	// An amount above the floor still trips even with a zero median.
	expenses = append(expenses, exp("2024-01-22", "television", 2500, model.CategoryShopping))
	alerts := s.Scan(expenses)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "2500.00")
}

func TestLargeExpensePreservesInputOrder(t *testing.T) {
	s := NewScanner(DefaultConfig())

	expenses := []model.Expense{
		exp("2024-01-01", "first", 9000, model.CategoryOther),
		exp("2024-02-05", "second", 8000, model.CategoryFood),
		exp("2024-03-04", "third", 7000, model.CategoryHealth),
		exp("2024-03-11", "small", 10, model.CategoryFood),
		exp("2024-03-18", "small", 10, model.CategoryFood),
		exp("2024-03-25", "small", 10, model.CategoryFood),
		exp("2024-04-01", "small", 10, model.CategoryFood),
	}

	alerts := s.Scan(expenses)
	require.Len(t, alerts, 3)
	assert.Contains(t, alerts[0], `"first"`)
	assert.Contains(t, alerts[1], `"second"`)
	assert.Contains(t, alerts[2], `"third"`)
}

func TestBillClusterDetector(t *testing.T) {
	s := NewScanner(DefaultConfig())

	t.Run("two bills in one week produce one alert", func(t *testing.T) {
		alerts := s.Scan([]model.Expense{
			exp("2024-01-02", "electricity", 60.50, model.CategoryBills),
			exp("2024-01-04", "internet", 39.50, model.CategoryBills),
		})
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "2 bill payments")
		assert.Contains(t, alerts[0], "100.00")
		assert.Contains(t, alerts[0], "2024-01-01")
	})

	t.Run("a single bill produces none", func(t *testing.T) {
		alerts := s.Scan([]model.Expense{
			exp("2024-01-02", "electricity", 60.50, model.CategoryBills),
		})
		assert.Empty(t, alerts)
	})

	t.Run("bills in different weeks do not cluster", func(t *testing.T) {
		alerts := s.Scan([]model.Expense{
			exp("2024-01-02", "electricity", 60, model.CategoryBills),
			exp("2024-01-09", "internet", 40, model.CategoryBills),
		})
		assert.Empty(t, alerts)
	})

	t.Run("weeks are reported in ascending order", func(t *testing.T) {
		// The later week comes first in the input.
		alerts := s.Scan([]model.Expense{
			exp("2024-02-06", "water", 30, model.CategoryBills),
			exp("2024-02-07", "internet", 40, model.CategoryBills),
			exp("2024-01-02", "electricity", 60, model.CategoryBills),
			exp("2024-01-04", "internet", 40, model.CategoryBills),
		})
		require.Len(t, alerts, 2)
		assert.Contains(t, alerts[0], "2024-01-01")
		assert.Contains(t, alerts[1], "2024-02-05")
	})

	t.Run("out-of-set categories containing bill participate", func(t *testing.T) {
		alerts := s.Scan([]model.Expense{
			exp("2024-01-02", "electricity", 60, model.Category("Utility Bills")),
			exp("2024-01-04", "water", 40, model.Category("utility bills")),
		})
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "2 bill payments")
		assert.Contains(t, alerts[0], "100.00")
	})
}

func TestIQROutlierDetector(t *testing.T) {
	s := NewScanner(DefaultConfig())

	t.Run("flags the outlier and only the outlier", func(t *testing.T) {
		// Food, one week, amounts [10,12,11,13,500]: Q1=11, Q3=13, IQR=2,
		// fences [8, 16]. Only 500 falls outside.
		alerts := s.Scan([]model.Expense{
			exp("2024-01-01", "coffee", 10, model.CategoryFood),
			exp("2024-01-02", "lunch", 12, model.CategoryFood),
			exp("2024-01-03", "snacks", 11, model.CategoryFood),
			exp("2024-01-04", "dinner", 13, model.CategoryFood),
			exp("2024-01-05", "banquet", 500, model.CategoryFood),
		})
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], `"Food"`)
		assert.Contains(t, alerts[0], "500.00")
		assert.Contains(t, alerts[0], "[8.00, 16.00]")
		assert.Contains(t, alerts[0], "2024-01-01")
	})

	t.Run("groups of one are skipped", func(t *testing.T) {
		alerts := s.Scan([]model.Expense{
			exp("2024-01-01", "coffee", 10, model.CategoryFood),
			exp("2024-01-08", "banquet", 500, model.CategoryFood),
		})
		assert.Empty(t, alerts)
	})

	t.Run("identical amounts never flag", func(t *testing.T) {
		alerts := s.Scan([]model.Expense{
			exp("2024-01-01", "coffee", 10, model.CategoryFood),
			exp("2024-01-02", "coffee", 10, model.CategoryFood),
			exp("2024-01-03", "coffee", 10, model.CategoryFood),
		})
		assert.Empty(t, alerts)
	})

	t.Run("groups are visited in category then week order", func(t *testing.T) {
		alerts := s.Scan([]model.Expense{
			// Food group, week of 2024-01-01, with an outlier.
			exp("2024-01-01", "coffee", 10, model.CategoryFood),
			exp("2024-01-02", "coffee", 10, model.CategoryFood),
			exp("2024-01-03", "lunch", 11, model.CategoryFood),
			exp("2024-01-04", "banquet", 300, model.CategoryFood),
			// Entertainment group, later week, also with an outlier.
			exp("2024-02-05", "rental", 5, model.CategoryEntertainment),
			exp("2024-02-06", "rental", 5, model.CategoryEntertainment),
			exp("2024-02-07", "rental", 6, model.CategoryEntertainment),
			exp("2024-02-08", "festival", 400, model.CategoryEntertainment),
		})
		require.Len(t, alerts, 2)
		// "Entertainment" sorts before "Food" even though its week is later.
		assert.Contains(t, alerts[0], `"Entertainment"`)
		assert.Contains(t, alerts[1], `"Food"`)
	})
}

func TestScanAlertCapAndPriority(t *testing.T) {
	s := NewScanner(DefaultConfig())

	expenses := []model.Expense{
		// Three large expenses (median stays 100, threshold 2000), each in
		// its own (category, week) group.
		exp("2024-01-01", "rent deposit", 10000, model.CategoryOther),
		exp("2024-01-08", "surgery", 10000, model.CategoryHealth),
		exp("2024-01-15", "car repair", 10000, model.CategoryTransport),
		// Two bill clusters in separate weeks; equal amounts, so the IQR
		// detector stays quiet for them.
		exp("2024-02-05", "electricity", 100, model.CategoryBills),
		exp("2024-02-06", "internet", 100, model.CategoryBills),
		exp("2024-03-04", "electricity", 100, model.CategoryBills),
		exp("2024-03-05", "internet", 100, model.CategoryBills),
		// One IQR outlier within a Food week.
		exp("2024-04-01", "coffee", 10, model.CategoryFood),
		exp("2024-04-02", "coffee", 10, model.CategoryFood),
		exp("2024-04-03", "coffee", 10, model.CategoryFood),
		exp("2024-04-04", "banquet", 400, model.CategoryFood),
	}

	// Six candidate alerts exist (3 large + 2 cluster + 1 IQR); the cap
	// keeps the first five, so the IQR alert is truncated away.
	alerts := s.Scan(expenses)
	require.Len(t, alerts, DefaultMaxAlerts)
	for _, alert := range alerts[:3] {
		assert.Contains(t, alert, "Unusually large expense")
	}
	for _, alert := range alerts[3:] {
		assert.Contains(t, alert, "bill payments")
	}
	for _, alert := range alerts {
		assert.NotContains(t, alert, "expected range")
	}
}

func TestScanMalformedRecordsExcluded(t *testing.T) {
	s := NewScanner(DefaultConfig())

	expenses := []model.Expense{
		{ID: "no-date", Description: "broken", Amount: decimal.NewFromInt(9000)},
		exp("2024-01-01", "negative", 100, model.CategoryFood),
	}
	expenses[1].Amount = decimal.NewFromInt(-50)

	// Both records are unusable; the scan finds nothing and does not panic.
	assert.Empty(t, s.Scan(expenses))
}

func TestScanUnknownCategoryStillScanned(t *testing.T) {
	s := NewScanner(DefaultConfig())

	// "Travel" is outside the closed set; the record is still part of the
	// statistics under its literal value.
	expenses := []model.Expense{
		exp("2024-01-01", "flight", 9000, model.Category("Travel")),
		exp("2024-01-08", "coffee", 10, model.CategoryFood),
		exp("2024-01-15", "coffee", 10, model.CategoryFood),
	}

	alerts := s.Scan(expenses)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "9000.00")
}

func TestScanTunables(t *testing.T) {
	t.Run("custom floor and multiplier", func(t *testing.T) {
		s := NewScanner(Config{
			LargeExpenseFloor:      decimal.NewFromInt(50),
			LargeExpenseMultiplier: decimal.NewFromInt(3),
		})
		// Median 20, threshold max(50, 60) = 60.
		alerts := s.Scan([]model.Expense{
			exp("2024-01-01", "a", 20, model.CategoryOther),
			exp("2024-01-08", "b", 20, model.CategoryOther),
			exp("2024-01-15", "c", 61, model.CategoryOther),
		})
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], `"c"`)
	})

	t.Run("custom bill cluster minimum", func(t *testing.T) {
		s := NewScanner(Config{BillClusterMin: 3})
		alerts := s.Scan([]model.Expense{
			exp("2024-01-02", "electricity", 60, model.CategoryBills),
			exp("2024-01-04", "internet", 40, model.CategoryBills),
		})
		assert.Empty(t, alerts)
	})

	t.Run("custom alert cap", func(t *testing.T) {
		s := NewScanner(Config{MaxAlerts: 1})
		alerts := s.Scan([]model.Expense{
			exp("2024-01-01", "first", 9000, model.CategoryOther),
			exp("2024-01-08", "second", 8000, model.CategoryFood),
			exp("2024-01-15", "small", 10, model.CategoryFood),
			exp("2024-01-22", "small", 10, model.CategoryFood),
			exp("2024-01-29", "small", 10, model.CategoryFood),
		})
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], `"first"`)
	})
}

func TestScanDeterministic(t *testing.T) {
	s := NewScanner(DefaultConfig())

	expenses := []model.Expense{
		exp("2024-01-01", "rent deposit", 10000, model.CategoryOther),
		exp("2024-02-05", "electricity", 100, model.CategoryBills),
		exp("2024-02-06", "internet", 100, model.CategoryBills),
		exp("2024-04-01", "coffee", 10, model.CategoryFood),
		exp("2024-04-02", "coffee", 10, model.CategoryFood),
		exp("2024-04-03", "coffee", 11, model.CategoryFood),
		exp("2024-04-04", "banquet", 400, model.CategoryFood),
	}

	// All three detectors contribute here.
	first := s.Scan(expenses)
	require.Len(t, first, 3)

	// Identical input yields identical output, including when scans run
	// concurrently from independent goroutines.
	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Scan(expenses)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, first, got, "run %d", i)
	}
}

func TestScanAlertsAreHumanReadable(t *testing.T) {
	s := NewScanner(DefaultConfig())
	alerts := s.Scan([]model.Expense{
		exp("2024-01-01", "laptop", 5000, model.CategoryShopping),
		exp("2024-01-08", "coffee", 10, model.CategoryFood),
	})
	for _, alert := range alerts {
		assert.False(t, strings.HasPrefix(alert, " "), "alert %q", alert)
		assert.NotEmpty(t, alert)
	}
}
