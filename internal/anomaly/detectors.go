package anomaly

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rprog-06/Expense-Tracker/internal/model"
	"github.com/Rprog-06/Expense-Tracker/internal/stats"
)

const dateLayout = "2006-01-02"

// largeExpenses flags every amount strictly above
// max(floor, median × multiplier), preserving input order. With an all-zero
// history the median is zero and only the fixed floor applies.
func (s *Scanner) largeExpenses(records []model.Expense, median decimal.Decimal) []string {
	threshold := median.Mul(s.cfg.LargeExpenseMultiplier)
	if threshold.LessThan(s.cfg.LargeExpenseFloor) {
		threshold = s.cfg.LargeExpenseFloor
	}

	var alerts []string
	for _, e := range records {
		if e.Amount.GreaterThan(threshold) {
			alerts = append(alerts, fmt.Sprintf(
				"Unusually large expense of %s for %q on %s (threshold %s)",
				e.Amount.StringFixed(2), e.Description,
				e.Date.Format(dateLayout), threshold.StringFixed(2)))
		}
	}
	return alerts
}

// billClusters reports weeks containing BillClusterMin or more bill-like
// expenses. Bill-like means the category contains "bill" case-insensitively,
// so out-of-set producer values such as "Utility Bills" still participate.
// Weeks are reported in ascending order of their start date.
func (s *Scanner) billClusters(records []model.Expense) []string {
	type cluster struct {
		total decimal.Decimal
		count int
	}

	clusters := make(map[time.Time]*cluster)
	for _, e := range records {
		if !strings.Contains(strings.ToLower(string(e.Category)), "bill") {
			continue
		}
		week := model.WeekStart(e.Date)
		cl := clusters[week]
		if cl == nil {
			cl = &cluster{total: decimal.Zero}
			clusters[week] = cl
		}
		cl.count++
		cl.total = cl.total.Add(e.Amount)
	}

	weeks := make([]time.Time, 0, len(clusters))
	for week := range clusters {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	var alerts []string
	for _, week := range weeks {
		cl := clusters[week]
		if cl.count < s.cfg.BillClusterMin {
			continue
		}
		alerts = append(alerts, fmt.Sprintf(
			"%d bill payments totalling %s in the week starting %s",
			cl.count, cl.total.StringFixed(2), week.Format(dateLayout)))
	}
	return alerts
}

// groupKey identifies one (category, week) cell. The category is the
// record's literal value, known or not.
type groupKey struct {
	week     time.Time
	category model.Category
}

// iqrOutliers flags amounts strictly outside the 1.5×IQR fences of their
// (category, week) group. Groups with a single member are skipped; the IQR
// of one amount is degenerate. Groups are visited in ascending category
// name then week order, and records keep their input order within a group,
// so the output is deterministic.
func (s *Scanner) iqrOutliers(records []model.Expense) []string {
	groups := make(map[groupKey][]model.Expense)
	for _, e := range records {
		key := groupKey{week: model.WeekStart(e.Date), category: e.Category}
		groups[key] = append(groups[key], e)
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].week.Before(keys[j].week)
	})

	oneAndHalf := decimal.NewFromFloat(1.5)

	var alerts []string
	for _, key := range keys {
		group := groups[key]
		if len(group) <= 1 {
			continue
		}

		amounts := make([]decimal.Decimal, len(group))
		for i, e := range group {
			amounts[i] = e.Amount
		}
		q1, q3 := stats.Quartiles(amounts)
		iqr := q3.Sub(q1)
		lower := q1.Sub(iqr.Mul(oneAndHalf))
		upper := q3.Add(iqr.Mul(oneAndHalf))

		for _, e := range group {
			if e.Amount.LessThan(lower) || e.Amount.GreaterThan(upper) {
				alerts = append(alerts, fmt.Sprintf(
					"Unusual spending in %q during the week starting %s: %s is outside the expected range [%s, %s]",
					string(e.Category), key.week.Format(dateLayout),
					e.Amount.StringFixed(2), lower.StringFixed(2), upper.StringFixed(2)))
			}
		}
	}
	return alerts
}
