// Package stats provides the decimal statistics shared by the anomaly
// detectors. A single percentile convention is used for the median pre-step
// and the quartile fences so the detectors can never disagree.
package stats

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Percentile computes the p-th percentile (0 <= p <= 100) of values using
// linear interpolation between closest ranks. For an empty sample it
// returns zero. The arithmetic stays in decimal throughout; for the
// quartile percentiles used here the interpolation factor is an exact
// multiple of 1/4, so two amounts differing by less than a minor currency
// unit can never flip a comparison through rounding.
func Percentile(values []decimal.Decimal, p int64) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	if len(sorted) == 1 {
		return sorted[0]
	}

	// rank = p/100 * (n-1), split into its whole and fractional parts
	rank := decimal.NewFromInt(p).
		Mul(decimal.NewFromInt(int64(len(sorted) - 1))).
		Div(decimal.NewFromInt(100))
	whole := rank.Floor()
	idx := int(whole.IntPart())
	frac := rank.Sub(whole)

	if idx >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	if frac.IsZero() {
		return sorted[idx]
	}
	return sorted[idx].Add(sorted[idx+1].Sub(sorted[idx]).Mul(frac))
}

// Median is the 50th percentile of the sample.
func Median(values []decimal.Decimal) decimal.Decimal {
	return Percentile(values, 50)
}

// Quartiles returns the first and third quartiles of the sample.
func Quartiles(values []decimal.Decimal) (q1, q3 decimal.Decimal) {
	return Percentile(values, 25), Percentile(values, 75)
}

// Sum adds the values exactly.
func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
