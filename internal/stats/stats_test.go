package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []decimal.Decimal
		p      int64
		want   string
	}{
		{
			name:   "empty sample",
			values: nil,
			p:      50,
			want:   "0",
		},
		{
			name:   "single value",
			values: dec(42),
			p:      75,
			want:   "42",
		},
		{
			name:   "median of odd sample",
			values: dec(100, 100, 5000, 100, 100),
			p:      50,
			want:   "100",
		},
		{
			name:   "median of even sample interpolates",
			values: dec(10, 20),
			p:      50,
			want:   "15",
		},
		{
			name:   "q1 falls on an exact rank",
			values: dec(10, 11, 12, 13, 500),
			p:      25,
			want:   "11",
		},
		{
			name:   "q3 falls on an exact rank",
			values: dec(10, 11, 12, 13, 500),
			p:      75,
			want:   "13",
		},
		{
			name:   "q1 interpolates between ranks",
			values: dec(1, 2, 3, 4),
			p:      25,
			want:   "1.75",
		},
		{
			name:   "zeroth percentile is the minimum",
			values: dec(9, 3, 7),
			p:      0,
			want:   "3",
		},
		{
			name:   "hundredth percentile is the maximum",
			values: dec(9, 3, 7),
			p:      100,
			want:   "9",
		},
		{
			name:   "input order does not matter",
			values: dec(500, 13, 10, 12, 11),
			p:      25,
			want:   "11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.values, tt.p)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	values := dec(3, 1, 2)
	Percentile(values, 50)
	assert.True(t, values[0].Equal(decimal.NewFromInt(3)))
	assert.True(t, values[1].Equal(decimal.NewFromInt(1)))
	assert.True(t, values[2].Equal(decimal.NewFromInt(2)))
}

func TestQuartiles(t *testing.T) {
	q1, q3 := Quartiles(dec(10, 11, 12, 13, 500))
	assert.True(t, q1.Equal(decimal.NewFromInt(11)), "q1 = %s", q1)
	assert.True(t, q3.Equal(decimal.NewFromInt(13)), "q3 = %s", q3)
}

func TestMedianMatchesPercentile(t *testing.T) {
	values := dec(5, 1, 9, 7, 3)
	assert.True(t, Median(values).Equal(Percentile(values, 50)))
}

func TestSumIsExact(t *testing.T) {
	// 0.1 + 0.2 is the classic binary float trap; decimals keep it exact.
	total := Sum(dec(0.1, 0.2))
	assert.True(t, total.Equal(decimal.RequireFromString("0.3")), "got %s", total)

	assert.True(t, Sum(nil).IsZero())
}
