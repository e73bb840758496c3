package stats

import (
	"math"
	"sort"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

// Describe returns the summary of every required column, in canonical order
func Describe(d *schema.Dataset) []schema.ColumnSummary {
	summaries := make([]schema.ColumnSummary, 0, len(schema.Columns))
	for _, c := range schema.Columns {
		summaries = append(summaries, Summarize(c, d.Values(c)))
	}
	return summaries
}

// Summarize computes count, mean, sample standard deviation, extremes and
// quartiles of values. Everything but the count is undefined without values.
func Summarize(c schema.Column, values []float64) schema.ColumnSummary {
	summary := schema.ColumnSummary{
		Column: c,
		Count:  len(values),
		Mean:   Mean(values),
		Std:    StdDev(values),
	}
	if len(values) == 0 {
		return summary
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	summary.Min = schema.Defined(sorted[0])
	summary.P25 = Quantile(sorted, 0.25)
	summary.P50 = Quantile(sorted, 0.5)
	summary.P75 = Quantile(sorted, 0.75)
	summary.Max = schema.Defined(sorted[len(sorted)-1])

	return summary
}

// Mean is the arithmetic mean, undefined for no values
func Mean(values []float64) schema.NullableFloat {
	if len(values) == 0 {
		return schema.Undefined
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return schema.Defined(sum / float64(len(values)))
}

// StdDev is the sample standard deviation (n-1 denominator), undefined for
// fewer than two values
func StdDev(values []float64) schema.NullableFloat {
	if len(values) < 2 {
		return schema.Undefined
	}

	mean := Mean(values).Float64
	var squares float64
	for _, v := range values {
		squares += (v - mean) * (v - mean)
	}
	return schema.Defined(math.Sqrt(squares / float64(len(values)-1)))
}

// Quantile interpolates linearly between the order statistics of sorted
// values, at position q*(n-1)
func Quantile(sorted []float64, q float64) schema.NullableFloat {
	if len(sorted) == 0 {
		return schema.Undefined
	}
	if q <= 0 {
		return schema.Defined(sorted[0])
	}
	if q >= 1 {
		return schema.Defined(sorted[len(sorted)-1])
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return schema.Defined(sorted[lo])
	}

	w := pos - float64(lo)
	return schema.Defined(sorted[lo] + (sorted[hi]-sorted[lo])*w)
}
