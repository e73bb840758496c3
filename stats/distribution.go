package stats

import (
	"math"
	"sort"

	"github.com/bitmark-inc/health-metrics-api/consts"
	"github.com/bitmark-inc/health-metrics-api/schema"
)

// keyMetrics are the columns shown as headline figures
var keyMetrics = []schema.Column{
	schema.Thermoregulation,
	schema.HeartRateVariation,
	schema.BloodOxygen,
	schema.SleepPatterns,
}

// ValueCounts counts readings per distinct value of a column, by ascending
// value. Values are truncated to integers.
func ValueCounts(d *schema.Dataset, c schema.Column) []schema.ValueCount {
	counts := make(map[int]int)
	for _, v := range d.Values(c) {
		counts[int(v)]++
	}

	result := make([]schema.ValueCount, 0, len(counts))
	for v, n := range counts {
		result = append(result, schema.ValueCount{Value: v, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Value < result[j].Value
	})

	return result
}

// Histogram splits [min, max] of a column into equal width bins, at most
// consts.MaxHistogramBins of them. A constant column, or one whose span does
// not fit in a float64, gives a single bin.
func Histogram(d *schema.Dataset, c schema.Column, bins int) []schema.HistogramBin {
	if d.IsEmpty() {
		return []schema.HistogramBin{}
	}
	if bins <= 0 {
		bins = consts.DefaultHistogramBins
	}
	if bins > consts.MaxHistogramBins {
		bins = consts.MaxHistogramBins
	}

	values := d.Values(c)
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if lo == hi || math.IsInf(hi-lo, 0) {
		return []schema.HistogramBin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	result := make([]schema.HistogramBin, bins)
	for i := range result {
		result[i].Lower = lo + float64(i)*width
		result[i].Upper = lo + float64(i+1)*width
	}
	result[bins-1].Upper = hi

	for _, v := range values {
		result[binIndex((v-lo)/width, bins)].Count++
	}

	return result
}

// binIndex clamps a fractional bin position into [0, bins-1]
func binIndex(pos float64, bins int) int {
	switch {
	case math.IsNaN(pos) || pos < 0:
		return 0
	case pos >= float64(bins):
		return bins - 1
	}
	return int(pos)
}

// Trend returns the values of a column by reading number
func Trend(d *schema.Dataset, c schema.Column) []schema.TrendPoint {
	values := d.Values(c)
	points := make([]schema.TrendPoint, len(values))
	for i, v := range values {
		points[i] = schema.TrendPoint{Index: i, Value: v}
	}
	return points
}

// Overview returns mean and standard deviation of the headline columns
func Overview(d *schema.Dataset) []schema.KeyMetric {
	metrics := make([]schema.KeyMetric, 0, len(keyMetrics))
	for _, c := range keyMetrics {
		values := d.Values(c)
		metrics = append(metrics, schema.KeyMetric{
			Metric: c,
			Mean:   Mean(values),
			Std:    StdDev(values),
		})
	}
	return metrics
}
