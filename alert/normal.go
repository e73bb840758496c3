package alert

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bitmark-inc/health-metrics-api/consts"
	"github.com/bitmark-inc/health-metrics-api/schema"
)

// NormalRange is an inclusive healthy interval of a column. One sided
// ranges use an infinite bound.
type NormalRange struct {
	Metric schema.Column
	Min    float64
	Max    float64
}

// DefaultNormalRanges are the healthy ranges reported with the alerts
var DefaultNormalRanges = []NormalRange{
	{schema.Thermoregulation, consts.TemperatureNormalMin, consts.TemperatureNormalMax},
	{schema.HeartRateVariation, consts.HeartRateNormalMin, consts.HeartRateNormalMax},
	{schema.BloodOxygen, consts.OxygenNormalMin, math.Inf(1)},
	{schema.SleepPatterns, consts.SleepNormalMin, math.Inf(1)},
}

// Contains reports whether v is inside the range
func (r NormalRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r NormalRange) String() string {
	switch {
	case math.IsInf(r.Max, 1):
		return fmt.Sprintf(">= %s", formatBound(r.Min))
	case math.IsInf(r.Min, -1):
		return fmt.Sprintf("<= %s", formatBound(r.Max))
	}
	return fmt.Sprintf("%s - %s", formatBound(r.Min), formatBound(r.Max))
}

// NormalRanges reports the share of readings in each default range
func NormalRanges(d *schema.Dataset) []schema.NormalRangeResult {
	return NormalRangesFor(d, DefaultNormalRanges)
}

// NormalRangesFor reports the percentage of readings inside each range.
// The percentage of an empty dataset is undefined.
func NormalRangesFor(d *schema.Dataset, ranges []NormalRange) []schema.NormalRangeResult {
	results := make([]schema.NormalRangeResult, 0, len(ranges))
	total := d.Len()

	for _, r := range ranges {
		matching := 0
		for _, v := range d.Values(r.Metric) {
			if r.Contains(v) {
				matching++
			}
		}

		percent := schema.Undefined
		if total > 0 {
			percent = schema.Defined(float64(matching) / float64(total) * 100)
		}

		results = append(results, schema.NormalRangeResult{
			Metric:   r.Metric,
			Range:    r.String(),
			Matching: matching,
			Total:    total,
			Percent:  percent,
		})
	}

	return results
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
