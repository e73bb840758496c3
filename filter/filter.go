package filter

import (
	"sort"

	"github.com/bitmark-inc/health-metrics-api/schema"
	"github.com/bitmark-inc/health-metrics-api/stats"
)

// Range is an inclusive interval
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v is inside the interval
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Spec selects readings by allowed activity levels, allowed hormone status
// and a temperature interval. All three must hold. An empty allowed set
// selects nothing.
type Spec struct {
	ActivityLevels   []int `json:"activity_levels"`
	HormoneImbalance []int `json:"hormone_imbalance"`
	Thermoregulation Range `json:"thermoregulation"`
}

// DefaultSpec selects every reading: all observed activity levels, both
// hormone states and the observed temperature interval
func DefaultSpec(d *schema.Dataset) Spec {
	levels := make([]int, 0)
	for _, vc := range stats.ValueCounts(d, schema.ActivityLevel) {
		levels = append(levels, vc.Value)
	}

	spec := Spec{
		ActivityLevels:   levels,
		HormoneImbalance: []int{schema.HormoneBalanced, schema.HormoneImbalanced},
	}

	summary := stats.Summarize(schema.Thermoregulation, d.Values(schema.Thermoregulation))
	if summary.Count > 0 {
		spec.Thermoregulation = Range{Min: summary.Min.Float64, Max: summary.Max.Float64}
	}

	return spec
}

// Matches reports whether a reading passes every predicate
func (s Spec) Matches(r schema.HealthRecord) bool {
	return containsInt(s.ActivityLevels, r.ActivityLevel) &&
		containsInt(s.HormoneImbalance, r.HormoneImbalance) &&
		s.Thermoregulation.Contains(r.Thermoregulation)
}

// Normalize returns a copy with sorted, de-duplicated sets
func (s Spec) Normalize() Spec {
	return Spec{
		ActivityLevels:   uniqueSorted(s.ActivityLevels),
		HormoneImbalance: uniqueSorted(s.HormoneImbalance),
		Thermoregulation: s.Thermoregulation,
	}
}

// Apply returns a new dataset of the matching readings in their original
// order
func Apply(d *schema.Dataset, s Spec) *schema.Dataset {
	indices := make([]int, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		if s.Matches(d.Record(i)) {
			indices = append(indices, i)
		}
	}
	return d.Subset(indices)
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func uniqueSorted(values []int) []int {
	result := make([]int, 0, len(values))
	for _, v := range values {
		if !containsInt(result, v) {
			result = append(result, v)
		}
	}
	sort.Ints(result)
	return result
}
