package stats

import (
	"sort"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

type activitySums struct {
	count       int
	temperature float64
	heartRate   float64
	oxygen      float64
	sleepTime   float64
}

// GroupByActivity averages temperature, heart rate, blood oxygen and sleep
// per observed activity level, by ascending level
func GroupByActivity(d *schema.Dataset) []schema.ActivityGroup {
	sums := make(map[int]*activitySums)
	for i := 0; i < d.Len(); i++ {
		r := d.Record(i)
		s, ok := sums[r.ActivityLevel]
		if !ok {
			s = &activitySums{}
			sums[r.ActivityLevel] = s
		}
		s.count++
		s.temperature += r.Thermoregulation
		s.heartRate += r.HeartRateVariation
		s.oxygen += r.BloodOxygen
		s.sleepTime += r.SleepPatterns
	}

	levels := make([]int, 0, len(sums))
	for level := range sums {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	groups := make([]schema.ActivityGroup, 0, len(levels))
	for _, level := range levels {
		s := sums[level]
		n := float64(s.count)
		groups = append(groups, schema.ActivityGroup{
			ActivityLevel:      level,
			Count:              s.count,
			Thermoregulation:   schema.Defined(s.temperature / n),
			HeartRateVariation: schema.Defined(s.heartRate / n),
			BloodOxygen:        schema.Defined(s.oxygen / n),
			SleepPatterns:      schema.Defined(s.sleepTime / n),
		})
	}

	return groups
}
