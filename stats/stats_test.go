package stats

import (
	"math/rand"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

var sample = schema.NewDataset([]schema.HealthRecord{
	{Thermoregulation: 36.65, HeartRateVariation: 77.82, BloodOxygen: 100.47, ActivityLevel: 0, SleepPatterns: 3.05, HormoneImbalance: 1},
	{Thermoregulation: 36.01, HeartRateVariation: 60.88, BloodOxygen: 97.77, ActivityLevel: 4, SleepPatterns: 5.67, HormoneImbalance: 0},
	{Thermoregulation: 36.57, HeartRateVariation: 69.80, BloodOxygen: 97.22, ActivityLevel: 0, SleepPatterns: 7.75, HormoneImbalance: 0},
})

func randomDataset(r *rand.Rand, n int) *schema.Dataset {
	records := make([]schema.HealthRecord, n)
	for i := range records {
		records[i] = schema.HealthRecord{
			Thermoregulation:   35.5 + r.Float64()*2.5,
			HeartRateVariation: 50 + r.Float64()*60,
			BloodOxygen:        92 + r.Float64()*9,
			ActivityLevel:      r.Intn(5),
			SleepPatterns:      3 + r.Float64()*6,
			HormoneImbalance:   r.Intn(2),
		}
	}
	return schema.NewDataset(records)
}
