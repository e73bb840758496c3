package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/health-metrics-api/alert"
	"github.com/bitmark-inc/health-metrics-api/schema"
	"github.com/bitmark-inc/health-metrics-api/stats"
)

var sample = schema.NewDataset([]schema.HealthRecord{
	{Thermoregulation: 36.65, HeartRateVariation: 77.82, BloodOxygen: 100.47, ActivityLevel: 0, SleepPatterns: 3.05, HormoneImbalance: 1},
	{Thermoregulation: 36.01, HeartRateVariation: 60.88, BloodOxygen: 97.77, ActivityLevel: 4, SleepPatterns: 5.67, HormoneImbalance: 0},
	{Thermoregulation: 36.57, HeartRateVariation: 69.80, BloodOxygen: 97.22, ActivityLevel: 0, SleepPatterns: 7.75, HormoneImbalance: 0},
})

func TestBuildMatchesIndividualAnalyses(t *testing.T) {
	r := Build(sample, nil)

	assert.Equal(t, 3, r.Records)
	assert.Equal(t, stats.Overview(sample), r.Overview)
	assert.Equal(t, stats.Describe(sample), r.Statistics)
	assert.Equal(t, stats.Correlate(sample), r.Correlations)
	assert.Equal(t, alert.NormalRanges(sample), r.NormalRanges)
	assert.Equal(t, stats.GroupByActivity(sample), r.Activity)
	assert.Equal(t, []schema.ValueCount{{Value: 0, Count: 2}, {Value: 4, Count: 1}}, r.ActivityCounts)
	assert.Equal(t, []schema.ValueCount{{Value: 0, Count: 2}, {Value: 1, Count: 1}}, r.HormoneCounts)

	assert.False(t, r.Alerts.AllNormal)
	assert.Empty(t, r.AllNormalMessage)
	if assert.Len(t, r.Alerts.Findings, 2) {
		assert.Equal(t, alert.SleepLow, r.Alerts.Findings[0].ID)
		assert.Equal(t, "2 nights with insufficient sleep (<6 hours)", r.Alerts.Findings[0].Message)
		assert.Equal(t, alert.HormoneImbalance, r.Alerts.Findings[1].ID)
	}
}

func TestBuildAllNormal(t *testing.T) {
	d := schema.NewDataset([]schema.HealthRecord{
		{Thermoregulation: 36.6, HeartRateVariation: 72, BloodOxygen: 98, ActivityLevel: 2, SleepPatterns: 8},
	})

	r := Build(d, nil)
	assert.True(t, r.Alerts.AllNormal)
	assert.Equal(t, "All readings within healthy ranges!", r.AllNormalMessage)
}

func TestBuildEmptyDataset(t *testing.T) {
	r := Build(schema.NewDataset(nil), nil)

	assert.Equal(t, 0, r.Records)
	assert.Empty(t, r.Activity)
	for _, s := range r.Statistics {
		assert.False(t, s.Mean.Valid)
	}
	for _, n := range r.NormalRanges {
		assert.False(t, n.Percent.Valid)
	}
}
