package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

func TestCorrelateIsSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	m := Correlate(randomDataset(r, 200))

	for _, a := range schema.Columns {
		assert.Equal(t, schema.Defined(1), m.Get(a, a), "diagonal of %s", a)
		for _, b := range schema.Columns {
			assert.Equal(t, m.Get(a, b), m.Get(b, a))
			v := m.Get(a, b)
			assert.True(t, v.Valid)
			assert.True(t, v.Float64 >= -1 && v.Float64 <= 1)
		}
	}
}

func TestCorrelateSample(t *testing.T) {
	m := Correlate(sample)
	assert.Equal(t, schema.Columns, m.Columns)
	assert.InDelta(t, 0.929414, m.Get(schema.Thermoregulation, schema.HeartRateVariation).Float64, 1e-6)
	assert.InDelta(t, -0.993399, m.Get(schema.ActivityLevel, schema.Thermoregulation).Float64, 1e-6)
	assert.InDelta(t, -0.5, m.Get(schema.ActivityLevel, schema.HormoneImbalance).Float64, 1e-9)
	assert.InDelta(t, 0.987424, m.Get(schema.HormoneImbalance, schema.BloodOxygen).Float64, 1e-6)
}

func TestCorrelateConstantColumn(t *testing.T) {
	d := schema.NewDataset([]schema.HealthRecord{
		{Thermoregulation: 36.6, HeartRateVariation: 70, BloodOxygen: 97, ActivityLevel: 1, SleepPatterns: 7, HormoneImbalance: 0},
		{Thermoregulation: 36.9, HeartRateVariation: 80, BloodOxygen: 98, ActivityLevel: 2, SleepPatterns: 6, HormoneImbalance: 0},
		{Thermoregulation: 37.1, HeartRateVariation: 90, BloodOxygen: 96, ActivityLevel: 3, SleepPatterns: 8, HormoneImbalance: 0},
	})
	m := Correlate(d)

	for _, c := range schema.Columns {
		assert.False(t, m.Get(schema.HormoneImbalance, c).Valid, "hormone vs %s", c)
		assert.False(t, m.Get(c, schema.HormoneImbalance).Valid, "%s vs hormone", c)
	}
	assert.Equal(t, schema.Defined(1), m.Get(schema.ActivityLevel, schema.HeartRateVariation))
	assert.Equal(t, schema.Defined(1), m.Get(schema.Thermoregulation, schema.Thermoregulation))
}

func TestCorrelateTooFewReadings(t *testing.T) {
	for _, d := range []*schema.Dataset{
		schema.NewDataset(nil),
		schema.NewDataset(sample.Records()[:1]),
	} {
		m := Correlate(d)
		assert.Len(t, m.Values, len(schema.Columns))
		for _, row := range m.Values {
			for _, v := range row {
				assert.False(t, v.Valid)
			}
		}
	}
}

func TestPearson(t *testing.T) {
	assert.Equal(t, schema.Defined(1), Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}))
	assert.Equal(t, schema.Defined(-1), Pearson([]float64{1, 2, 3}, []float64{-1, -2, -3}))
	assert.False(t, Pearson([]float64{1, 2, 3}, []float64{5, 5, 5}).Valid)
	assert.False(t, Pearson([]float64{1, 2}, []float64{1, 2, 3}).Valid)
}
