package alert

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/health-metrics-api/consts"
	"github.com/bitmark-inc/health-metrics-api/schema"
)

// Comparison is how a reading is compared with a threshold
type Comparison int

const (
	Above Comparison = iota
	Below
	Equal
)

func (c Comparison) String() string {
	switch c {
	case Above:
		return ">"
	case Below:
		return "<"
	case Equal:
		return "=="
	}
	return "?"
}

const (
	TemperatureHigh  = "temperature_high"
	TemperatureLow   = "temperature_low"
	HeartRateHigh    = "heart_rate_high"
	HeartRateLow     = "heart_rate_low"
	OxygenLow        = "oxygen_low"
	SleepLow         = "sleep_low"
	HormoneImbalance = "hormone_imbalance"
)

// Rule flags the readings of a column beyond a threshold
type Rule struct {
	ID         string
	Metric     schema.Column
	Comparison Comparison
	Threshold  float64
}

// DefaultRules are the clinical alerts, in reporting order
var DefaultRules = []Rule{
	{TemperatureHigh, schema.Thermoregulation, Above, consts.TemperatureHighThreshold},
	{TemperatureLow, schema.Thermoregulation, Below, consts.TemperatureLowThreshold},
	{HeartRateHigh, schema.HeartRateVariation, Above, consts.HeartRateHighThreshold},
	{HeartRateLow, schema.HeartRateVariation, Below, consts.HeartRateLowThreshold},
	{OxygenLow, schema.BloodOxygen, Below, consts.OxygenLowThreshold},
	{SleepLow, schema.SleepPatterns, Below, consts.SleepLowThreshold},
	{HormoneImbalance, schema.HormoneImbalance, Equal, schema.HormoneImbalanced},
}

// Matches reports whether a reading violates the rule
func (r Rule) Matches(record schema.HealthRecord) bool {
	v := record.Value(r.Metric)
	switch r.Comparison {
	case Above:
		return v > r.Threshold
	case Below:
		return v < r.Threshold
	case Equal:
		return v == r.Threshold
	}
	return false
}

// Condition describes the rule, e.g. "Thermoregulation > 37.5"
func (r Rule) Condition() string {
	return fmt.Sprintf("%s %s %s", r.Metric, r.Comparison, strconv.FormatFloat(r.Threshold, 'f', -1, 64))
}
