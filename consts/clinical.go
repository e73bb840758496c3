package consts

// Alert thresholds
const (
	TemperatureHighThreshold = 37.5
	TemperatureLowThreshold  = 36.0
	HeartRateHighThreshold   = 100.0
	HeartRateLowThreshold    = 60.0
	OxygenLowThreshold       = 95.0
	SleepLowThreshold        = 6.0
)

// Normal ranges, bounds inclusive
const (
	TemperatureNormalMin = 36.1
	TemperatureNormalMax = 37.2
	HeartRateNormalMin   = 60.0
	HeartRateNormalMax   = 100.0
	OxygenNormalMin      = 95.0
	SleepNormalMin       = 7.0
)

// Histogram bins of a distribution chart
const (
	DefaultHistogramBins = 30
	MaxHistogramBins     = 1000
)
