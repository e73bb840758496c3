package schema

// Column is the name of one of the six measured fields of a reading
type Column string

const (
	Thermoregulation   Column = "Thermoregulation"
	HeartRateVariation Column = "HeartRateVariation"
	BloodOxygen        Column = "BloodOxygen"
	ActivityLevel      Column = "ActivityLevel"
	SleepPatterns      Column = "SleepPatterns"
	HormoneImbalance   Column = "HormoneImbalance"
)

// Columns lists the required columns in canonical order
var Columns = []Column{
	Thermoregulation,
	HeartRateVariation,
	BloodOxygen,
	ActivityLevel,
	SleepPatterns,
	HormoneImbalance,
}

// ColumnFromName returns the column for an exact column name
func ColumnFromName(name string) (Column, bool) {
	for _, c := range Columns {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// IsInteger reports whether the column holds categorical integer values
func (c Column) IsInteger() bool {
	return c == ActivityLevel || c == HormoneImbalance
}

const (
	HormoneBalanced   = 0
	HormoneImbalanced = 1
)

// HealthRecord is one reading of physiological measurements
type HealthRecord struct {
	Thermoregulation   float64 `json:"Thermoregulation" msgpack:"t"`
	HeartRateVariation float64 `json:"HeartRateVariation" msgpack:"h"`
	BloodOxygen        float64 `json:"BloodOxygen" msgpack:"o"`
	ActivityLevel      int     `json:"ActivityLevel" msgpack:"a"`
	SleepPatterns      float64 `json:"SleepPatterns" msgpack:"s"`
	HormoneImbalance   int     `json:"HormoneImbalance" msgpack:"i"`
}

// Value returns the value of a column as float64
func (r HealthRecord) Value(c Column) float64 {
	switch c {
	case Thermoregulation:
		return r.Thermoregulation
	case HeartRateVariation:
		return r.HeartRateVariation
	case BloodOxygen:
		return r.BloodOxygen
	case ActivityLevel:
		return float64(r.ActivityLevel)
	case SleepPatterns:
		return r.SleepPatterns
	case HormoneImbalance:
		return float64(r.HormoneImbalance)
	}
	return 0
}
