package schema

// ColumnSummary is the descriptive statistics of one column
type ColumnSummary struct {
	Column Column        `json:"column"`
	Count  int           `json:"count"`
	Mean   NullableFloat `json:"mean"`
	Std    NullableFloat `json:"std"`
	Min    NullableFloat `json:"min"`
	P25    NullableFloat `json:"p25"`
	P50    NullableFloat `json:"p50"`
	P75    NullableFloat `json:"p75"`
	Max    NullableFloat `json:"max"`
}

// CorrelationMatrix is a symmetric matrix of Pearson coefficients.
// Values[i][j] is the coefficient of Columns[i] and Columns[j].
type CorrelationMatrix struct {
	Columns []Column          `json:"columns"`
	Values  [][]NullableFloat `json:"values"`
}

// Get returns the coefficient of two columns
func (m CorrelationMatrix) Get(a, b Column) NullableFloat {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return Undefined
	}
	return m.Values[i][j]
}

func (m CorrelationMatrix) index(c Column) int {
	for i, col := range m.Columns {
		if col == c {
			return i
		}
	}
	return -1
}

// AlertFinding summarises the readings violating one clinical threshold
type AlertFinding struct {
	ID        string `json:"id"`
	Metric    Column `json:"metric"`
	Condition string `json:"condition"`
	Count     int    `json:"count"`
	Message   string `json:"message,omitempty"`
}

// NormalRangeResult is the share of readings inside a normal range
type NormalRangeResult struct {
	Metric   Column        `json:"metric"`
	Range    string        `json:"range"`
	Matching int           `json:"matching"`
	Total    int           `json:"total"`
	Percent  NullableFloat `json:"percent"`
}

// ActivityGroup holds the means of the readings sharing an activity level.
// A mean whose sum overflows is undefined.
type ActivityGroup struct {
	ActivityLevel      int           `json:"activity_level"`
	Count              int           `json:"count"`
	Thermoregulation   NullableFloat `json:"Thermoregulation"`
	HeartRateVariation NullableFloat `json:"HeartRateVariation"`
	BloodOxygen        NullableFloat `json:"BloodOxygen"`
	SleepPatterns      NullableFloat `json:"SleepPatterns"`
}

// ValueCount is the number of readings sharing a categorical value
type ValueCount struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// HistogramBin counts readings within [Lower, Upper). The last bin of a
// histogram also includes its upper bound.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// TrendPoint is the value of a column at a reading number
type TrendPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// KeyMetric is the mean and spread of a column
type KeyMetric struct {
	Metric Column        `json:"metric"`
	Mean   NullableFloat `json:"mean"`
	Std    NullableFloat `json:"std"`
}
