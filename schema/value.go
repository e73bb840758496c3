package schema

import (
	"encoding/json"
	"math"
	"strconv"
)

const undefinedText = "undefined"

// NullableFloat is a statistic which may be undefined, e.g. the mean of an
// empty dataset or the correlation of a constant column.
type NullableFloat struct {
	Float64 float64
	Valid   bool
}

// Undefined is the value of a statistic that cannot be computed
var Undefined = NullableFloat{}

// Defined wraps v. NaN and infinities are turned into Undefined.
func Defined(v float64) NullableFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return NullableFloat{Float64: v, Valid: true}
}

// Or returns the value, or fallback when undefined
func (n NullableFloat) Or(fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Float64
}

// Format formats a defined value with the given precision
func (n NullableFloat) Format(prec int) string {
	if !n.Valid {
		return undefinedText
	}
	return strconv.FormatFloat(n.Float64, 'f', prec, 64)
}

func (n NullableFloat) String() string {
	return n.Format(-1)
}

func (n NullableFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Undefined
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Defined(v)
	return nil
}
