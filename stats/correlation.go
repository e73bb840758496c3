package stats

import (
	"math"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

// Correlate computes the Pearson correlation of every pair of required
// columns. Rows and columns of a constant column are undefined, and so is
// the whole matrix with fewer than two readings.
func Correlate(d *schema.Dataset) schema.CorrelationMatrix {
	columns := append([]schema.Column(nil), schema.Columns...)
	size := len(columns)

	m := schema.CorrelationMatrix{
		Columns: columns,
		Values:  make([][]schema.NullableFloat, size),
	}
	for i := range m.Values {
		m.Values[i] = make([]schema.NullableFloat, size)
	}

	if d.Len() < 2 {
		return m
	}

	values := make([][]float64, size)
	for i, c := range columns {
		values[i] = d.Values(c)
	}

	for i := 0; i < size; i++ {
		if isConstant(values[i]) {
			continue
		}
		m.Values[i][i] = schema.Defined(1)

		for j := i + 1; j < size; j++ {
			if isConstant(values[j]) {
				continue
			}
			r := Pearson(values[i], values[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}

	return m
}

// Pearson is the covariance of a and b divided by the product of their
// standard deviations. It is undefined when either side has no variance.
func Pearson(a, b []float64) schema.NullableFloat {
	n := len(a)
	if n < 2 || n != len(b) || isConstant(a) || isConstant(b) {
		return schema.Undefined
	}

	meanA := Mean(a).Float64
	meanB := Mean(b).Float64

	var sab, saa, sbb float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		sab += da * db
		saa += da * da
		sbb += db * db
	}
	if saa == 0 || sbb == 0 {
		return schema.Undefined
	}

	r := sab / math.Sqrt(saa*sbb)
	return schema.Defined(math.Max(-1, math.Min(1, r)))
}

// isConstant compares values directly, a mean based variance of identical
// values is not always exactly zero
func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
