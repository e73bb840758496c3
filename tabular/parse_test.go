package tabular_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/health-metrics-api/schema"
	"github.com/bitmark-inc/health-metrics-api/tabular"
)

const sampleCSV = `Thermoregulation,HeartRateVariation,BloodOxygen,ActivityLevel,SleepPatterns,HormoneImbalance
36.65,77.82,100.47,0,3.05,1
36.01,60.88,97.77,4,5.67,0
36.57,69.80,97.22,0,7.75,0
`

func TestParse(t *testing.T) {
	d, err := tabular.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())

	assert.Equal(t, schema.HealthRecord{
		Thermoregulation:   36.65,
		HeartRateVariation: 77.82,
		BloodOxygen:        100.47,
		ActivityLevel:      0,
		SleepPatterns:      3.05,
		HormoneImbalance:   1,
	}, d.Record(0))
	assert.Equal(t, 4, d.Record(1).ActivityLevel)
	assert.Nil(t, d.ExtraColumns())
}

func TestParseColumnOrderAndExtraColumns(t *testing.T) {
	input := "\ufeffPatientID, SleepPatterns,HormoneImbalance,ActivityLevel,BloodOxygen,HeartRateVariation,Thermoregulation,Ward\n" +
		"p-1,7.5,0,2.0,98.1,72.4,36.8,north\n"

	d, err := tabular.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	r := d.Record(0)
	assert.Equal(t, 36.8, r.Thermoregulation)
	assert.Equal(t, 72.4, r.HeartRateVariation)
	assert.Equal(t, 98.1, r.BloodOxygen)
	assert.Equal(t, 2, r.ActivityLevel)
	assert.Equal(t, 7.5, r.SleepPatterns)
	assert.Equal(t, 0, r.HormoneImbalance)

	assert.Equal(t, []string{"PatientID", "Ward"}, d.ExtraColumns())
	assert.Equal(t, []string{"p-1", "north"}, d.Extras(0))
}

func TestParseHeaderOnly(t *testing.T) {
	d, err := tabular.Parse(strings.NewReader(strings.SplitN(sampleCSV, "\n", 2)[0] + "\n"))
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestParseMissingColumns(t *testing.T) {
	_, err := tabular.Parse(strings.NewReader("Thermoregulation,BloodOxygen,SleepPatterns,HormoneImbalance\n36.5,98,7,0\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabular.ErrSchema))

	var schemaErr *tabular.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []schema.Column{schema.HeartRateVariation, schema.ActivityLevel}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "HeartRateVariation, ActivityLevel")
}

func TestParseColumnNamesAreExact(t *testing.T) {
	_, err := tabular.Parse(strings.NewReader(strings.ToLower(sampleCSV)))
	var schemaErr *tabular.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Len(t, schemaErr.Missing, len(schema.Columns))
}

func TestParseDuplicatedColumn(t *testing.T) {
	input := "Thermoregulation,HeartRateVariation,BloodOxygen,ActivityLevel,SleepPatterns,HormoneImbalance,BloodOxygen\n"
	_, err := tabular.Parse(strings.NewReader(input))

	var schemaErr *tabular.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Empty(t, schemaErr.Missing)
	assert.Equal(t, []schema.Column{schema.BloodOxygen}, schemaErr.Duplicated)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := tabular.Parse(strings.NewReader(""))
	assert.True(t, errors.Is(err, tabular.ErrSchema))
}

func TestParseInvalidCells(t *testing.T) {
	header := strings.SplitN(sampleCSV, "\n", 2)[0] + "\n"
	cases := []struct {
		row    string
		column schema.Column
		value  string
	}{
		{"abc,77.82,100.47,0,3.05,1", schema.Thermoregulation, "abc"},
		{"36.6,,100.47,0,3.05,1", schema.HeartRateVariation, ""},
		{"36.6,77.82,NaN,0,3.05,1", schema.BloodOxygen, "NaN"},
		{"36.6,77.82,100.47,1.5,3.05,1", schema.ActivityLevel, "1.5"},
		{"36.6,77.82,100.47,0,3.05,yes", schema.HormoneImbalance, "yes"},
	}

	for _, c := range cases {
		input := header + "36.01,60.88,97.77,4,5.67,0\n" + c.row + "\n"
		_, err := tabular.Parse(strings.NewReader(input))
		require.Error(t, err, c.row)
		assert.True(t, errors.Is(err, tabular.ErrParse), c.row)

		var parseErr *tabular.ParseError
		require.True(t, errors.As(err, &parseErr), c.row)
		assert.Equal(t, 2, parseErr.Row, c.row)
		assert.Equal(t, string(c.column), parseErr.Column, c.row)
		assert.Equal(t, c.value, parseErr.Value, c.row)
	}
}

func TestParseMalformedRow(t *testing.T) {
	input := sampleCSV + "36.5,70\n"
	_, err := tabular.Parse(strings.NewReader(input))

	var parseErr *tabular.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 4, parseErr.Row)
	assert.Empty(t, parseErr.Column)
}
