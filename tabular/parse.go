package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

const byteOrderMark = "\ufeff"

var (
	errEmptyCell    = errors.New("empty cell")
	errNotFinite    = errors.New("value is not finite")
	errNotAnInteger = errors.New("value is not an integer")
)

// Parse reads a comma separated table with a header row into a Dataset.
//
// The header must name every required column exactly once, in any order.
// Other columns are kept as raw cells of the dataset. A table with a header
// and no data row gives an empty dataset.
func Parse(r io.Reader) (*schema.Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SchemaError{Missing: append([]schema.Column(nil), schema.Columns...)}
	}
	if err != nil {
		return nil, &ParseError{Row: 0, Err: err}
	}

	positions, extraPositions, extraColumns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var records []schema.HealthRecord
	var extras [][]string
	for row := 1; ; row++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Row: row, Err: err}
		}

		record, err := parseRecord(row, cells, positions)
		if err != nil {
			return nil, err
		}
		records = append(records, record)

		if len(extraPositions) > 0 {
			extra := make([]string, len(extraPositions))
			for i, p := range extraPositions {
				extra[i] = cells[p]
			}
			extras = append(extras, extra)
		}
	}

	return schema.NewDatasetWithExtras(records, extraColumns, extras), nil
}

// mapHeader locates the required columns in the header row
func mapHeader(header []string) (map[schema.Column]int, []int, []string, error) {
	positions := make(map[schema.Column]int, len(schema.Columns))
	extraPositions := make([]int, 0)
	extraColumns := make([]string, 0)
	duplicated := make(map[schema.Column]bool)

	for i, h := range header {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))
		}

		c, ok := schema.ColumnFromName(name)
		if !ok {
			extraPositions = append(extraPositions, i)
			extraColumns = append(extraColumns, name)
			continue
		}

		if _, seen := positions[c]; seen {
			duplicated[c] = true
			continue
		}
		positions[c] = i
	}

	var schemaErr SchemaError
	for _, c := range schema.Columns {
		if _, ok := positions[c]; !ok {
			schemaErr.Missing = append(schemaErr.Missing, c)
		}
		if duplicated[c] {
			schemaErr.Duplicated = append(schemaErr.Duplicated, c)
		}
	}
	if len(schemaErr.Missing) > 0 || len(schemaErr.Duplicated) > 0 {
		return nil, nil, nil, &schemaErr
	}

	return positions, extraPositions, extraColumns, nil
}

func parseRecord(row int, cells []string, positions map[schema.Column]int) (schema.HealthRecord, error) {
	var r schema.HealthRecord
	var err error

	float := func(c schema.Column) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = parseFloatCell(row, c, cells[positions[c]])
		return v
	}
	integer := func(c schema.Column) int {
		if err != nil {
			return 0
		}
		var v int
		v, err = parseIntCell(row, c, cells[positions[c]])
		return v
	}

	r.Thermoregulation = float(schema.Thermoregulation)
	r.HeartRateVariation = float(schema.HeartRateVariation)
	r.BloodOxygen = float(schema.BloodOxygen)
	r.ActivityLevel = integer(schema.ActivityLevel)
	r.SleepPatterns = float(schema.SleepPatterns)
	r.HormoneImbalance = integer(schema.HormoneImbalance)

	return r, err
}

func parseFloatCell(row int, c schema.Column, cell string) (float64, error) {
	value := strings.TrimSpace(cell)
	if value == "" {
		return 0, &ParseError{Row: row, Column: string(c), Value: cell, Err: errEmptyCell}
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ParseError{Row: row, Column: string(c), Value: cell, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Row: row, Column: string(c), Value: cell, Err: errNotFinite}
	}

	return f, nil
}

// parseIntCell accepts integers and integral decimals such as "2.0"
func parseIntCell(row int, c schema.Column, cell string) (int, error) {
	value := strings.TrimSpace(cell)
	if i, err := strconv.Atoi(value); err == nil {
		return i, nil
	}

	f, err := parseFloatCell(row, c, cell)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, &ParseError{Row: row, Column: string(c), Value: cell, Err: errNotAnInteger}
	}

	return int(f), nil
}
