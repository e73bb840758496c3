package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

// Write serializes a dataset as a comma separated table: one header row,
// then one row per reading. The required columns come first in canonical
// order, followed by the extra columns of the source table.
func Write(w io.Writer, d *schema.Dataset) error {
	writer := csv.NewWriter(w)
	extraColumns := d.ExtraColumns()

	header := make([]string, 0, len(schema.Columns)+len(extraColumns))
	for _, c := range schema.Columns {
		header = append(header, string(c))
	}
	header = append(header, extraColumns...)

	if err := writer.Write(header); err != nil {
		return err
	}

	for i := 0; i < d.Len(); i++ {
		r := d.Record(i)
		row := []string{
			formatFloat(r.Thermoregulation),
			formatFloat(r.HeartRateVariation),
			formatFloat(r.BloodOxygen),
			strconv.Itoa(r.ActivityLevel),
			formatFloat(r.SleepPatterns),
			strconv.Itoa(r.HormoneImbalance),
		}
		row = append(row, d.Extras(i)...)

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Marshal returns the serialized form of Write
func Marshal(d *schema.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
