package schema

// Dataset is an ordered, read-only collection of readings. The order is the
// order the readings were taken in.
//
// Columns of the source table that are not part of HealthRecord are kept as
// raw cells so that exports can reproduce them.
type Dataset struct {
	records      []HealthRecord
	extraColumns []string
	extras       [][]string
}

// DatasetSnapshot is the exported form of a Dataset used by storage codecs
type DatasetSnapshot struct {
	Records      []HealthRecord `msgpack:"records"`
	ExtraColumns []string       `msgpack:"extra_columns"`
	Extras       [][]string     `msgpack:"extras"`
}

// NewDataset copies records into a new Dataset without extra columns
func NewDataset(records []HealthRecord) *Dataset {
	return NewDatasetWithExtras(records, nil, nil)
}

// NewDatasetWithExtras copies records and extra cells into a new Dataset.
// extras must be nil or hold one row of len(extraColumns) cells per record.
func NewDatasetWithExtras(records []HealthRecord, extraColumns []string, extras [][]string) *Dataset {
	d := &Dataset{
		records: append([]HealthRecord(nil), records...),
	}

	if len(extraColumns) > 0 {
		d.extraColumns = append([]string(nil), extraColumns...)
		d.extras = make([][]string, len(records))
		for i := range records {
			row := make([]string, len(extraColumns))
			if i < len(extras) {
				copy(row, extras[i])
			}
			d.extras[i] = row
		}
	}

	return d
}

// FromSnapshot rebuilds a Dataset from its exported form
func FromSnapshot(s DatasetSnapshot) *Dataset {
	return NewDatasetWithExtras(s.Records, s.ExtraColumns, s.Extras)
}

// Snapshot returns a copy of the dataset content in exported form
func (d *Dataset) Snapshot() DatasetSnapshot {
	return DatasetSnapshot{
		Records:      d.Records(),
		ExtraColumns: d.ExtraColumns(),
		Extras:       d.copyExtras(),
	}
}

// Len returns the number of readings
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// IsEmpty reports whether the dataset holds no reading
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// Record returns the i-th reading
func (d *Dataset) Record(i int) HealthRecord {
	return d.records[i]
}

// Records returns a copy of all readings
func (d *Dataset) Records() []HealthRecord {
	if d == nil {
		return []HealthRecord{}
	}
	return append([]HealthRecord{}, d.records...)
}

// Values returns the values of a column in reading order
func (d *Dataset) Values(c Column) []float64 {
	values := make([]float64, d.Len())
	for i := range values {
		values[i] = d.records[i].Value(c)
	}
	return values
}

// ExtraColumns returns the names of the non-required input columns
func (d *Dataset) ExtraColumns() []string {
	if d == nil || len(d.extraColumns) == 0 {
		return nil
	}
	return append([]string(nil), d.extraColumns...)
}

// Extras returns the raw extra cells of the i-th reading
func (d *Dataset) Extras(i int) []string {
	if len(d.extras) == 0 {
		return nil
	}
	return append([]string(nil), d.extras[i]...)
}

// Subset returns a new dataset holding the readings at indices, in the
// given order. Extra cells follow their readings.
func (d *Dataset) Subset(indices []int) *Dataset {
	records := make([]HealthRecord, 0, len(indices))
	var extras [][]string
	if len(d.extraColumns) > 0 {
		extras = make([][]string, 0, len(indices))
	}

	for _, i := range indices {
		records = append(records, d.records[i])
		if extras != nil {
			extras = append(extras, d.extras[i])
		}
	}

	return NewDatasetWithExtras(records, d.extraColumns, extras)
}

func (d *Dataset) copyExtras() [][]string {
	if d == nil || len(d.extras) == 0 {
		return nil
	}
	extras := make([][]string, len(d.extras))
	for i, row := range d.extras {
		extras[i] = append([]string(nil), row...)
	}
	return extras
}
