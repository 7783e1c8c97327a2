package tabular

// Record is an ordered mapping from column name to a scalar Value.
// Column order is preserved for deterministic output; column names are
// unique within a record.
type Record struct {
	columns []string
	values  map[string]Value
}

// NewRecord creates an empty record.
func NewRecord() Record {
	return Record{values: make(map[string]Value)}
}

// Set stores a value under the given column, appending the column to the
// order on first write. Setting an existing column overwrites in place.
func (r *Record) Set(column string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
	}
	r.values[column] = v
}

// Get returns the value stored under the column and whether it exists.
func (r Record) Get(column string) (Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value stored under the column, or the null value when
// the column is absent.
func (r Record) Value(column string) Value {
	if v, ok := r.values[column]; ok {
		return v
	}
	return Null()
}

// Columns returns the column names in insertion order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns in the record.
func (r Record) Len() int {
	return len(r.columns)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := Record{
		columns: make([]string, len(r.columns)),
		values:  make(map[string]Value, len(r.values)),
	}
	copy(out.columns, r.columns)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}

// Dataset is an ordered sequence of records sharing a common column set.
// Row order carries no comparison semantics but is preserved so output
// ordering is stable.
type Dataset struct {
	columns []string
	records []Record
}

// NewDataset creates an empty dataset with the given column set.
func NewDataset(columns []string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{columns: cols}
}

// Append adds a record to the dataset.
func (d *Dataset) Append(rec Record) {
	d.records = append(d.records, rec)
}

// Columns returns the dataset's column names in header order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the dataset's column set contains the name.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Records returns the dataset's records in input order.
func (d *Dataset) Records() []Record {
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := NewDataset(d.columns)
	out.records = make([]Record, 0, len(d.records))
	for _, rec := range d.records {
		out.records = append(out.records, rec.Clone())
	}
	return out
}
