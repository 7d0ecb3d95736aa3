package types

// Dataset maps table names to record lists, preserving the order in which
// tables were added. It is the unit of work for the encoder, decoder, and
// query engine.
type Dataset struct {
	tables []tableEntry
	index  map[string]int
}

type tableEntry struct {
	name    string
	records []*Record
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{index: make(map[string]int)}
}

// Set stores records under the table name, replacing an existing table in
// place or appending a new one. It returns the dataset to allow chained
// construction.
func (d *Dataset) Set(table string, records []*Record) *Dataset {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[table]; ok {
		d.tables[i].records = records
		return d
	}
	d.index[table] = len(d.tables)
	d.tables = append(d.tables, tableEntry{name: table, records: records})
	return d
}

// Append adds records to the named table, creating it if absent.
func (d *Dataset) Append(table string, records ...*Record) *Dataset {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[table]; ok {
		d.tables[i].records = append(d.tables[i].records, records...)
		return d
	}
	d.index[table] = len(d.tables)
	d.tables = append(d.tables, tableEntry{name: table, records: records})
	return d
}

// Get returns the records of the named table.
func (d *Dataset) Get(table string) ([]*Record, bool) {
	if d == nil || d.index == nil {
		return nil, false
	}
	i, ok := d.index[table]
	if !ok {
		return nil, false
	}
	return d.tables[i].records, true
}

// Has reports whether the dataset carries the named table.
func (d *Dataset) Has(table string) bool {
	_, ok := d.Get(table)
	return ok
}

// Tables returns the table names in insertion order.
func (d *Dataset) Tables() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.tables))
	for i, t := range d.tables {
		names[i] = t.name
	}
	return names
}

// Len returns the number of tables.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.tables)
}

// Records returns the total record count across all tables.
func (d *Dataset) Records() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, t := range d.tables {
		n += len(t.records)
	}
	return n
}

// Clone returns a copy with duplicated table and record lists. Individual
// records are cloned shallowly; see Record.Clone.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := NewDataset()
	for _, t := range d.tables {
		records := make([]*Record, len(t.records))
		for i, r := range t.records {
			records[i] = r.Clone()
		}
		out.Set(t.name, records)
	}
	return out
}

// Equal reports deep equality with another dataset, sensitive to table order,
// record order, and field order.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d.Len() == 0 && other.Len() == 0
	}
	if len(d.tables) != len(other.tables) {
		return false
	}
	for i, t := range d.tables {
		ot := other.tables[i]
		if t.name != ot.name || len(t.records) != len(ot.records) {
			return false
		}
		for j, r := range t.records {
			if !r.Equal(ot.records[j]) {
				return false
			}
		}
	}
	return true
}
