package types

// Field is a single named value inside a record.
type Field struct {
	Name  string // field name as it appeared in the source object
	Value Value  // field value
}

// Record is an ordered set of named fields. Field order is insertion order
// and is preserved through encode, decode, and query evaluation; the wire
// format depends on it for positional row encoding.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Set stores a value under name, replacing an existing field in place or
// appending a new one. It returns the record to allow chained construction.
func (r *Record) Set(name string, v Value) *Record {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = v
		return r
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})
	return r
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (Value, bool) {
	if r == nil || r.index == nil {
		return Value{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Has reports whether the record carries a field with the given name.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Fields returns the fields in insertion order. The slice is shared with the
// record and must not be mutated by the caller.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	return r.fields
}

// Names returns the field names in insertion order.
func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Clone returns a shallow copy: field order and values are duplicated but
// nested arrays and objects are shared.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		fields: make([]Field, len(r.fields)),
		index:  make(map[string]int, len(r.fields)),
	}
	copy(out.fields, r.fields)
	for name, i := range r.index {
		out.index[name] = i
	}
	return out
}

// Equal reports deep, order-sensitive equality with another record.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r.Len() == 0 && other.Len() == 0
	}
	if len(r.fields) != len(other.fields) {
		return false
	}
	for i, f := range r.fields {
		of := other.fields[i]
		if f.Name != of.Name || !f.Value.Equal(of.Value) {
			return false
		}
	}
	return true
}
