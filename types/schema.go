package types

// FieldType is an ATON schema type tag.
type FieldType string

const (
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeStr    FieldType = "str"
	TypeBool   FieldType = "bool"
	TypeArray  FieldType = "array"
	TypeObject FieldType = "object"
	TypeNull   FieldType = "null"
)

// TypeOf returns the schema type tag for a value.
func TypeOf(v Value) FieldType {
	return FieldType(v.Kind().String())
}

// SchemaField pairs a field name with its inferred type tag.
type SchemaField struct {
	Name string    // field name in first-record order
	Type FieldType // type tag inferred from the first record
}

// Schema is the ordered field layout of one table, inferred from the first
// record and used for positional row encoding.
type Schema []SchemaField

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Field returns the schema entry with the given name.
func (s Schema) Field(name string) (SchemaField, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return SchemaField{}, false
}
