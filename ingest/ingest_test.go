package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/aton/types"
)

func TestFromJSONTableMap(t *testing.T) {
	ds, err := FromJSON([]byte(`{"users":[{"id":1,"name":"Ada"},{"id":2,"name":"Grace"}],"tags":[{"key":"x"}]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"users", "tags"}, ds.Tables())

	users, ok := ds.Get("users")
	require.True(t, ok)
	require.Len(t, users, 2)
	assert.Equal(t, []string{"id", "name"}, users[0].Names())

	id, _ := users[1].Get("id")
	assert.Equal(t, types.Int(2), id)
}

func TestFromJSONBareArray(t *testing.T) {
	ds, err := FromJSON([]byte(`  [{"a":1},{"a":2}]`))
	require.NoError(t, err)

	records, ok := ds.Get(DefaultTable)
	require.True(t, ok)
	assert.Len(t, records, 2)
}

func TestFromJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"whitespace only", "   \n"},
		{"top-level scalar", "42"},
		{"non-object record", `[{"a":1}, 7]`},
		{"table value not an array", `{"users":{"id":1}}`},
		{"truncated document", `{"users":[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestFromYAMLTableMap(t *testing.T) {
	ds, err := FromYAML([]byte(`
users:
  - zeta: last
    id: 1
    active: true
  - zeta: again
    id: 2
    active: false
readings:
  - temp: 21.5
    whole: 3.0
    hex: 0x10
    tags: [a, b]
    meta:
      source: probe
    note: null
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"users", "readings"}, ds.Tables())

	users, _ := ds.Get("users")
	require.Len(t, users, 2)
	// YAML mapping order survives, declaration order is not alphabetized
	assert.Equal(t, []string{"zeta", "id", "active"}, users[0].Names())

	readings, _ := ds.Get("readings")
	require.Len(t, readings, 1)
	r := readings[0]

	temp, _ := r.Get("temp")
	assert.Equal(t, types.Float(21.5), temp)
	whole, _ := r.Get("whole")
	assert.Equal(t, types.Int(3), whole, "whole-valued floats collapse to ints")
	hex, _ := r.Get("hex")
	assert.Equal(t, types.Int(16), hex)
	tags, _ := r.Get("tags")
	assert.Equal(t, types.Array(types.String("a"), types.String("b")), tags)
	meta, _ := r.Get("meta")
	require.Equal(t, types.KindObject, meta.Kind())
	source, _ := meta.Obj().Get("source")
	assert.Equal(t, types.String("probe"), source)
	note, _ := r.Get("note")
	assert.True(t, note.IsNull())
}

func TestFromYAMLBareSequence(t *testing.T) {
	ds, err := FromYAML([]byte("- a: 1\n- a: 2\n"))
	require.NoError(t, err)

	records, ok := ds.Get(DefaultTable)
	require.True(t, ok)
	assert.Len(t, records, 2)
}

func TestFromYAMLAliases(t *testing.T) {
	ds, err := FromYAML([]byte(`
people:
  - name: &n Ada
    role: pioneer
  - name: *n
    role: repeat
`))
	require.NoError(t, err)

	people, _ := ds.Get("people")
	require.Len(t, people, 2)
	first, _ := people[0].Get("name")
	second, _ := people[1].Get("name")
	assert.Equal(t, first, second)
	assert.Equal(t, "Ada", second.Str())
}

func TestFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"top-level scalar", "hello"},
		{"table value not a sequence", "users:\n  id: 1\n"},
		{"record not a mapping", "users:\n  - 7\n"},
		{"unclosed flow sequence", "users: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestYAMLMatchesJSON(t *testing.T) {
	fromYAML, err := FromYAML([]byte(`
items:
  - id: 1
    name: widget
    price: 9.99
    stock: 3.0
    tags: [new, sale]
    active: true
    note: null
`))
	require.NoError(t, err)

	fromJSON, err := FromJSON([]byte(`{"items":[{"id":1,"name":"widget","price":9.99,"stock":3.0,"tags":["new","sale"],"active":true,"note":null}]}`))
	require.NoError(t, err)

	assert.True(t, fromYAML.Equal(fromJSON), "equivalent YAML and JSON ingest to equal datasets")
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		want Format
	}{
		{"json extension", "data.json", "key: value", FormatJSON},
		{"yaml extension", "data.yaml", `{"a":1}`, FormatYAML},
		{"yml extension", "data.yml", "", FormatYAML},
		{"uppercase extension", "DATA.JSON", "", FormatJSON},
		{"sniffed object", "", `  {"a":1}`, FormatJSON},
		{"sniffed array", "", `[1,2]`, FormatJSON},
		{"sniffed yaml", "", "key: value", FormatYAML},
		{"empty input defaults to yaml", "", "", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.file, []byte(tt.data)))
		})
	}
}

func TestParse(t *testing.T) {
	ds, err := Parse([]byte(`{"t":[{"a":1}]}`), FormatJSON)
	require.NoError(t, err)
	assert.True(t, ds.Has("t"))

	ds, err = Parse([]byte("t:\n  - a: 1\n"), FormatYAML)
	require.NoError(t, err)
	assert.True(t, ds.Has("t"))

	_, err = Parse([]byte("{}"), Format("xml"))
	assert.Error(t, err)
}
