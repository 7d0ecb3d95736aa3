package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetUnmarshalPreservesOrder(t *testing.T) {
	src := `{
		"users": [
			{"zeta": 1, "alpha": "first", "mid": true},
			{"zeta": 2, "alpha": "second", "mid": false}
		],
		"orders": [
			{"id": 10, "total": 99.5}
		]
	}`

	var d Dataset
	require.NoError(t, json.Unmarshal([]byte(src), &d))

	assert.Equal(t, []string{"users", "orders"}, d.Tables())

	users, ok := d.Get("users")
	require.True(t, ok)
	require.Len(t, users, 2)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, users[0].Names())

	orders, _ := d.Get("orders")
	require.Len(t, orders, 1)
	total, ok := orders[0].Get("total")
	require.True(t, ok)
	assert.Equal(t, KindFloat, total.Kind())
	assert.Equal(t, 99.5, total.Float())
}

func TestDatasetJSONRoundTrip(t *testing.T) {
	src := `{"users":[{"id":1,"name":"Alice","tags":["a","b"],"meta":{"x":1.5}},{"id":2,"name":null}]}`

	var d Dataset
	require.NoError(t, json.Unmarshal([]byte(src), &d))

	out, err := json.Marshal(&d)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestDatasetUnmarshalRejectsNonRecords(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"table not an array", `{"users": {"id": 1}}`},
		{"scalar table", `{"users": 3}`},
		{"record not an object", `{"users": [1, 2]}`},
		{"top level array", `[{"id": 1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Dataset
			assert.Error(t, json.Unmarshal([]byte(tt.src), &d))
		})
	}
}

func TestValueUnmarshalNumberSplit(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantKind Kind
	}{
		{"plain int", `3`, KindInt},
		{"zero fraction normalizes to int", `3.0`, KindInt},
		{"fractional", `3.25`, KindFloat},
		{"integral exponent", `1e3`, KindInt},
		{"huge", `1e308`, KindFloat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.src), &v))
			assert.Equal(t, tt.wantKind, v.Kind())
		})
	}
}

func TestValueMarshalEscaping(t *testing.T) {
	v := String("line1\nline2\t\"quoted\" \\slash")
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2\t\"quoted\" \\slash"`, string(out))

	var back Value
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, v.Equal(back))
}

func TestValueMarshalContainers(t *testing.T) {
	v := Array(Int(1), Object(NewRecord().Set("b", Bool(true)).Set("a", Null())), String("x"))
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `[1,{"b":true,"a":null},"x"]`, string(out))
}
