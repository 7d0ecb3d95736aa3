package codec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/types"
)

func plainOptions() EncoderOptions {
	return EncoderOptions{Compression: compress.ModeFast, Validate: true}
}

func TestEncodeWorkedExample(t *testing.T) {
	ds := types.NewDataset().Set("employees", []*types.Record{
		types.NewRecord().Set("id", types.Int(1)).Set("name", types.String("Alice")).Set("role", types.String("Engineering")).Set("active", types.Bool(true)),
		types.NewRecord().Set("id", types.Int(2)).Set("name", types.String("Bob")).Set("role", types.String("Engineering")).Set("active", types.Bool(true)),
		types.NewRecord().Set("id", types.Int(3)).Set("name", types.String("Carol")).Set("role", types.String("Engineering")).Set("active", types.Bool(true)),
	})

	text, err := NewEncoder(DefaultEncoderOptions()).Encode(ds)
	require.NoError(t, err)

	want := strings.Join([]string{
		`@dict[#0:"Engineering"]`,
		``,
		`@schema[id:int, name:str, role:str, active:bool]`,
		`@defaults[active:true, role:"#0"]`,
		``,
		`employees(3):`,
		`  1, "Alice"`,
		`  2, "Bob"`,
		`  3, "Carol"`,
	}, "\n")
	assert.Equal(t, want, text)
}

func TestEncodeFastSkipsDictionary(t *testing.T) {
	ds := types.NewDataset().Set("employees", []*types.Record{
		types.NewRecord().Set("role", types.String("Engineering")),
		types.NewRecord().Set("role", types.String("Engineering")),
		types.NewRecord().Set("role", types.String("Engineering")),
	})

	text, err := NewEncoder(plainOptions()).Encode(ds)
	require.NoError(t, err)
	assert.NotContains(t, text, "@dict[")
	assert.Contains(t, text, `"Engineering"`)
}

func TestEncodeQueryable(t *testing.T) {
	ds := types.NewDataset().Set("products", []*types.Record{
		types.NewRecord().Set("id", types.Int(1)).Set("price", types.Int(50)),
		types.NewRecord().Set("id", types.Int(2)).Set("price", types.Int(150)),
	})

	opts := plainOptions()
	opts.Queryable = true
	text, err := NewEncoder(opts).Encode(ds)
	require.NoError(t, err)

	want := strings.Join([]string{
		`@schema[id:int, price:int]`,
		`@queryable[products]`,
		``,
		`products(2):`,
		`  1, 50`,
		`  2, 150`,
	}, "\n")
	assert.Equal(t, want, text)
}

func TestEncodeDefaultsThreshold(t *testing.T) {
	build := func(dominant int) *types.Dataset {
		var records []*types.Record
		for i := 0; i < 100; i++ {
			status := types.String("active")
			if i >= dominant {
				status = types.String(fmt.Sprintf("status-%d", i))
			}
			records = append(records, types.NewRecord().Set("id", types.Int(int64(i))).Set("status", status))
		}
		return types.NewDataset().Set("users", records)
	}

	opts := plainOptions()
	opts.Optimize = true

	text, err := NewEncoder(opts).Encode(build(61))
	require.NoError(t, err)
	assert.Contains(t, text, `@defaults[status:"active"]`, "61 of 100 clears the 60% bar")

	text, err = NewEncoder(opts).Encode(build(60))
	require.NoError(t, err)
	assert.NotContains(t, text, "@defaults[", "60 of 100 is not a strict majority over 60%")
}

func TestEncodeDefaultsSampleIsLeading(t *testing.T) {
	var records []*types.Record
	for i := 0; i < 120; i++ {
		flag := "yes"
		if i >= 100 {
			flag = "no"
		}
		records = append(records, types.NewRecord().Set("id", types.Int(int64(i))).Set("flag", types.String(flag)))
	}
	ds := types.NewDataset().Set("jobs", records)

	opts := plainOptions()
	opts.Optimize = true
	text, err := NewEncoder(opts).Encode(ds)
	require.NoError(t, err)

	// Records past the sample window disagree with the default and must
	// stay explicit in their rows.
	assert.Contains(t, text, `@defaults[flag:"yes"]`)
	assert.Equal(t, 20, strings.Count(text, `"no"`))
}

func TestEncodeDictOrderedByTokenText(t *testing.T) {
	var records []*types.Record
	for i := 0; i <= 10; i++ {
		for n := 0; n < 3; n++ {
			records = append(records, types.NewRecord().Set("tag", types.String(fmt.Sprintf("word-%02d", i))))
		}
	}
	ds := types.NewDataset().Set("w", records)

	text, err := NewEncoder(DefaultEncoderOptions()).Encode(ds)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t,
		`@dict[#0:"word-00", #1:"word-01", #10:"word-10", #2:"word-02", #3:"word-03", #4:"word-04", #5:"word-05", #6:"word-06", #7:"word-07", #8:"word-08", #9:"word-09"]`,
		lines[0], "tokens sort as text, so #10 lands between #1 and #2")
}

func TestEncodeValueRendering(t *testing.T) {
	ds := types.NewDataset().Set("vals", []*types.Record{
		types.NewRecord().
			Set("n", types.Null()).
			Set("t", types.Bool(true)).
			Set("f", types.Float(1.5)).
			Set("s", types.String(`say "hi"`)).
			Set("a", types.Array(types.Int(1), types.String("x"))).
			Set("o", types.Object(types.NewRecord().Set("k", types.Int(1)))),
	})

	text, err := NewEncoder(plainOptions()).Encode(ds)
	require.NoError(t, err)

	want := strings.Join([]string{
		`@schema[n:null, t:bool, f:float, s:str, a:array, o:object]`,
		``,
		`vals(1):`,
		`  null, true, 1.5, "say \"hi\"", [1,"x"], {"k":1}`,
	}, "\n")
	assert.Equal(t, want, text)
}

func TestEncodeInternedValuesRenderBare(t *testing.T) {
	var records []*types.Record
	for i := 0; i < 3; i++ {
		records = append(records,
			types.NewRecord().Set("tag", types.String("alpha-one")),
			types.NewRecord().Set("tag", types.String("beta-two")),
		)
	}
	ds := types.NewDataset().Set("tags", records)

	text, err := NewEncoder(DefaultEncoderOptions()).Encode(ds)
	require.NoError(t, err)

	// Neither value dominates, so rows carry the tokens without quotes.
	assert.Contains(t, text, "\n  #0")
	assert.Contains(t, text, "\n  #1")
	assert.NotContains(t, text, "@defaults[")
}

func TestEncodeMultipleTables(t *testing.T) {
	ds := types.NewDataset().
		Set("alpha", []*types.Record{types.NewRecord().Set("a", types.Int(1))}).
		Set("beta", []*types.Record{types.NewRecord().Set("b", types.Int(2))})

	text, err := NewEncoder(plainOptions()).Encode(ds)
	require.NoError(t, err)

	want := strings.Join([]string{
		`@schema[a:int]`,
		``,
		`alpha(1):`,
		`  1`,
		``,
		`@schema[b:int]`,
		``,
		`beta(1):`,
		`  2`,
	}, "\n")
	assert.Equal(t, want, text)
}

func TestEncodeEmptyTable(t *testing.T) {
	ds := types.NewDataset().Set("events", nil)

	text, err := NewEncoder(plainOptions()).Encode(ds)
	require.NoError(t, err)
	assert.Equal(t, "events(0):", text)

	opts := plainOptions()
	opts.Queryable = true
	text, err = NewEncoder(opts).Encode(ds)
	require.NoError(t, err)
	assert.Equal(t, "@queryable[events]\n\nevents(0):", text)
}

func TestEncodeSchemaComesFromFirstRecord(t *testing.T) {
	ds := types.NewDataset().Set("t", []*types.Record{
		types.NewRecord().Set("a", types.Int(1)).Set("b", types.String("x")),
		types.NewRecord().Set("a", types.Int(2)).Set("extra", types.Bool(true)),
	})

	text, err := NewEncoder(plainOptions()).Encode(ds)
	require.NoError(t, err)

	want := strings.Join([]string{
		`@schema[a:int, b:str]`,
		``,
		`t(2):`,
		`  1, "x"`,
		`  2`,
	}, "\n")
	assert.Equal(t, want, text, "fields outside the first record's schema are dropped")
}

func TestEncodeAllDefaultRowIsBlank(t *testing.T) {
	ds := types.NewDataset().Set("t", []*types.Record{
		types.NewRecord().Set("a", types.Int(1)),
	})

	opts := plainOptions()
	opts.Optimize = true
	text, err := NewEncoder(opts).Encode(ds)
	require.NoError(t, err)

	// A single-record table defaults every field, leaving a row with no
	// tokens at all. Decode skips such rows; the record does not survive
	// a round trip.
	want := strings.Join([]string{
		`@schema[a:int]`,
		`@defaults[a:1]`,
		``,
		`t(1):`,
		`  `,
	}, "\n")
	assert.Equal(t, want, text)
}

func TestEncodeValidation(t *testing.T) {
	cases := []struct {
		name     string
		dataset  *types.Dataset
		contains string
	}{
		{
			name:     "empty table name",
			dataset:  types.NewDataset().Set("", []*types.Record{types.NewRecord().Set("a", types.Int(1))}),
			contains: "empty name",
		},
		{
			name:     "nil record",
			dataset:  types.NewDataset().Set("t", []*types.Record{nil}),
			contains: `table "t": record 0 is not an object`,
		},
		{
			name:     "empty field name",
			dataset:  types.NewDataset().Set("t", []*types.Record{types.NewRecord().Set("", types.Int(1))}),
			contains: "empty field name",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEncoder(plainOptions()).Encode(tc.dataset)
			require.Error(t, err)
			assert.True(t, errors.IsEncodingError(err))
			assert.ErrorContains(t, err, tc.contains)
		})
	}

	t.Run("validation off", func(t *testing.T) {
		opts := EncoderOptions{Compression: compress.ModeFast}
		ds := types.NewDataset().Set("t", []*types.Record{types.NewRecord().Set("", types.Int(1))})
		_, err := NewEncoder(opts).Encode(ds)
		assert.NoError(t, err)
	})
}

func TestEncodeNilDataset(t *testing.T) {
	_, err := NewEncoder(plainOptions()).Encode(nil)
	require.Error(t, err)
	assert.True(t, errors.IsEncodingError(err))
}

func TestEncodeWithQuery(t *testing.T) {
	ds := types.NewDataset().Set("products", []*types.Record{
		types.NewRecord().Set("id", types.Int(1)).Set("price", types.Int(50)),
		types.NewRecord().Set("id", types.Int(2)).Set("price", types.Int(150)),
		types.NewRecord().Set("id", types.Int(3)).Set("price", types.Int(300)),
	})

	text, err := NewEncoder(plainOptions()).EncodeWithQuery(ds, "products WHERE price > 100 ORDER BY price DESC LIMIT 1")
	require.NoError(t, err)

	want := strings.Join([]string{
		`@query[products WHERE price > 100 ORDER BY price DESC LIMIT 1]`,
		``,
		`@schema[id:int, price:int]`,
		``,
		`products(1):`,
		`  3, 300`,
	}, "\n")
	assert.Equal(t, want, text)
}

func TestEncodeWithQueryErrors(t *testing.T) {
	ds := types.NewDataset().Set("products", []*types.Record{
		types.NewRecord().Set("id", types.Int(1)),
	})

	_, err := NewEncoder(plainOptions()).EncodeWithQuery(ds, "products WHERE")
	require.Error(t, err)
	assert.True(t, errors.IsQueryError(err))

	_, err = NewEncoder(plainOptions()).EncodeWithQuery(ds, "warehouses")
	require.Error(t, err)
	assert.True(t, errors.IsQueryError(err))
}

func TestEncodeDeterministic(t *testing.T) {
	ds := types.NewDataset().Set("t", []*types.Record{
		types.NewRecord().Set("a", types.String("xxxxx")).Set("b", types.String("yyyyy")).Set("c", types.Int(1)),
		types.NewRecord().Set("a", types.String("xxxxx")).Set("b", types.String("yyyyy")).Set("c", types.Int(1)),
		types.NewRecord().Set("a", types.String("xxxxx")).Set("b", types.String("yyyyy")).Set("c", types.Int(1)),
	})

	first, err := NewEncoder(DefaultEncoderOptions()).Encode(ds)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		next, err := NewEncoder(DefaultEncoderOptions()).Encode(ds)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}
