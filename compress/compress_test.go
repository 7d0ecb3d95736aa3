package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/aton/types"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "fast", want: ModeFast},
		{input: "balanced", want: ModeBalanced},
		{input: "ULTRA", want: ModeUltra},
		{input: "Adaptive", want: ModeAdaptive},
		{input: "turbo", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown compression mode")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestCompressFastIsIdentity(t *testing.T) {
	ds := types.NewDataset().Set("users", []*types.Record{
		types.NewRecord().Set("name", types.String("repeated")).Set("other", types.String("repeated")),
	})

	result := New(ModeFast).Compress(ds)
	assert.Same(t, ds, result.Dataset)
	assert.Equal(t, 0, result.Dictionary.Len())
	assert.Equal(t, ModeFast, result.Mode)
}

func TestCompressBalancedThresholds(t *testing.T) {
	// "alpha" has 5 characters and 3 occurrences: interned. "beta" occurs 3
	// times but is too short; "gamma" is long enough but occurs twice.
	ds := types.NewDataset().Set("rows", []*types.Record{
		types.NewRecord().Set("a", types.String("alpha")).Set("b", types.String("beta")).Set("c", types.String("gamma")),
		types.NewRecord().Set("a", types.String("alpha")).Set("b", types.String("beta")).Set("c", types.String("gamma")),
		types.NewRecord().Set("a", types.String("alpha")).Set("b", types.String("beta")),
	})

	result := New(ModeBalanced).Compress(ds)
	require.Equal(t, 1, result.Dictionary.Len())

	text, ok := result.Dictionary.Lookup("#0")
	require.True(t, ok)
	assert.Equal(t, "alpha", text)

	records, ok := result.Dataset.Get("rows")
	require.True(t, ok)
	a, _ := records[0].Get("a")
	assert.Equal(t, types.String("#0"), a)
	b, _ := records[0].Get("b")
	assert.Equal(t, types.String("beta"), b, "below-threshold strings stay verbatim")
}

func TestCompressUltraThresholds(t *testing.T) {
	ds := types.NewDataset().Set("rows", []*types.Record{
		types.NewRecord().Set("a", types.String("abc")).Set("b", types.String("xy")),
		types.NewRecord().Set("a", types.String("abc")).Set("b", types.String("xy")),
	})

	result := New(ModeUltra).Compress(ds)
	require.Equal(t, 1, result.Dictionary.Len())

	text, ok := result.Dictionary.Lookup("#0")
	require.True(t, ok)
	assert.Equal(t, "abc", text, "two-character strings never qualify")
}

func TestCompressTokensFollowFirstAppearance(t *testing.T) {
	ds := types.NewDataset().Set("rows", []*types.Record{
		types.NewRecord().Set("x", types.String("zzz")).Set("y", types.String("aaa")),
		types.NewRecord().Set("x", types.String("zzz")).Set("y", types.String("aaa")),
	})

	result := New(ModeUltra).Compress(ds)
	entries := result.Dictionary.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, types.DictEntry{Token: "#0", Text: "zzz"}, entries[0])
	assert.Equal(t, types.DictEntry{Token: "#1", Text: "aaa"}, entries[1])
}

func TestCompressSkipsTokenLikeStrings(t *testing.T) {
	ds := types.NewDataset().Set("rows", []*types.Record{
		types.NewRecord().Set("a", types.String("almond")).Set("b", types.String("#tagged")).Set("c", types.String("walnut")),
		types.NewRecord().Set("a", types.String("almond")).Set("b", types.String("#tagged")).Set("c", types.String("walnut")),
	})

	result := New(ModeUltra).Compress(ds)
	entries := result.Dictionary.Entries()
	require.Len(t, entries, 2)
	// numbering stays dense after the skipped #tagged
	assert.Equal(t, types.DictEntry{Token: "#0", Text: "almond"}, entries[0])
	assert.Equal(t, types.DictEntry{Token: "#1", Text: "walnut"}, entries[1])

	records, _ := result.Dataset.Get("rows")
	b, _ := records[0].Get("b")
	assert.Equal(t, types.String("#tagged"), b, "hash-prefixed strings pass through")
}

func TestCompressRecursesContainers(t *testing.T) {
	nested := types.Object(types.NewRecord().Set("inner", types.String("deeply")))
	ds := types.NewDataset().Set("rows", []*types.Record{
		types.NewRecord().
			Set("tags", types.Array(types.String("deeply"), types.Array(types.String("deeply")))).
			Set("meta", nested),
	})

	result := New(ModeUltra).Compress(ds)
	require.Equal(t, 1, result.Dictionary.Len(), "occurrences inside arrays and objects all count")

	records, _ := result.Dataset.Get("rows")
	tags, _ := records[0].Get("tags")
	require.Equal(t, types.KindArray, tags.Kind())
	assert.Equal(t, types.String("#0"), tags.Arr()[0])

	inner := tags.Arr()[1]
	require.Equal(t, types.KindArray, inner.Kind(), "container shape survives the rewrite")
	assert.Equal(t, types.String("#0"), inner.Arr()[0])

	meta, _ := records[0].Get("meta")
	require.Equal(t, types.KindObject, meta.Kind())
	v, ok := meta.Obj().Get("inner")
	require.True(t, ok)
	assert.Equal(t, types.String("#0"), v)
}

func TestCompressDoesNotMutateInput(t *testing.T) {
	ds := types.NewDataset().Set("rows", []*types.Record{
		types.NewRecord().Set("a", types.String("original")),
		types.NewRecord().Set("a", types.String("original")),
	})

	result := New(ModeUltra).Compress(ds)
	require.Equal(t, 1, result.Dictionary.Len())

	records, _ := ds.Get("rows")
	a, _ := records[0].Get("a")
	assert.Equal(t, types.String("original"), a, "input dataset keeps its strings")
}

func TestCompressNothingQualifies(t *testing.T) {
	ds := types.NewDataset().Set("rows", []*types.Record{
		types.NewRecord().Set("a", types.String("unique-one")),
		types.NewRecord().Set("a", types.String("unique-two")),
	})

	result := New(ModeBalanced).Compress(ds)
	assert.Same(t, ds, result.Dataset, "no interning returns the input unchanged")
	assert.Equal(t, 0, result.Dictionary.Len())
}

// datasetOfSize builds a single-record dataset whose canonical JSON
// rendering is exactly target characters long.
func datasetOfSize(t *testing.T, target int) *types.Dataset {
	t.Helper()
	overhead := len(types.NewDataset().Set("t", []*types.Record{
		types.NewRecord().Set("s", types.String("")),
	}).AppendJSON(nil))
	require.Greater(t, target, overhead)

	ds := types.NewDataset().Set("t", []*types.Record{
		types.NewRecord().Set("s", types.String(strings.Repeat("a", target-overhead))),
	})
	require.Len(t, ds.AppendJSON(nil), target)
	return ds
}

func TestAdaptiveBoundaries(t *testing.T) {
	tests := []struct {
		size int
		want Mode
	}{
		{size: 999, want: ModeFast},
		{size: 1000, want: ModeBalanced},
		{size: 9999, want: ModeBalanced},
		{size: 10000, want: ModeUltra},
	}

	c := New(ModeAdaptive)
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Resolve(datasetOfSize(t, tt.size)), "size %d", tt.size)
	}
}

func TestAdaptiveCompressReportsResolvedMode(t *testing.T) {
	result := New(ModeAdaptive).Compress(datasetOfSize(t, 400))
	assert.Equal(t, ModeFast, result.Mode)
	assert.Equal(t, 0, result.Dictionary.Len())
}
