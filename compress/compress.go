// Package compress implements the dictionary pass that interns repeated
// strings as #N tokens before encoding.
//
// Modes trade scan aggressiveness against dictionary overhead: Fast skips
// the pass entirely, Balanced interns strings of at least 5 characters seen
// at least 3 times, Ultra interns at least 3 characters seen twice, and
// Adaptive picks one of the three by the dataset's serialized size.
package compress

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/types"
)

// Mode selects the interning thresholds.
type Mode string

const (
	ModeFast     Mode = "fast"
	ModeBalanced Mode = "balanced"
	ModeUltra    Mode = "ultra"
	ModeAdaptive Mode = "adaptive"
)

// Adaptive mode boundaries, in serialized characters.
const (
	adaptiveBalancedAt = 1000
	adaptiveUltraAt    = 10000
)

// thresholds are the interning constraints of one concrete mode.
type thresholds struct {
	minLength      int // minimum string length in characters
	minOccurrences int // minimum occurrence count across the dataset
}

var modeThresholds = map[Mode]thresholds{
	ModeBalanced: {minLength: 5, minOccurrences: 3},
	ModeUltra:    {minLength: 3, minOccurrences: 2},
}

// ParseMode maps a flag or config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeFast, ModeBalanced, ModeUltra, ModeAdaptive:
		return m, nil
	}
	return "", errors.Newf("unknown compression mode %q (want fast, balanced, ultra, or adaptive)", s)
}

// Result is the outcome of one compression pass.
type Result struct {
	Dataset    *types.Dataset    // rewritten dataset; the input when nothing was interned
	Dictionary *types.Dictionary // token assignments, empty under Fast
	Mode       Mode              // concrete mode that ran (Adaptive resolved)
	Elapsed    time.Duration
}

// Compressor runs the dictionary pass for a configured mode.
type Compressor struct {
	mode Mode
}

// New returns a Compressor for the mode. Construction never fails; an
// unrecognized mode behaves like Fast. Use ParseMode to validate user input.
func New(mode Mode) *Compressor {
	return &Compressor{mode: mode}
}

// Mode returns the configured mode, Adaptive included.
func (c *Compressor) Mode() Mode {
	return c.mode
}

// Resolve returns the concrete mode a pass over ds would run: Adaptive
// picks by the character count of the canonical JSON rendering, every other
// mode returns itself.
func (c *Compressor) Resolve(ds *types.Dataset) Mode {
	if c.mode != ModeAdaptive {
		return c.mode
	}
	size := utf8.RuneCount(ds.AppendJSON(nil))
	switch {
	case size < adaptiveBalancedAt:
		return ModeFast
	case size < adaptiveUltraAt:
		return ModeBalanced
	default:
		return ModeUltra
	}
}

// Compress interns repeated strings across the whole dataset. The input is
// never mutated; when nothing qualifies the result carries the input
// dataset unchanged with an empty dictionary.
func (c *Compressor) Compress(ds *types.Dataset) *Result {
	start := time.Now()
	mode := c.Resolve(ds)

	th, ok := modeThresholds[mode]
	if !ok {
		return &Result{Dataset: ds, Dictionary: types.NewDictionary(), Mode: mode, Elapsed: time.Since(start)}
	}

	tally := newStringTally()
	tally.dataset(ds)

	// Token numbers follow first appearance in the depth-first walk, so the
	// same dataset always produces the same dictionary.
	dict := types.NewDictionary()
	for _, s := range tally.order {
		if utf8.RuneCountInString(s) < th.minLength || tally.counts[s] < th.minOccurrences {
			continue
		}
		if strings.HasPrefix(s, "#") {
			continue // would collide with token syntax
		}
		dict.Add("#"+strconv.Itoa(dict.Len()), s)
	}

	if dict.Len() == 0 {
		return &Result{Dataset: ds, Dictionary: dict, Mode: mode, Elapsed: time.Since(start)}
	}

	return &Result{
		Dataset:    rewriteDataset(ds, dict),
		Dictionary: dict,
		Mode:       mode,
		Elapsed:    time.Since(start),
	}
}

// stringTally counts string leaves and remembers first-seen order.
type stringTally struct {
	counts map[string]int
	order  []string
}

func newStringTally() *stringTally {
	return &stringTally{counts: make(map[string]int)}
}

func (t *stringTally) dataset(ds *types.Dataset) {
	for _, table := range ds.Tables() {
		records, _ := ds.Get(table)
		for _, rec := range records {
			t.record(rec)
		}
	}
}

func (t *stringTally) record(rec *types.Record) {
	for _, f := range rec.Fields() {
		t.value(f.Value)
	}
}

func (t *stringTally) value(v types.Value) {
	switch v.Kind() {
	case types.KindString:
		s := v.Str()
		if t.counts[s] == 0 {
			t.order = append(t.order, s)
		}
		t.counts[s]++
	case types.KindArray:
		for _, el := range v.Arr() {
			t.value(el)
		}
	case types.KindObject:
		t.record(v.Obj())
	}
}

// rewriteDataset substitutes interned string leaves with their tokens,
// keeping container structure intact.
func rewriteDataset(ds *types.Dataset, dict *types.Dictionary) *types.Dataset {
	out := types.NewDataset()
	for _, table := range ds.Tables() {
		records, _ := ds.Get(table)
		rewritten := make([]*types.Record, len(records))
		for i, rec := range records {
			rewritten[i] = rewriteRecord(rec, dict)
		}
		out.Set(table, rewritten)
	}
	return out
}

func rewriteRecord(rec *types.Record, dict *types.Dictionary) *types.Record {
	out := types.NewRecord()
	for _, f := range rec.Fields() {
		out.Set(f.Name, rewriteValue(f.Value, dict))
	}
	return out
}

func rewriteValue(v types.Value, dict *types.Dictionary) types.Value {
	switch v.Kind() {
	case types.KindString:
		if tok, ok := dict.TokenFor(v.Str()); ok {
			return types.String(tok)
		}
		return v
	case types.KindArray:
		elems := v.Arr()
		rewritten := make([]types.Value, len(elems))
		for i, el := range elems {
			rewritten[i] = rewriteValue(el, dict)
		}
		return types.Array(rewritten...)
	case types.KindObject:
		return types.Object(rewriteRecord(v.Obj(), dict))
	default:
		return v
	}
}
