// Package codec implements the ATON text format: encoding datasets to
// compact tabular text, decoding that text back, and streaming large
// tables as bounded chunks.
//
// The wire format elides values positionally: a row omits any field equal
// to the table default, with no placeholder left behind. Decode reassigns
// tokens to schema fields greedily left to right, so rows only round-trip
// exactly when defaulted fields trail the schema. Callers that need exact
// round-trips must keep defaults trailing or disable optimization.
package codec

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/engine"
	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/logger"
	"github.com/teranos/aton/parser"
	"github.com/teranos/aton/types"
)

// Encoder renders datasets as ATON text.
type Encoder struct {
	opts EncoderOptions
	log  *zap.SugaredLogger
}

// NewEncoder returns an encoder with the given options. Logging is off
// until WithLogger is called.
func NewEncoder(opts EncoderOptions) *Encoder {
	return &Encoder{opts: opts, log: zap.NewNop().Sugar()}
}

// WithLogger attaches a logger and returns the encoder for chaining.
func (e *Encoder) WithLogger(log *zap.SugaredLogger) *Encoder {
	if log != nil {
		e.log = log
	}
	return e
}

// Encode renders text for ds using the default encoder options.
func Encode(ds *types.Dataset) (string, error) {
	return NewEncoder(DefaultEncoderOptions()).Encode(ds)
}

// Encode renders ds as ATON text: an optional @dict header, then one
// block per table in dataset order.
func (e *Encoder) Encode(ds *types.Dataset) (string, error) {
	start := time.Now()
	if ds == nil {
		return "", errors.NewEncodingError("cannot encode nil dataset")
	}
	if e.opts.Validate {
		if err := validateDataset(ds); err != nil {
			return "", err
		}
	}

	working := ds
	var dict *types.Dictionary
	if mode := normalizeMode(e.opts.Compression); mode != compress.ModeFast {
		result := compress.New(mode).Compress(ds)
		working = result.Dataset
		dict = result.Dictionary
	}

	var lines []string
	if dict != nil && dict.Len() > 0 {
		lines = appendDictHeader(lines, dict)
		lines = append(lines, "")
	}

	for i, table := range working.Tables() {
		if i > 0 {
			lines = append(lines, "")
		}
		records, _ := working.Get(table)
		schema := inferSchema(records)
		var defaults map[string]types.Value
		if e.opts.Optimize {
			defaults = inferDefaults(records, schema)
		}
		lines = encodeTable(lines, table, records, schema, defaults, e.opts.Queryable)
	}

	text := strings.Join(lines, "\n")
	e.log.Debugw("dataset encoded",
		logger.FieldTables, working.Len(),
		logger.FieldRecords, working.Records(),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return text, nil
}

// EncodeWithQuery executes query against ds and encodes the single-table
// result, prefixed with an @query echo of the canonical query text.
func (e *Encoder) EncodeWithQuery(ds *types.Dataset, query string) (string, error) {
	q, err := parser.Parse(query)
	if err != nil {
		return "", err
	}
	records, err := engine.New(e.log).Execute(ds, q)
	if err != nil {
		return "", err
	}

	result := types.NewDataset().Set(q.Table, records)
	body, err := e.Encode(result)
	if err != nil {
		return "", err
	}
	return "@query[" + q.String() + "]\n\n" + body, nil
}

// validateDataset rejects structures the wire format cannot represent.
// Only the first violation is reported.
func validateDataset(ds *types.Dataset) error {
	for _, table := range ds.Tables() {
		if table == "" {
			return errors.NewEncodingError("dataset contains a table with an empty name")
		}
		records, _ := ds.Get(table)
		for i, rec := range records {
			if rec == nil {
				return errors.NewEncodingError("table %q: record %d is not an object", table, i)
			}
			for _, f := range rec.Fields() {
				if f.Name == "" {
					return errors.NewEncodingError("table %q: record %d has a field with an empty name", table, i)
				}
			}
		}
	}
	return nil
}

// appendDictHeader renders the @dict line. Entries sort by token text, so
// #10 precedes #2; decode resolves tokens by key and never relies on this
// order.
func appendDictHeader(lines []string, dict *types.Dictionary) []string {
	entries := append([]types.DictEntry(nil), dict.Entries()...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Token < entries[j].Token })

	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = entry.Token + ":" + quoteEscape(entry.Text)
	}
	return append(lines, "@dict["+strings.Join(parts, ", ")+"]")
}

// encodeTable appends one table block: directives, a blank separator when
// any directive was written, the count header, and the rows. The streaming
// encoder reuses it with schema and defaults precomputed over the whole
// table.
func encodeTable(lines []string, table string, records []*types.Record, schema types.Schema, defaults map[string]types.Value, queryable bool) []string {
	headers := len(lines)
	if len(schema) > 0 {
		parts := make([]string, len(schema))
		for i, f := range schema {
			parts[i] = f.Name + ":" + string(f.Type)
		}
		lines = append(lines, "@schema["+strings.Join(parts, ", ")+"]")
	}
	if len(defaults) > 0 {
		names := make([]string, 0, len(defaults))
		for name := range defaults {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = name + ":" + renderDefault(defaults[name])
		}
		lines = append(lines, "@defaults["+strings.Join(parts, ", ")+"]")
	}
	if queryable {
		lines = append(lines, "@queryable["+table+"]")
	}
	if len(lines) > headers {
		lines = append(lines, "")
	}

	lines = append(lines, table+"("+strconv.Itoa(len(records))+"):")
	for _, rec := range records {
		lines = append(lines, "  "+renderRow(rec, schema, defaults))
	}
	return lines
}

// renderRow emits the record's values in schema order. Values equal to the
// table default are dropped without a placeholder, as are fields the
// record never had; fields outside the schema never appear.
func renderRow(rec *types.Record, schema types.Schema, defaults map[string]types.Value) string {
	tokens := make([]string, 0, len(schema))
	for _, f := range schema {
		v, ok := rec.Get(f.Name)
		if !ok {
			continue
		}
		if def, hasDefault := defaults[f.Name]; hasDefault && def.Equal(v) {
			continue
		}
		tokens = append(tokens, renderValue(v))
	}
	return strings.Join(tokens, ", ")
}
