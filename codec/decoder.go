package codec

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/logger"
	"github.com/teranos/aton/types"
)

// Decoder parses ATON text back into datasets.
//
// Decoding is lenient: malformed directives and rows outside any table are
// skipped rather than rejected. Directive state (dictionary, schema,
// defaults) persists across the pass and is replaced only when a later
// directive of the same kind appears, so a table without its own
// @defaults inherits whatever the previous table established.
type Decoder struct {
	opts DecoderOptions
	log  *zap.SugaredLogger
}

// NewDecoder returns a decoder with the given options. Logging is off
// until WithLogger is called.
func NewDecoder(opts DecoderOptions) *Decoder {
	return &Decoder{opts: opts, log: zap.NewNop().Sugar()}
}

// WithLogger attaches a logger and returns the decoder for chaining.
func (d *Decoder) WithLogger(log *zap.SugaredLogger) *Decoder {
	if log != nil {
		d.log = log
	}
	return d
}

// Decode parses text using the default decoder options.
func Decode(text string) (*types.Dataset, error) {
	return NewDecoder(DefaultDecoderOptions()).Decode(text)
}

// Decode parses ATON text into a dataset. All parse state lives in this
// call; a decoder can be reused across inputs.
func (d *Decoder) Decode(text string) (*types.Dataset, error) {
	start := time.Now()

	ds := types.NewDataset()
	dict := types.NewDictionary()
	var (
		currentTable string
		schema       types.Schema
		defaults     map[string]types.Value
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "@dict["):
			parseDictDirective(line, dict)
		case strings.HasPrefix(line, "@schema["):
			if s, ok := parseSchemaDirective(line); ok {
				schema = s
			}
		case strings.HasPrefix(line, "@defaults["):
			if m, ok := parseDefaultsDirective(line, dict); ok {
				defaults = m
			}
		case strings.HasPrefix(line, "@"):
			// @query, @queryable, and anything unrecognized carry no
			// decode semantics.
		case strings.Contains(line, "+(") && strings.HasSuffix(line, "):"):
			// Streaming continuation: rows keep flowing into whatever
			// table is active. The marker never re-derives table
			// identity, schema, or defaults.
		case strings.Contains(line, "(") && strings.HasSuffix(line, "):"):
			currentTable = line[:strings.Index(line, "(")]
			ds.Set(currentTable, nil)
		case currentTable != "":
			ds.Append(currentTable, decodeRow(line, schema, defaults, dict))
		}
	}

	if d.opts.Validate {
		if err := validateDecoded(ds); err != nil {
			return nil, err
		}
	}

	d.log.Debugw("text decoded",
		logger.FieldTables, ds.Len(),
		logger.FieldRecords, ds.Records(),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return ds, nil
}

// directiveBody strips the directive prefix and the closing bracket.
// Directives missing the bracket are dropped wholesale.
func directiveBody(line, prefix string) (string, bool) {
	if !strings.HasSuffix(line, "]") {
		return "", false
	}
	return line[len(prefix) : len(line)-1], true
}

func parseDictDirective(line string, dict *types.Dictionary) {
	body, ok := directiveBody(line, "@dict[")
	if !ok {
		return
	}
	for _, part := range splitTopLevel(body) {
		idx := strings.Index(part, ":")
		if idx < 0 {
			continue
		}
		token := strings.TrimSpace(part[:idx])
		val := strings.TrimSpace(part[idx+1:])
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			val = unescape(val[1 : len(val)-1])
		}
		dict.Add(token, val)
	}
}

// parseSchemaDirective reads name:type pairs. Type tags are retained as
// metadata only; row values are parsed by shape, never cast by declared
// type. A pair without a colon keeps its text as a field name so row
// positions stay aligned.
func parseSchemaDirective(line string) (types.Schema, bool) {
	body, ok := directiveBody(line, "@schema[")
	if !ok {
		return nil, false
	}
	var schema types.Schema
	for _, part := range splitTopLevel(body) {
		if part == "" {
			continue
		}
		name, typ := part, ""
		if idx := strings.Index(part, ":"); idx >= 0 {
			name = strings.TrimSpace(part[:idx])
			typ = strings.TrimSpace(part[idx+1:])
		}
		schema = append(schema, types.SchemaField{Name: name, Type: types.FieldType(typ)})
	}
	return schema, true
}

// parseDefaultsDirective reads name:value pairs with the row value parser,
// so a bare #N default is substituted from the dictionary while a quoted
// "#N" stays the literal token text.
func parseDefaultsDirective(line string, dict *types.Dictionary) (map[string]types.Value, bool) {
	body, ok := directiveBody(line, "@defaults[")
	if !ok {
		return nil, false
	}
	defaults := make(map[string]types.Value)
	for _, part := range splitTopLevel(body) {
		idx := strings.Index(part, ":")
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(part[:idx])
		defaults[name] = parseScalar(strings.TrimSpace(part[idx+1:]), dict)
	}
	return defaults, true
}

// decodeRow assigns row tokens to schema fields greedily in order. A field
// past the end of the token list falls back to its default when one exists
// and is dropped otherwise. Tokens are positional, so rows that elided an
// interior field shift every later value one field left.
func decodeRow(line string, schema types.Schema, defaults map[string]types.Value, dict *types.Dictionary) *types.Record {
	tokens := splitTopLevel(line)
	rec := types.NewRecord()
	for i, field := range schema {
		if i < len(tokens) {
			rec.Set(field.Name, parseScalar(tokens[i], dict))
			continue
		}
		if def, ok := defaults[field.Name]; ok {
			rec.Set(field.Name, def)
		}
	}
	return rec
}

// splitTopLevel breaks s on commas outside quote spans and outside
// brackets. The quote tracker toggles on every double quote, including an
// escaped \" pair, so strings carrying literal quotes can split wrong;
// the format accepts that in exchange for a one-pass scan.
func splitTopLevel(s string) []string {
	var (
		parts   []string
		start   int
		depth   int
		inQuote bool
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// parseScalar turns one row token into a value. Quoted strings never pass
// through the dictionary; bare #N tokens are substituted when known and
// kept as literal text otherwise. Container tokens parse as JSON, and
// strings inside them are beyond the dictionary's reach. Anything that
// fits no other shape stays a raw string.
func parseScalar(token string, dict *types.Dictionary) types.Value {
	switch token {
	case "null":
		return types.Null()
	case "true":
		return types.Bool(true)
	case "false":
		return types.Bool(false)
	}
	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		return types.String(unescape(token[1 : len(token)-1]))
	}
	if strings.HasPrefix(token, "#") {
		if text, ok := dict.Lookup(token); ok {
			return types.String(text)
		}
		return types.String(token)
	}
	if strings.HasPrefix(token, "[") || strings.HasPrefix(token, "{") {
		var v types.Value
		if err := v.UnmarshalJSON([]byte(token)); err == nil {
			return v
		}
		return types.String(token)
	}
	if strings.Contains(token, ".") {
		if f, err := strconv.ParseFloat(token, 64); err == nil {
			return types.Number(f)
		}
	} else if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return types.Int(n)
	}
	return types.String(token)
}

// validateDecoded rejects records carrying object-valued fields. The row
// grammar has no way to round-trip nested objects reliably, so validating
// decoders refuse them outright; objects nested inside arrays pass.
func validateDecoded(ds *types.Dataset) error {
	for _, table := range ds.Tables() {
		records, _ := ds.Get(table)
		for i, rec := range records {
			for _, f := range rec.Fields() {
				if f.Value.Kind() == types.KindObject {
					return errors.NewDecodingError("table %q: record %d: field %q holds a nested object", table, i, f.Name)
				}
			}
		}
	}
	return nil
}
