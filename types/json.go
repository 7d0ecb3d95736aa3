package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/teranos/aton/errors"
)

// AppendJSON appends the compact JSON rendering of the value to dst.
func (v Value) AppendJSON(dst []byte) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		return strconv.AppendBool(dst, v.b)
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10)
	case KindFloat:
		return strconv.AppendFloat(dst, v.f, 'g', -1, 64)
	case KindString:
		return appendJSONString(dst, v.s)
	case KindArray:
		dst = append(dst, '[')
		for i, el := range v.a {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = el.AppendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		return v.o.AppendJSON(dst)
	default:
		return append(dst, "null"...)
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.AppendJSON(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving object field order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// AppendJSON appends the record as a compact JSON object, fields in
// insertion order.
func (r *Record) AppendJSON(dst []byte) []byte {
	dst = append(dst, '{')
	for i, f := range r.Fields() {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendJSONString(dst, f.Name)
		dst = append(dst, ':')
		dst = f.Value.AppendJSON(dst)
	}
	return append(dst, '}')
}

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.AppendJSON(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving field order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Newf("expected a JSON object, got %v", tok)
	}
	rec, err := decodeRecordBody(dec)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

// AppendJSON appends the dataset as a compact JSON object mapping table names
// to record arrays, tables in insertion order.
func (d *Dataset) AppendJSON(dst []byte) []byte {
	dst = append(dst, '{')
	for i, t := range d.tables {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendJSONString(dst, t.name)
		dst = append(dst, ':', '[')
		for j, r := range t.records {
			if j > 0 {
				dst = append(dst, ',')
			}
			dst = r.AppendJSON(dst)
		}
		dst = append(dst, ']')
	}
	return append(dst, '}')
}

// MarshalJSON implements json.Marshaler.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return d.AppendJSON(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler. The input must be an object
// whose values are arrays of objects; table, record, and field order are all
// preserved.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Newf("expected a JSON object of tables, got %v", tok)
	}
	out := NewDataset()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		table, ok := keyTok.(string)
		if !ok {
			return errors.Newf("expected a table name, got %v", keyTok)
		}
		records, err := decodeRecordList(dec, table)
		if err != nil {
			return err
		}
		out.Set(table, records)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}
	*d = *out
	return nil
}

func decodeRecordList(dec *json.Decoder, table string) ([]*Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.Newf("table %q: expected an array of records, got %v", table, tok)
	}
	var records []*Record
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if v.Kind() != KindObject {
			return nil, errors.Newf("table %q: record %d is not an object", table, len(records))
		}
		records = append(records, v.Obj())
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return nil, err
	}
	return records, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return numberValue(t)
	case json.Delim:
		switch t {
		case '[':
			var elems []Value
			for dec.More() {
				el, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, el)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Array(elems...), nil
		case '{':
			rec, err := decodeRecordBody(dec)
			if err != nil {
				return Value{}, err
			}
			return Object(rec), nil
		}
	}
	return Value{}, errors.Newf("unexpected JSON token %v", tok)
}

func decodeRecordBody(dec *json.Decoder) (*Record, error) {
	rec := NewRecord()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Newf("expected a field name, got %v", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		rec.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return rec, nil
}

// numberValue splits a JSON number into Int or Float. Digits-only text is
// parsed as int64 directly; anything with a fraction or exponent goes through
// float parsing and is normalized by integrality.
func numberValue(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, errors.Wrapf(err, "invalid number %q", s)
	}
	return Number(f), nil
}

func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			const hex = "0123456789abcdef"
			dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}
