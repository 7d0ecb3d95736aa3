// Package aton encodes tabular record sets as compact, human-readable
// text designed to spend fewer language-model tokens than JSON.
//
// A document carries an optional dictionary of interned strings, per-table
// schema and defaults directives, and positional rows:
//
//	@dict[#0:"Engineering"]
//
//	@schema[id:int, name:str, role:str, active:bool]
//	@defaults[active:true, role:"#0"]
//
//	employees(3):
//	  1, "Alice"
//	  2, "Bob"
//	  3, "Carol", "Manager", false
//
// Repeated strings collapse to #N tokens, majority values move into
// @defaults and drop out of rows, and a small query language (WHERE /
// ORDER BY / LIMIT) selects records before encoding or after decoding.
//
// This package is a convenience facade over the subpackages: codec holds
// the encoder, decoder, and streaming encoder with their option structs,
// compress the dictionary pass, parser and engine the query language, and
// types the dataset model.
package aton

import (
	"github.com/teranos/aton/codec"
	"github.com/teranos/aton/engine"
	"github.com/teranos/aton/parser"
	"github.com/teranos/aton/types"
)

// Encode renders the dataset as ATON text with default options: balanced
// compression, defaults inference on, validation on.
func Encode(ds *types.Dataset) (string, error) {
	return codec.Encode(ds)
}

// Decode parses ATON text into a dataset with default options.
func Decode(text string) (*types.Dataset, error) {
	return codec.Decode(text)
}

// Query runs a query such as "users WHERE age > 30 ORDER BY name LIMIT 10"
// against the dataset and returns the matching records.
func Query(ds *types.Dataset, query string) ([]*types.Record, error) {
	q, err := parser.Parse(query)
	if err != nil {
		return nil, err
	}
	return engine.Execute(ds, q)
}
