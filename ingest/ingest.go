// Package ingest converts external data formats into datasets.
//
// Both formats accept the same two top-level shapes: an object mapping
// table names to arrays of records, or a bare array of records, which
// lands in the "data" table. Field order is preserved either way, so a
// dataset ingested here encodes with the same column layout the source
// document had.
package ingest

import (
	"bytes"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/types"
)

// DefaultTable receives the records when the input is a bare array rather
// than a table map.
const DefaultTable = "data"

// Format identifies a supported input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the input format from the file name when its
// extension is conclusive, otherwise by sniffing the payload: input
// opening with an object or array delimiter is treated as JSON,
// everything else as YAML.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Parse converts raw input in the given format into a dataset.
func Parse(data []byte, format Format) (*types.Dataset, error) {
	switch format {
	case FormatJSON:
		return FromJSON(data)
	case FormatYAML:
		return FromYAML(data)
	default:
		return nil, errors.Newf("unsupported input format %q", format)
	}
}

// FromJSON converts a JSON document into a dataset. A top-level object is
// read as a table map, a top-level array is wrapped into DefaultTable.
func FromJSON(data []byte) (*types.Dataset, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.New("empty JSON input")
	}
	if trimmed[0] == '[' {
		var v types.Value
		if err := v.UnmarshalJSON(trimmed); err != nil {
			return nil, errors.Wrap(err, "failed to parse JSON records")
		}
		records, err := recordList(v)
		if err != nil {
			return nil, err
		}
		return types.NewDataset().Set(DefaultTable, records), nil
	}
	ds := types.NewDataset()
	if err := ds.UnmarshalJSON(trimmed); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON tables")
	}
	return ds, nil
}

func recordList(v types.Value) ([]*types.Record, error) {
	if v.Kind() != types.KindArray {
		return nil, errors.New("expected an array of records")
	}
	records := make([]*types.Record, 0, len(v.Arr()))
	for i, el := range v.Arr() {
		if el.Kind() != types.KindObject {
			return nil, errors.Newf("record %d is not an object", i)
		}
		records = append(records, el.Obj())
	}
	return records, nil
}

// FromYAML converts a YAML document into a dataset, walking the node tree
// directly so mapping key order survives (decoding through map[string]any
// would scramble it). The same two top-level shapes as FromJSON apply.
func FromYAML(data []byte) (*types.Dataset, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, errors.New("empty YAML input")
	}

	doc := resolveAlias(root.Content[0])
	switch doc.Kind {
	case yaml.MappingNode:
		ds := types.NewDataset()
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key := doc.Content[i]
			records, err := yamlRecords(doc.Content[i+1])
			if err != nil {
				return nil, errors.Wrapf(err, "table %q", key.Value)
			}
			ds.Set(key.Value, records)
		}
		return ds, nil
	case yaml.SequenceNode:
		records, err := yamlRecords(doc)
		if err != nil {
			return nil, err
		}
		return types.NewDataset().Set(DefaultTable, records), nil
	default:
		return nil, errors.Newf("expected a table map or record list at the top level, got a %s node", yamlKindName(doc.Kind))
	}
}

func yamlRecords(node *yaml.Node) ([]*types.Record, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.SequenceNode {
		return nil, errors.Newf("expected a sequence of records, got a %s node", yamlKindName(node.Kind))
	}
	records := make([]*types.Record, 0, len(node.Content))
	for i, item := range node.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			return nil, errors.Newf("record %d is not a mapping", i)
		}
		rec, err := yamlRecord(item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func yamlRecord(node *yaml.Node) (*types.Record, error) {
	rec := types.NewRecord()
	for i := 0; i+1 < len(node.Content); i += 2 {
		v, err := yamlValue(node.Content[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", node.Content[i].Value)
		}
		rec.Set(node.Content[i].Value, v)
	}
	return rec, nil
}

func yamlValue(node *yaml.Node) (types.Value, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return yamlScalar(node)
	case yaml.SequenceNode:
		elems := make([]types.Value, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := yamlValue(item)
			if err != nil {
				return types.Value{}, err
			}
			elems = append(elems, v)
		}
		return types.Array(elems...), nil
	case yaml.MappingNode:
		rec, err := yamlRecord(node)
		if err != nil {
			return types.Value{}, err
		}
		return types.Object(rec), nil
	default:
		return types.Value{}, errors.Newf("unsupported %s node", yamlKindName(node.Kind))
	}
}

// yamlScalar maps a resolved scalar node by its tag. Ints and floats go
// through the node decoder so YAML's hex, octal, and exponent spellings
// all work; whole-valued floats collapse to ints the same way JSON
// ingestion collapses them. Timestamps and any other unrecognized tags
// stay as their raw string form.
func yamlScalar(node *yaml.Node) (types.Value, error) {
	switch node.Tag {
	case "!!null":
		return types.Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return types.Value{}, errors.Wrapf(err, "invalid bool %q", node.Value)
		}
		return types.Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return types.Value{}, errors.Wrapf(err, "invalid integer %q", node.Value)
		}
		return types.Int(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return types.Value{}, errors.Wrapf(err, "invalid float %q", node.Value)
		}
		return types.Number(f), nil
	default:
		return types.String(node.Value), nil
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
