package codec

import "github.com/teranos/aton/types"

// defaultsSampleSize caps how many leading records feed defaults inference.
const defaultsSampleSize = 100

// defaultsThreshold: a value becomes the field default when it covers more
// than 60% of the sample (61 of 100 qualifies, 60 does not).
func aboveThreshold(count, sample int) bool {
	return count*5 > sample*3
}

// inferSchema derives a table's schema from its first record. Empty tables
// have no schema.
func inferSchema(records []*types.Record) types.Schema {
	if len(records) == 0 {
		return nil
	}
	first := records[0]
	schema := make(types.Schema, 0, first.Len())
	for _, f := range first.Fields() {
		schema = append(schema, types.SchemaField{Name: f.Name, Type: types.TypeOf(f.Value)})
	}
	return schema
}

// inferDefaults samples up to defaultsSampleSize leading records and
// promotes, per schema field, the most frequent value when it clears the
// threshold. Frequency uses deep value equality, so records missing the
// field simply contribute nothing while still counting toward the sample
// size.
func inferDefaults(records []*types.Record, schema types.Schema) map[string]types.Value {
	sample := records
	if len(sample) > defaultsSampleSize {
		sample = sample[:defaultsSampleSize]
	}
	if len(sample) == 0 {
		return nil
	}

	defaults := make(map[string]types.Value)
	for _, field := range schema {
		if v, ok := dominantValue(sample, field.Name); ok {
			defaults[field.Name] = v
		}
	}
	if len(defaults) == 0 {
		return nil
	}
	return defaults
}

// dominantValue tallies distinct values of one field across the sample and
// returns the winner when it covers enough of it. Values are grouped by
// deep equality; ties keep the first-seen value.
func dominantValue(sample []*types.Record, field string) (types.Value, bool) {
	type bucket struct {
		value types.Value
		count int
	}
	var buckets []bucket

	for _, rec := range sample {
		v, ok := rec.Get(field)
		if !ok {
			continue
		}
		found := false
		for i := range buckets {
			if buckets[i].value.Equal(v) {
				buckets[i].count++
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, bucket{value: v, count: 1})
		}
	}

	best := -1
	for i := range buckets {
		if best < 0 || buckets[i].count > buckets[best].count {
			best = i
		}
	}
	if best < 0 || !aboveThreshold(buckets[best].count, len(sample)) {
		return types.Value{}, false
	}
	return buckets[best].value, true
}
