package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

// TestMinimalEncoderNeverDiscardsFields ensures the minimal encoder NEVER
// silently discards log fields. Special-cased keys may be reformatted, but
// every value must survive into the output.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "test",
		Message:    "Testing field preservation",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string // What we must find in the output
	}{
		{zap.String("format", "json"), "format=json"},
		{zap.String("path", "/tmp/data.aton"), "path=/tmp/data.aton"},
		{zap.Bool("queryable", true), "queryable=true"},
		{zap.Float64("ratio", 0.8), "ratio=0.8"},
		{zap.Strings("selected_fields", []string{"name", "age"}), "selected_fields"},

		// Random field names that should NEVER be dropped
		{zap.String("random_field_xyz", "important_data"), "random_field_xyz=important_data"},
		{zap.Int("critical_count", 999), "critical_count=999"},
		{zap.String("error_details", "null pointer exception"), "error_details=null pointer exception"},

		// Fields with underscores and dots (edge cases)
		{zap.String("field_with_underscores", "test"), "field_with_underscores=test"},
		{zap.String("field.with.dots", "test2"), "field.with.dots=test2"},

		// Numeric fields
		{zap.Int32("int32_field", 42), "int32_field=42"},
		{zap.Int64("int64_field", 9999999), "int64_field=9999999"},

		// Boolean fields
		{zap.Bool("success", false), "success=false"},

		// Error fields
		{zap.Error(nil), ""}, // nil error shouldn't crash

		// Special-cased keys render value-only or reformatted
		{zap.String(FieldTable, "users"), "users"},
		{zap.Int(FieldRecords, 150), "150"},
		{zap.Int(FieldTokens, 12), "12"},
		{zap.Int64(FieldDurationMS, 42), "42ms"},
	}

	var allFields []zapcore.Field
	for _, tf := range testFields {
		allFields = append(allFields, tf.field)
	}

	buf, err := encoder.EncodeEntry(entry, allFields)
	if err != nil {
		t.Fatalf("Failed to encode entry: %v", err)
	}

	output := buf.String()
	cleanOutput := stripANSI(output)

	for _, tf := range testFields {
		if tf.mustFind != "" && !strings.Contains(cleanOutput, tf.mustFind) {
			t.Errorf("Field was silently discarded from log output: %s\nClean output: %s",
				tf.mustFind, cleanOutput)
		}
	}
}

// TestMinimalEncoderFieldCount ensures that the NUMBER of fields in equals
// the number of fields that appear in the output
func TestMinimalEncoderFieldCount(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "test",
		Message:    "Field count test",
	}

	fields := []zapcore.Field{
		zap.String("field1", "value1"),
		zap.String("field2", "value2"),
		zap.String("field3", "value3"),
		zap.Int("field4", 4),
		zap.Int("field5", 5),
		zap.Bool("field6", true),
		zap.Float64("field7", 7.7),
		zap.String("field8", "value8"),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	output := buf.String()

	fieldCount := 0
	for i := 1; i <= len(fields); i++ {
		if strings.Contains(output, "field"+string(rune('0'+i))+"=") {
			fieldCount++
		}
	}

	if fieldCount != len(fields) {
		t.Errorf("Expected %d fields in output, but found %d. Output: %s", len(fields), fieldCount, output)
	}
}

// TestEncodeStatsFormatting tests the compact codec stats form:
// table name bare, records+tokens collapsed into a parenthesized pair.
func TestEncodeStatsFormatting(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "codec",
		Message:    "Encoded dataset",
	}

	fields := []zapcore.Field{
		zap.String(FieldTable, "users"),
		zap.Int(FieldRecords, 150),
		zap.Int(FieldTokens, 12),
		zap.Int64(FieldDurationMS, 8),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	if err != nil {
		t.Fatalf("Failed to encode codec stats log: %v", err)
	}

	cleanOutput := stripANSI(buf.String())

	for _, required := range []string{"users", "(150 records, 12 tokens)", "8ms"} {
		if !strings.Contains(cleanOutput, required) {
			t.Errorf("codec stats missing from log: %s\nFull output: %s", required, cleanOutput)
		}
	}

	// The pair form replaces key=value rendering for these keys.
	if strings.Contains(cleanOutput, "records=") || strings.Contains(cleanOutput, "tokens=") {
		t.Errorf("paired counts should not also render as key=value: %s", cleanOutput)
	}
}

// TestUnknownFieldTypes tests that the encoder handles all possible field types
// without crashing or silently dropping them
func TestUnknownFieldTypes(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "test",
		Message:    "Testing unknown field types",
	}

	fields := []zapcore.Field{
		zap.Complex128("complex", complex(1.0, 2.0)),
		zap.Duration("elapsed", 5*time.Second),
		zap.Time("timestamp", time.Now()),
		zap.Uint("uint", 100),
		zap.Uint64("uint64", 5000000000),
		zap.ByteString("bytes", []byte("hello world")),
		zap.Binary("binary", []byte{0x01, 0x02, 0x03}),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	if err != nil {
		t.Fatalf("Failed to encode complex types: %v", err)
	}

	cleanOutput := stripANSI(buf.String())

	expectedSubstrings := []string{
		"complex",
		"elapsed",
		"timestamp",
		"uint",
		"bytes",
		"binary",
	}

	for _, expected := range expectedSubstrings {
		if !strings.Contains(cleanOutput, expected) {
			t.Errorf("Field with key '%s' was completely dropped from output: %s", expected, cleanOutput)
		}
	}
}

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"codec", "codec"},
		{"codec.stream", "c.stream"},
		{"parser", "parser"},
		{"engine.eval", "e.eval"},
	}
	for _, tt := range tests {
		if got := abbreviateName(tt.in); got != tt.want {
			t.Errorf("abbreviateName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
