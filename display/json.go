package display

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON marshals with pretty formatting for human-readable output,
// compact single-line formatting when requested
func MarshalJSON(v interface{}, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}, compact bool) error {
	data, err := MarshalJSON(v, compact)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
