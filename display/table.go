// Package display renders query results and compression reports for the
// CLI. JSON output goes through MarshalJSON so machine consumers get the
// same bytes with or without a terminal.
package display

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/teranos/aton/types"
)

// RenderRecords renders records as an aligned table. Columns are the union
// of field names in first-seen order; cells a record lacks stay blank.
func RenderRecords(records []*types.Record) (string, error) {
	if len(records) == 0 {
		return pterm.Gray("no records"), nil
	}

	var cols []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, name := range rec.Names() {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}

	data := make(pterm.TableData, 0, len(records)+1)
	data = append(data, cols)
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, col := range cols {
			if v, ok := rec.Get(col); ok {
				row[i] = cellText(v)
			}
		}
		data = append(data, row)
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// cellText renders a value for table display. Strings stay bare; anything
// else uses its JSON form, so containers come out compact.
func cellText(v types.Value) string {
	switch v.Kind() {
	case types.KindString:
		return v.Str()
	case types.KindNull:
		return pterm.Gray("null")
	case types.KindBool:
		return strconv.FormatBool(v.Bool())
	default:
		return string(v.AppendJSON(nil))
	}
}
