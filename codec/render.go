package codec

import (
	"strconv"
	"strings"

	"github.com/teranos/aton/types"
)

// renderValue formats one row literal. Strings already carrying a leading #
// are dictionary tokens and emit bare; all other strings are quoted with "
// escaped as \" — deliberately only that one escape, mirroring what the
// decoder unescapes. Arrays and objects render as compact JSON, which uses
// full JSON escaping and is parsed back as JSON.
func renderValue(v types.Value) string {
	switch v.Kind() {
	case types.KindNull:
		return "null"
	case types.KindBool:
		return strconv.FormatBool(v.Bool())
	case types.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case types.KindFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case types.KindString:
		s := v.Str()
		if strings.HasPrefix(s, "#") {
			return s
		}
		return quoteEscape(s)
	default:
		return string(v.AppendJSON(nil))
	}
}

// renderDefault formats a @defaults value: identical to renderValue except
// that #-prefixed strings get no bare-token carve-out and are quoted like
// any other string. The asymmetry against row rendering is part of the
// format and must not be unified.
func renderDefault(v types.Value) string {
	if v.Kind() == types.KindString {
		return quoteEscape(v.Str())
	}
	return renderValue(v)
}

func quoteEscape(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}
