package engine

import (
	"regexp"
	"strings"

	"github.com/teranos/aton/types"
)

// evaluate walks the expression tree for one record.
func evaluate(expr types.Expression, rec *types.Record) bool {
	switch n := expr.(type) {
	case *types.Condition:
		return evalCondition(n, rec)
	case *types.Group:
		switch n.Op {
		case types.LogicalAnd:
			for _, child := range n.Children {
				if !evaluate(child, rec) {
					return false
				}
			}
			return true
		case types.LogicalOr:
			for _, child := range n.Children {
				if evaluate(child, rec) {
					return true
				}
			}
			return false
		case types.LogicalNot:
			return len(n.Children) == 1 && !evaluate(n.Children[0], rec)
		}
	}
	return false
}

// evalCondition tests one comparison. A field absent from the record makes
// the condition false, never an error. Note the asymmetry this gives the
// two negation forms: `f NOT IN (...)` is false for a record without f,
// while `NOT (f IN (...))` is true.
func evalCondition(c *types.Condition, rec *types.Record) bool {
	v, ok := rec.Get(c.Field)
	if !ok {
		return false
	}

	switch c.Op {
	case types.OpEq:
		return v.Equal(c.Value)
	case types.OpNeq:
		return !v.Equal(c.Value)
	case types.OpLt, types.OpGt, types.OpLte, types.OpGte:
		a, aok := v.Num()
		b, bok := c.Value.Num()
		if !aok || !bok {
			return false
		}
		switch c.Op {
		case types.OpLt:
			return a < b
		case types.OpGt:
			return a > b
		case types.OpLte:
			return a <= b
		default:
			return a >= b
		}
	case types.OpLike:
		return evalLike(v, c.Value)
	case types.OpIn:
		return inList(v, c.Value)
	case types.OpNotIn:
		return !inList(v, c.Value)
	case types.OpBetween:
		a, aok := v.Num()
		lo, loOK := c.Value.Num()
		hi, hiOK := c.Value2.Num()
		return aok && loOK && hiOK && lo <= a && a <= hi
	}
	return false
}

// inList reports membership of v in the candidate list, which the parser
// delivers as an array value.
func inList(v, list types.Value) bool {
	for _, el := range list.Arr() {
		if v.Equal(el) {
			return true
		}
	}
	return false
}

// evalLike matches v against a SQL LIKE pattern: % matches any run, _ any
// single character, everything else literally. Anchored, case-insensitive.
// Non-string operands never match.
func evalLike(v, pattern types.Value) bool {
	if v.Kind() != types.KindString || pattern.Kind() != types.KindString {
		return false
	}
	re, err := regexp.Compile(likePattern(pattern.Str()))
	if err != nil {
		return false
	}
	return re.MatchString(v.Str())
}

func likePattern(like string) string {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range like {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return b.String()
}
