package types

import (
	"strconv"
	"strings"
)

// Operator is a comparison operator in a WHERE condition.
type Operator string

const (
	OpEq      Operator = "="
	OpNeq     Operator = "!="
	OpLt      Operator = "<"
	OpGt      Operator = ">"
	OpLte     Operator = "<="
	OpGte     Operator = ">="
	OpLike    Operator = "LIKE"
	OpIn      Operator = "IN"
	OpNotIn   Operator = "NOT IN"
	OpBetween Operator = "BETWEEN"
)

// LogicalOp combines conditions inside a Group.
type LogicalOp string

const (
	LogicalAnd LogicalOp = "AND"
	LogicalOr  LogicalOp = "OR"
	LogicalNot LogicalOp = "NOT"
)

// Expression is a node of a WHERE clause: either a Condition leaf or a Group
// of sub-expressions joined by a logical operator.
type Expression interface {
	isExpression()
}

// Condition compares one field against a value. For IN and NOT IN the value
// is an array holding the candidate list; for BETWEEN, Value and Value2 hold
// the inclusive bounds.
type Condition struct {
	Field  string
	Op     Operator
	Value  Value
	Value2 Value // BETWEEN upper bound only
}

func (*Condition) isExpression() {}

// Group joins child expressions with AND or OR, or negates a single child
// with NOT.
type Group struct {
	Op       LogicalOp
	Children []Expression
}

func (*Group) isExpression() {}

// OrderBy names the sort field and direction of a query.
type OrderBy struct {
	Field string
	Desc  bool
}

// ParsedQuery is the evaluated form of a query string. Nil or zero parts mean
// the clause was absent: a nil Where keeps every record, a nil Select keeps
// every field, a nil Limit applies no cap.
type ParsedQuery struct {
	Table   string
	Select  []string
	Where   Expression
	OrderBy *OrderBy
	Limit   *int
	Offset  int
}

// String reassembles a canonical query text from the parsed form. Keyword
// case and redundant whitespace from the source are not preserved.
func (q *ParsedQuery) String() string {
	var b strings.Builder
	b.WriteString(q.Table)
	if len(q.Select) > 0 {
		b.WriteString(" SELECT ")
		b.WriteString(strings.Join(q.Select, ", "))
	}
	if q.Where != nil {
		b.WriteString(" WHERE ")
		writeExpression(&b, q.Where)
	}
	if q.OrderBy != nil {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.OrderBy.Field)
		if q.OrderBy.Desc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}
	if q.Limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*q.Limit))
	}
	if q.Offset > 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(q.Offset))
	}
	return b.String()
}

func writeExpression(b *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *Condition:
		b.WriteString(n.Field)
		b.WriteByte(' ')
		b.WriteString(string(n.Op))
		b.WriteByte(' ')
		switch n.Op {
		case OpIn, OpNotIn:
			b.WriteByte('(')
			for i, el := range n.Value.Arr() {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(el.GoString())
			}
			b.WriteByte(')')
		case OpBetween:
			b.WriteString(n.Value.GoString())
			b.WriteString(" AND ")
			b.WriteString(n.Value2.GoString())
		default:
			b.WriteString(n.Value.GoString())
		}
	case *Group:
		if n.Op == LogicalNot {
			b.WriteString("NOT (")
			if len(n.Children) > 0 {
				writeExpression(b, n.Children[0])
			}
			b.WriteByte(')')
			return
		}
		b.WriteByte('(')
		for i, child := range n.Children {
			if i > 0 {
				b.WriteByte(' ')
				b.WriteString(string(n.Op))
				b.WriteByte(' ')
			}
			writeExpression(b, child)
		}
		b.WriteByte(')')
	}
}
