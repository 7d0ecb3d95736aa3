package parser

import (
	"strconv"
	"strings"

	"github.com/teranos/aton/types"
)

// queryHeaderPrefix lets encoded @query[...] lines be fed straight back in.
const queryHeaderPrefix = "@query["

// Parse turns query text into a ParsedQuery. Input may optionally be wrapped
// as `@query[ ... ]`; only the interior is parsed then.
//
// Grammar:
//
//	query     := IDENT [select] [where] [orderby] [limit] [offset]
//	select    := SELECT IDENT (',' IDENT)*
//	where     := WHERE orExpr
//	orExpr    := andExpr (OR andExpr)*
//	andExpr   := condition (AND condition)*
//	condition := '(' orExpr ')' | NOT condition
//	           | IDENT ( IN '(' value (',' value)* ')' | NOT IN '(' ... ')'
//	           | LIKE value | BETWEEN value AND value | OPERATOR value )
//	value     := STRING | NUMBER | IDENT
//
// NOT binds tighter than AND/OR: a prefix NOT wraps only the next condition.
func Parse(query string) (*types.ParsedQuery, error) {
	text := strings.TrimSpace(query)
	if strings.HasPrefix(text, queryHeaderPrefix) && strings.HasSuffix(text, "]") {
		text = text[len(queryHeaderPrefix) : len(text)-1]
	}

	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}

	// The grammar must consume everything; trailing tokens are a mistake the
	// caller wants to hear about, not silently ignore.
	if tok, ok := p.peek(); ok {
		return nil, NewQueryError(ErrorKindSyntax, "unexpected trailing input").
			WithPosition(p.pos, len(p.tokens)).
			WithToken(tok).
			WithSuggestion("check clause order: SELECT, WHERE, ORDER BY, LIMIT, OFFSET")
	}
	return q, nil
}

// parser holds the token cursor. One instance serves one Parse call.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// match consumes the next token when it has the wanted kind.
func (p *parser) match(kind TokenKind) (Token, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != kind {
		return Token{}, false
	}
	p.pos++
	return tok, true
}

// consume requires the next token to have the wanted kind; what is a short
// human label for error messages ("table name", "field name", ...).
func (p *parser) consume(kind TokenKind, what string) (Token, error) {
	tok, ok := p.peek()
	if !ok {
		return Token{}, NewQueryError(ErrorKindSyntax, "incomplete query").
			WithPosition(p.pos, len(p.tokens)).
			WithExpected(what, "")
	}
	if tok.Kind != kind {
		return Token{}, NewQueryError(ErrorKindSyntax, "unexpected token").
			WithPosition(p.pos, len(p.tokens)).
			WithToken(tok).
			WithExpected(what, tok.String())
	}
	p.pos++
	return tok, nil
}

func (p *parser) parseQuery() (*types.ParsedQuery, error) {
	table, err := p.consume(TokenIdent, "table name")
	if err != nil {
		return nil, err
	}
	q := &types.ParsedQuery{Table: table.Literal}

	if _, ok := p.match(TokenSelect); ok {
		field, err := p.consume(TokenIdent, "field name")
		if err != nil {
			return nil, err
		}
		q.Select = []string{field.Literal}
		for {
			if _, ok := p.match(TokenComma); !ok {
				break
			}
			field, err := p.consume(TokenIdent, "field name")
			if err != nil {
				return nil, err
			}
			q.Select = append(q.Select, field.Literal)
		}
	}

	if _, ok := p.match(TokenWhere); ok {
		expr, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		q.Where = expr
	}

	if _, ok := p.match(TokenOrderBy); ok {
		field, err := p.consume(TokenIdent, "sort field")
		if err != nil {
			return nil, err
		}
		ob := &types.OrderBy{Field: field.Literal}
		if _, ok := p.match(TokenDesc); ok {
			ob.Desc = true
		} else {
			p.match(TokenAsc) // ASC is the default; consume if present
		}
		q.OrderBy = ob
	}

	if _, ok := p.match(TokenLimit); ok {
		n, err := p.parseIntClause("LIMIT")
		if err != nil {
			return nil, err
		}
		q.Limit = &n
	}

	if _, ok := p.match(TokenOffset); ok {
		n, err := p.parseIntClause("OFFSET")
		if err != nil {
			return nil, err
		}
		q.Offset = n
	}

	return q, nil
}

func (p *parser) parseIntClause(clause string) (int, error) {
	tok, err := p.consume(TokenNumber, clause+" count")
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(tok.Literal)
	if convErr != nil {
		return 0, NewQueryError(ErrorKindSyntax, clause+" needs a whole number").
			WithPosition(p.pos-1, len(p.tokens)).
			WithToken(tok).
			WithUnderlying(convErr)
	}
	return n, nil
}

func (p *parser) parseOrExpr() (types.Expression, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.match(TokenOr); !ok {
			return left, nil
		}
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = &types.Group{Op: types.LogicalOr, Children: []types.Expression{left, right}}
	}
}

func (p *parser) parseAndExpr() (types.Expression, error) {
	left, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.match(TokenAnd); !ok {
			return left, nil
		}
		right, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		left = &types.Group{Op: types.LogicalAnd, Children: []types.Expression{left, right}}
	}
}

func (p *parser) parseCondition() (types.Expression, error) {
	if _, ok := p.match(TokenLParen); ok {
		expr, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(TokenRParen, "closing parenthesis"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	if _, ok := p.match(TokenNot); ok {
		child, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		return &types.Group{Op: types.LogicalNot, Children: []types.Expression{child}}, nil
	}

	field, err := p.consume(TokenIdent, "field name")
	if err != nil {
		return nil, err
	}

	if _, ok := p.match(TokenIn); ok {
		return p.parseInList(field.Literal, types.OpIn)
	}
	if _, ok := p.match(TokenNot); ok {
		if _, err := p.consume(TokenIn, "IN after NOT"); err != nil {
			return nil, err
		}
		return p.parseInList(field.Literal, types.OpNotIn)
	}
	if _, ok := p.match(TokenLike); ok {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &types.Condition{Field: field.Literal, Op: types.OpLike, Value: v}, nil
	}
	if _, ok := p.match(TokenBetween); ok {
		lo, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(TokenAnd, "AND between bounds"); err != nil {
			return nil, err
		}
		hi, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &types.Condition{Field: field.Literal, Op: types.OpBetween, Value: lo, Value2: hi}, nil
	}

	opTok, err := p.consume(TokenOperator, "comparison operator")
	if err != nil {
		return nil, err
	}
	op, ok := mapOperator(opTok.Literal)
	if !ok {
		return nil, NewQueryError(ErrorKindSyntax, "unknown operator "+opTok.Literal).
			WithPosition(p.pos-1, len(p.tokens)).
			WithToken(opTok).
			WithSuggestion("supported operators: =, !=, <>, <, >, <=, >=")
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &types.Condition{Field: field.Literal, Op: op, Value: v}, nil
}

func (p *parser) parseInList(field string, op types.Operator) (types.Expression, error) {
	if _, err := p.consume(TokenLParen, "opening parenthesis"); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	values := []types.Value{v}
	for {
		if _, ok := p.match(TokenComma); !ok {
			break
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if _, err := p.consume(TokenRParen, "closing parenthesis"); err != nil {
		return nil, err
	}
	return &types.Condition{Field: field, Op: op, Value: types.Array(values...)}, nil
}

// parseValue reads one literal. Bare words TRUE/FALSE/NULL map to their
// typed values; any other bare word becomes a plain string equal to its text
// so `status = active` works without quotes.
func (p *parser) parseValue() (types.Value, error) {
	tok, ok := p.peek()
	if !ok {
		return types.Value{}, NewQueryError(ErrorKindSyntax, "incomplete query").
			WithPosition(p.pos, len(p.tokens)).
			WithExpected("value", "")
	}
	switch tok.Kind {
	case TokenString:
		p.pos++
		return types.String(unquote(tok.Literal)), nil
	case TokenNumber:
		p.pos++
		if strings.Contains(tok.Literal, ".") {
			f, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil {
				return types.Value{}, NewQueryError(ErrorKindSyntax, "invalid number "+tok.Literal).
					WithToken(tok).WithUnderlying(err)
			}
			return types.Float(f), nil
		}
		i, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return types.Value{}, NewQueryError(ErrorKindSyntax, "invalid number "+tok.Literal).
				WithToken(tok).WithUnderlying(err)
		}
		return types.Int(i), nil
	case TokenIdent:
		p.pos++
		switch strings.ToUpper(tok.Literal) {
		case "TRUE":
			return types.Bool(true), nil
		case "FALSE":
			return types.Bool(false), nil
		case "NULL":
			return types.Null(), nil
		}
		return types.String(tok.Literal), nil
	default:
		return types.Value{}, NewQueryError(ErrorKindSyntax, "unexpected token").
			WithPosition(p.pos, len(p.tokens)).
			WithToken(tok).
			WithExpected("value", tok.String())
	}
}

func mapOperator(symbol string) (types.Operator, bool) {
	switch symbol {
	case "=":
		return types.OpEq, true
	case "!=", "<>":
		return types.OpNeq, true
	case "<":
		return types.OpLt, true
	case ">":
		return types.OpGt, true
	case "<=":
		return types.OpLte, true
	case ">=":
		return types.OpGte, true
	default:
		return "", false
	}
}

// unquote strips the matched quote pair; query strings carry no escapes.
func unquote(literal string) string {
	if len(literal) >= 2 {
		return literal[1 : len(literal)-1]
	}
	return literal
}
