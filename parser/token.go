// Package parser turns ATON query text into types.ParsedQuery values.
//
// The pipeline is a two-stage classic: Tokenize applies an ordered list of
// anchored patterns to produce a flat token stream, then Parse walks that
// stream with one token of lookahead building the query AST. Errors from
// both stages are *QueryError values wrapping errors.ErrQuery.
package parser

import "fmt"

// TokenKind classifies a query token.
type TokenKind string

const (
	TokenSelect   TokenKind = "SELECT"
	TokenWhere    TokenKind = "WHERE"
	TokenOrderBy  TokenKind = "ORDER_BY"
	TokenAsc      TokenKind = "ASC"
	TokenDesc     TokenKind = "DESC"
	TokenLimit    TokenKind = "LIMIT"
	TokenOffset   TokenKind = "OFFSET"
	TokenAnd      TokenKind = "AND"
	TokenOr       TokenKind = "OR"
	TokenNot      TokenKind = "NOT"
	TokenIn       TokenKind = "IN"
	TokenLike     TokenKind = "LIKE"
	TokenBetween  TokenKind = "BETWEEN"
	TokenIdent    TokenKind = "IDENT"
	TokenNumber   TokenKind = "NUMBER"
	TokenString   TokenKind = "STRING"
	TokenOperator TokenKind = "OPERATOR"
	TokenComma    TokenKind = "COMMA"
	TokenLParen   TokenKind = "LPAREN"
	TokenRParen   TokenKind = "RPAREN"
)

// Token is one lexed unit of a query. Literal keeps the raw matched text;
// string quotes are stripped by the parser, not here.
type Token struct {
	Kind    TokenKind // token class
	Literal string    // raw matched text
	Offset  int       // byte offset into the query text
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Literal)
}
