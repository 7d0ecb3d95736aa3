package parser

import "regexp"

// pattern is one entry in the ordered tokenizer rule list.
type pattern struct {
	name string
	re   *regexp.Regexp
	kind TokenKind
	skip bool // matched text is discarded, no token emitted
}

// patterns is applied IN ORDER at the current position; the first match wins.
// This is priority order, not longest match: keywords sit above IDENT so that
// word-boundary anchors decide between "SELECT" and an identifier like
// "selected", and IDENT sits above NUMBER so "x1" never splits.
var patterns = []pattern{
	{"ORDER BY", regexp.MustCompile(`(?i)^ORDER\s+BY\b`), TokenOrderBy, false},
	{"SELECT", regexp.MustCompile(`(?i)^SELECT\b`), TokenSelect, false},
	{"WHERE", regexp.MustCompile(`(?i)^WHERE\b`), TokenWhere, false},
	{"BETWEEN", regexp.MustCompile(`(?i)^BETWEEN\b`), TokenBetween, false},
	{"AND", regexp.MustCompile(`(?i)^AND\b`), TokenAnd, false},
	{"OR", regexp.MustCompile(`(?i)^OR\b`), TokenOr, false},
	{"NOT", regexp.MustCompile(`(?i)^NOT\b`), TokenNot, false},
	{"IN", regexp.MustCompile(`(?i)^IN\b`), TokenIn, false},
	{"LIKE", regexp.MustCompile(`(?i)^LIKE\b`), TokenLike, false},
	{"ASC", regexp.MustCompile(`(?i)^ASC\b`), TokenAsc, false},
	{"DESC", regexp.MustCompile(`(?i)^DESC\b`), TokenDesc, false},
	{"LIMIT", regexp.MustCompile(`(?i)^LIMIT\b`), TokenLimit, false},
	{"OFFSET", regexp.MustCompile(`(?i)^OFFSET\b`), TokenOffset, false},
	{"IDENT", regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`), TokenIdent, false},
	{"NUMBER", regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?`), TokenNumber, false},
	{"STRING", regexp.MustCompile(`^"[^"]*"|^'[^']*'`), TokenString, false},
	{"OPERATOR", regexp.MustCompile(`^(?:<=|>=|!=|<>|=|<|>)`), TokenOperator, false},
	{"COMMA", regexp.MustCompile(`^,`), TokenComma, false},
	{"LPAREN", regexp.MustCompile(`^\(`), TokenLParen, false},
	{"RPAREN", regexp.MustCompile(`^\)`), TokenRParen, false},
	{"WHITESPACE", regexp.MustCompile(`^\s+`), "", true},
}

// Tokenize lexes query text into a flat token stream. Whitespace is
// discarded. A position where no pattern matches fails with a *QueryError
// naming the offending character and its byte offset.
func Tokenize(text string) ([]Token, error) {
	var tokens []Token
	pos := 0

	for pos < len(text) {
		rest := text[pos:]
		matched := false

		for _, p := range patterns {
			loc := p.re.FindStringIndex(rest)
			if loc == nil {
				continue
			}
			if !p.skip {
				tokens = append(tokens, Token{
					Kind:    p.kind,
					Literal: rest[:loc[1]],
					Offset:  pos,
				})
			}
			pos += loc[1]
			matched = true
			break
		}

		if !matched {
			return nil, newLexError(text, pos)
		}
	}

	return tokens, nil
}

func newLexError(text string, pos int) *QueryError {
	ch := text[pos]
	return NewQueryError(ErrorKindLex,
		"unexpected character "+quoteChar(ch)+" in query").
		WithOffset(pos).
		WithSuggestion("strings need matching quotes, operators are =, !=, <>, <, >, <=, >=")
}

func quoteChar(c byte) string {
	return "'" + string(rune(c)) + "'"
}
