package types

// DictEntry is a single interning assignment: a #N token standing for a
// repeated string.
type DictEntry struct {
	Token string // "#0", "#1", ...
	Text  string // the original string
}

// Dictionary maps repeated strings to short #N tokens. Entries keep their
// assignment order; the encoder sorts token text only when rendering the
// @dict header.
type Dictionary struct {
	entries []DictEntry
	byText  map[string]string
	byToken map[string]string
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		byText:  make(map[string]string),
		byToken: make(map[string]string),
	}
}

// Add records an assignment of token to text. Adding the same text twice
// keeps the first token.
func (d *Dictionary) Add(token, text string) {
	if _, ok := d.byToken[token]; ok {
		return
	}
	d.entries = append(d.entries, DictEntry{Token: token, Text: text})
	if _, ok := d.byText[text]; !ok {
		d.byText[text] = token
	}
	d.byToken[token] = text
}

// TokenFor returns the token assigned to text.
func (d *Dictionary) TokenFor(text string) (string, bool) {
	if d == nil {
		return "", false
	}
	tok, ok := d.byText[text]
	return tok, ok
}

// Lookup returns the text behind a token.
func (d *Dictionary) Lookup(token string) (string, bool) {
	if d == nil {
		return "", false
	}
	text, ok := d.byToken[token]
	return text, ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns the assignments in assignment order. The slice is shared
// with the dictionary and must not be mutated.
func (d *Dictionary) Entries() []DictEntry {
	if d == nil {
		return nil
	}
	return d.entries
}
