package bot

import (
	"strings"
	"unicode"
)

// Input is an inbound chat text prepared for rule evaluation.
type Input struct {
	Raw    string
	Lower  string
	Tokens []string

	set map[string]struct{}
}

// NewInput lowercases text and splits it on whitespace and , ! . ?
func NewInput(text string) Input {
	lower := strings.ToLower(text)
	tokens := Tokenize(lower)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return Input{Raw: text, Lower: lower, Tokens: tokens, set: set}
}

// Has reports whether token appears as a whole word.
func (in Input) Has(token string) bool {
	_, ok := in.set[token]
	return ok
}

// Tokenize splits s on whitespace and the punctuation , ! . ? dropping empty tokens.
// It does not change case.
func Tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",!.?", r)
	})
}
