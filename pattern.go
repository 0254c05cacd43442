package strokes

import (
	"strings"
	"unicode/utf8"
)

// pattern is a lookup pattern split into literal segments and single-symbol
// jokers. A joker token is represented by an empty segment.
type pattern struct {
	tokens []string
}

func compilePattern(s string, wildcard Symbol) pattern {
	var p pattern
	var literal strings.Builder
	for _, r := range s {
		if Symbol(r) != wildcard {
			literal.WriteRune(r)
			continue
		}
		if literal.Len() > 0 {
			p.tokens = append(p.tokens, literal.String())
			literal.Reset()
		}
		p.tokens = append(p.tokens, "")
	}
	if literal.Len() > 0 {
		p.tokens = append(p.tokens, literal.String())
	}
	return p
}

// leadingLiteral returns the literal segment the pattern starts with, or ""
// if it starts with a joker.
func (p pattern) leadingLiteral() string {
	if len(p.tokens) == 0 {
		return ""
	}
	return p.tokens[0]
}

// matches consumes code from its start: every literal segment must match the
// next symbols exactly, every joker consumes one symbol. Trailing symbols of
// code beyond the pattern are allowed.
func (p pattern) matches(code string) bool {
	rest := code
	for _, tok := range p.tokens {
		if tok == "" {
			if rest == "" {
				return false
			}
			_, size := utf8.DecodeRuneInString(rest)
			rest = rest[size:]
			continue
		}
		if !strings.HasPrefix(rest, tok) {
			return false
		}
		rest = rest[len(tok):]
	}
	return true
}
