package strokes

import "strings"

// Symbol is one stroke glyph of an input code.
type Symbol rune

// The five stroke shapes and the joker.
const (
	Horizontal       Symbol = '一'
	Vertical         Symbol = '丨'
	PositiveDiagonal Symbol = '丿'
	NegativeDiagonal Symbol = '丶'
	Compound         Symbol = 'フ'
	Wildcard         Symbol = '＊'
)

// Symbols lists all stroke symbols in keypad order, joker last.
var Symbols = []Symbol{Horizontal, Vertical, PositiveDiagonal, NegativeDiagonal, Compound, Wildcard}

func (s Symbol) String() string {
	return string(rune(s))
}

// IsStroke reports whether s is one of the five stroke shapes.
func (s Symbol) IsStroke() bool {
	switch s {
	case Horizontal, Vertical, PositiveDiagonal, NegativeDiagonal, Compound:
		return true
	}
	return false
}

// Code is an ordered sequence of stroke symbols, in stroke-entry order.
type Code []Symbol

// ParseCode converts a string into a code, one symbol per rune.
func ParseCode(s string) Code {
	code := make(Code, 0, len(s))
	for _, r := range s {
		code = append(code, Symbol(r))
	}
	return code
}

func (c Code) String() string {
	var sb strings.Builder
	for _, s := range c {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

// Push appends a symbol.
func (c Code) Push(s Symbol) Code {
	return append(c, s)
}

// Pop removes the last symbol. Popping an empty code is a no-op.
func (c Code) Pop() Code {
	if len(c) == 0 {
		return c
	}
	return c[:len(c)-1]
}
