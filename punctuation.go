package strokes

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Punctuation maps ASCII symbols to the full-width text committed in their
// place while composing.
type Punctuation struct {
	subst map[rune]string
}

var defaultPunctuation = map[rune]string{
	' ': "　", '`': "・", '~': "～", '!': "！", '@': "＠", '#': "＃",
	'$': "＄", '%': "％", '^': "︿", '&': "＆", '*': "＊", '(': "（",
	')': "）", '_': "＿", '+': "＋", '-': "－", '=': "＝", '[': "「",
	']': "」", '\\': "＼", '{': "『", '}': "』", '|': "｜", ';': "；",
	'\'': "、", ':': "：", '"': "＂", ',': "，", '.': "。", '/': "／",
	'<': "《", '>': "》", '?': "？",
}

// DefaultPunctuation returns the built-in substitution table.
func DefaultPunctuation() *Punctuation {
	p := &Punctuation{subst: make(map[rune]string, len(defaultPunctuation))}
	for r, s := range defaultPunctuation {
		p.subst[r] = s
	}
	return p
}

// LoadPunctuation reads symbol→replacement pairs from reader. Only the first
// rune of a key is significant. Later pairs override earlier ones.
func LoadPunctuation(reader PairReader) (*Punctuation, error) {
	p := &Punctuation{subst: make(map[rune]string)}
	for {
		key, replacement, err := reader.Next()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load punctuation: %w", err)
		}
		r, _ := utf8.DecodeRuneInString(key)
		if key == "" || replacement == "" || r == utf8.RuneError {
			continue
		}
		p.subst[r] = replacement
	}
}

// Substitute returns the replacement for r.
func (p *Punctuation) Substitute(r rune) (string, bool) {
	if p == nil {
		return "", false
	}
	s, ok := p.subst[r]
	return s, ok
}

// Len returns the number of substitutable symbols.
func (p *Punctuation) Len() int {
	if p == nil {
		return 0
	}
	return len(p.subst)
}
