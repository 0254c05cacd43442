package keys

import (
	"fmt"
	"sort"

	"github.com/npillmayer/strokes"
)

// Keymap binds key codes to input method functions.
type Keymap struct {
	Name         string
	Toggle       []Code
	Strokes      map[Code]strokes.Symbol
	Digits       map[Code]int
	PageNext     []Code
	PagePrevious []Code
	Escape       []Code
	Backspace    []Code
	Enter        []Code
	Operators    []Code
}

// NumpadKeymap returns the keypad layout:
//
//	7 一   8 丨   9 丿
//	4 丶   5 フ   6 ＊
//
// Keypad digits 0 to 9 double as selection digits, + and - turn pages, and
// the decimal key cancels like Escape. Shift toggles the input method.
func NumpadKeymap() Keymap {
	km := Keymap{
		Name:   "numpad",
		Toggle: []Code{VKShift, VKLShift, VKRShift},
		Strokes: map[Code]strokes.Symbol{
			Numpad(7): strokes.Horizontal,
			Numpad(8): strokes.Vertical,
			Numpad(9): strokes.PositiveDiagonal,
			Numpad(4): strokes.NegativeDiagonal,
			Numpad(5): strokes.Compound,
			Numpad(6): strokes.Wildcard,
		},
		Digits:       make(map[Code]int, 10),
		PageNext:     []Code{VKAdd},
		PagePrevious: []Code{VKSubtract},
		Escape:       []Code{VKEscape, VKDecimal},
		Backspace:    []Code{VKBack},
		Enter:        []Code{VKReturn},
		Operators:    []Code{VKAdd, VKSubtract, VKMultiply, VKDivide, VKDecimal},
	}
	for d := 0; d <= 9; d++ {
		km.Digits[Numpad(d)] = d
	}
	return km
}

// LettersKeymap extends the keypad layout for keyboards without one:
//
//	U 一   I 丨   O 丿
//	J 丶   K フ   L ＊
//
// M and N turn pages forward and back, top-row digits select.
func LettersKeymap() Keymap {
	km := NumpadKeymap()
	km.Name = "letters"
	for r, sym := range map[rune]strokes.Symbol{
		'U': strokes.Horizontal,
		'I': strokes.Vertical,
		'O': strokes.PositiveDiagonal,
		'J': strokes.NegativeDiagonal,
		'K': strokes.Compound,
		'L': strokes.Wildcard,
	} {
		km.Strokes[LetterKey(r)] = sym
	}
	for d := 0; d <= 9; d++ {
		km.Digits[TopRow(d)] = d
	}
	km.PageNext = append(km.PageNext, LetterKey('M'))
	km.PagePrevious = append(km.PagePrevious, LetterKey('N'))
	return km
}

// WithJoker returns a copy of km in which keys bound to the default joker
// push joker instead.
func (km Keymap) WithJoker(joker strokes.Symbol) Keymap {
	bound := make(map[Code]strokes.Symbol, len(km.Strokes))
	for code, sym := range km.Strokes {
		if sym == strokes.Wildcard {
			sym = joker
		}
		bound[code] = sym
	}
	km.Strokes = bound
	return km
}

var keymaps = map[string]func() Keymap{
	"numpad":  NumpadKeymap,
	"letters": LettersKeymap,
}

// KeymapByName returns a built-in keymap.
func KeymapByName(name string) (Keymap, error) {
	if mk, ok := keymaps[name]; ok {
		return mk(), nil
	}
	return Keymap{}, fmt.Errorf("unknown keymap %q", name)
}

// KeymapNames lists the built-in keymaps.
func KeymapNames() []string {
	names := make([]string, 0, len(keymaps))
	for name := range keymaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
