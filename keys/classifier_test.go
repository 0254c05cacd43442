package keys

import (
	"testing"

	"github.com/npillmayer/strokes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numpadClassifier() *Classifier {
	return NewClassifier(NumpadKeymap(), strokes.DefaultPunctuation())
}

func TestClassifyNumpadStrokes(t *testing.T) {
	c := numpadClassifier()
	want := map[int]strokes.Symbol{
		7: strokes.Horizontal, 8: strokes.Vertical, 9: strokes.PositiveDiagonal,
		4: strokes.NegativeDiagonal, 5: strokes.Compound, 6: strokes.Wildcard,
	}
	for d, sym := range want {
		cl := c.Classify(Key{Code: Numpad(d), Char: rune('0' + d)})
		assert.Equal(t, Stroke, cl.Kind, "numpad %d", d)
		assert.Equal(t, sym, cl.Stroke, "numpad %d", d)
		assert.Equal(t, d, cl.Digit, "numpad %d keeps its digit reading", d)
	}
}

func TestClassifyNumpadDigits(t *testing.T) {
	c := numpadClassifier()
	for d := 0; d <= 3; d++ {
		cl := c.Classify(Key{Code: Numpad(d)})
		assert.Equal(t, Digit, cl.Kind)
		assert.Equal(t, d, cl.Digit)
	}
	// top-row digits are not bound in the keypad layout
	assert.Equal(t, Unclassified, c.Classify(Key{Code: TopRow(1), Char: '1'}).Kind)
}

func TestClassifyControlKeys(t *testing.T) {
	c := numpadClassifier()
	tests := []struct {
		code Code
		want Kind
	}{
		{VKShift, Toggle},
		{VKLShift, Toggle},
		{VKRShift, Toggle},
		{VKAdd, PageNext},
		{VKSubtract, PagePrevious},
		{VKEscape, Escape},
		{VKDecimal, Escape},
		{VKBack, Backspace},
		{VKReturn, Enter},
		{VKMultiply, Operator},
		{VKDivide, Operator},
		{VKTab, Unclassified},
		{LetterKey('q'), Letter},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(Key{Code: tt.code}).Kind, "code %#x", tt.code)
	}
}

func TestClassifyModifiersShortCircuit(t *testing.T) {
	c := numpadClassifier()
	for _, mod := range []Modifiers{ModControl, ModAlt, ModMeta, ModControl | ModShift} {
		cl := c.Classify(Key{Code: Numpad(7), Modifiers: mod})
		assert.Equal(t, NotHandled, cl.Kind)
		assert.False(t, cl.Blocked())
	}
	assert.Equal(t, Toggle, c.Classify(Key{Code: VKShift, Modifiers: ModShift}).Kind)
}

func TestClassifySubstitutable(t *testing.T) {
	c := numpadClassifier()
	cl := c.Classify(Key{Code: 0xBE, Char: '.'})
	require.Equal(t, Substitutable, cl.Kind)
	assert.Equal(t, "。", cl.Text)

	cl = c.Classify(Key{Code: TopRow(1), Char: '!', Modifiers: ModShift})
	require.Equal(t, Substitutable, cl.Kind)
	assert.Equal(t, "！", cl.Text)

	cl = c.Classify(Key{Code: VKSpace, Char: ' '})
	assert.Equal(t, Substitutable, cl.Kind)

	// keypad operators never substitute, even though '*' has a replacement
	assert.Equal(t, Operator, c.Classify(Key{Code: VKMultiply, Char: '*'}).Kind)
	assert.Equal(t, PageNext, c.Classify(Key{Code: VKAdd, Char: '+'}).Kind)
}

func TestClassifyWithoutPunctuation(t *testing.T) {
	c := NewClassifier(NumpadKeymap(), nil)
	assert.Equal(t, Unclassified, c.Classify(Key{Code: 0xBE, Char: '.'}).Kind)
}

func TestLettersKeymap(t *testing.T) {
	c := NewClassifier(LettersKeymap(), strokes.DefaultPunctuation())
	assert.Equal(t, "letters", c.Keymap())

	cl := c.Classify(Key{Code: LetterKey('u'), Char: 'u'})
	assert.Equal(t, Stroke, cl.Kind)
	assert.Equal(t, strokes.Horizontal, cl.Stroke)
	assert.False(t, cl.IsDigit())

	assert.Equal(t, PageNext, c.Classify(Key{Code: LetterKey('m')}).Kind)
	assert.Equal(t, PagePrevious, c.Classify(Key{Code: LetterKey('n')}).Kind)
	assert.Equal(t, Letter, c.Classify(Key{Code: LetterKey('a'), Char: 'a'}).Kind)

	cl = c.Classify(Key{Code: TopRow(3), Char: '3'})
	assert.Equal(t, Digit, cl.Kind)
	assert.Equal(t, 3, cl.Digit)

	cl = c.Classify(Key{Code: TopRow(3), Char: '#', Modifiers: ModShift})
	assert.Equal(t, Substitutable, cl.Kind)
	assert.Equal(t, "＃", cl.Text)

	// keypad bindings survive
	assert.Equal(t, strokes.Wildcard, c.Classify(Key{Code: Numpad(6)}).Stroke)
}

func TestKeymapByName(t *testing.T) {
	assert.Equal(t, []string{"letters", "numpad"}, KeymapNames())
	km, err := KeymapByName("numpad")
	require.NoError(t, err)
	assert.Equal(t, "numpad", km.Name)
	_, err = KeymapByName("dvorak")
	assert.Error(t, err)
}

func TestIsToggle(t *testing.T) {
	km := LettersKeymap()
	km.Toggle = []Code{VKTab}
	c := NewClassifier(km, nil)
	assert.True(t, c.IsToggle(Key{Code: VKTab}))
	assert.False(t, c.IsToggle(Key{Code: VKShift}))
	assert.False(t, c.IsToggle(Key{Code: VKTab, Modifiers: ModAlt}))
}

func TestClassString(t *testing.T) {
	c := numpadClassifier()
	assert.Equal(t, "Stroke(一|7)", c.Classify(Key{Code: Numpad(7)}).String())
	assert.Equal(t, "Digit(0)", c.Classify(Key{Code: Numpad(0)}).String())
	assert.Equal(t, "Enter", c.Classify(Key{Code: VKReturn}).String())
}

func TestKeymapWithJoker(t *testing.T) {
	km := LettersKeymap().WithJoker('*')
	assert.Equal(t, strokes.Symbol('*'), km.Strokes[Numpad(6)])
	assert.Equal(t, strokes.Symbol('*'), km.Strokes[LetterKey('L')])
	assert.Equal(t, strokes.Horizontal, km.Strokes[Numpad(7)])
	assert.Equal(t, strokes.Wildcard, LettersKeymap().Strokes[Numpad(6)])
}
