package keys

import "github.com/npillmayer/strokes"

// Classifier maps keys to classes according to a keymap and a punctuation
// substitution table.
//
// Bindings are resolved in this order: toggle, stroke, digit, page, escape,
// backspace, enter, operator. A key bound to both a stroke and a digit is a
// stroke with a digit reading. Unbound keys are substitutable if the
// character they produce has a replacement, letters if they are letter keys,
// and unclassified otherwise.
type Classifier struct {
	keymap    string
	bindings  map[Code]Class
	operators map[Code]bool
	punct     *strokes.Punctuation
}

// NewClassifier creates a classifier. punct may be nil, in which case no key
// is substitutable.
func NewClassifier(km Keymap, punct *strokes.Punctuation) *Classifier {
	c := &Classifier{
		keymap:    km.Name,
		bindings:  make(map[Code]Class),
		operators: make(map[Code]bool, len(km.Operators)),
		punct:     punct,
	}
	bind := func(codes []Code, kind Kind) {
		for _, code := range codes {
			if _, ok := c.bindings[code]; !ok {
				c.bindings[code] = Class{Kind: kind, Digit: -1}
			}
		}
	}
	bind(km.Toggle, Toggle)
	for code, sym := range km.Strokes {
		if _, ok := c.bindings[code]; !ok {
			c.bindings[code] = Class{Kind: Stroke, Stroke: sym, Digit: -1}
		}
	}
	for code, d := range km.Digits {
		cl, ok := c.bindings[code]
		if !ok {
			c.bindings[code] = Class{Kind: Digit, Digit: d}
		} else if cl.Kind == Stroke {
			cl.Digit = d
			c.bindings[code] = cl
		}
	}
	bind(km.PageNext, PageNext)
	bind(km.PagePrevious, PagePrevious)
	bind(km.Escape, Escape)
	bind(km.Backspace, Backspace)
	bind(km.Enter, Enter)
	bind(km.Operators, Operator)
	for _, code := range km.Operators {
		c.operators[code] = true
	}
	return c
}

// Keymap returns the name of the keymap in use.
func (c *Classifier) Keymap() string {
	return c.keymap
}

// Classify returns the class of k. Holding Control, Alt or Meta makes every
// key NotHandled; Shift is the toggle modifier and is allowed.
func (c *Classifier) Classify(k Key) Class {
	if k.Modifiers.HasAny(ModControl | ModAlt | ModMeta) {
		return Class{Kind: NotHandled, Digit: -1}
	}
	if cl, ok := c.bindings[k.Code]; ok {
		// shifted digit keys produce symbols
		if !(cl.Kind == Digit && k.Modifiers.HasAny(ModShift)) {
			return cl
		}
	}
	if k.Char != 0 && !c.operators[k.Code] {
		if text, ok := c.punct.Substitute(k.Char); ok {
			return Class{Kind: Substitutable, Digit: -1, Text: text}
		}
	}
	if k.Code.isLetter() {
		return Class{Kind: Letter, Digit: -1}
	}
	return Class{Kind: Unclassified, Digit: -1}
}

// IsToggle reports whether k is the toggle key.
func (c *Classifier) IsToggle(k Key) bool {
	return c.Classify(k).Kind == Toggle
}
