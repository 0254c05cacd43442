// Package keys classifies raw key events into the semantic categories the
// composition state machine works on.
//
// Key codes use the Windows virtual-key numbering. Hosts on other platforms
// translate their native codes before handing keys to a Classifier.
package keys

import (
	"fmt"

	"github.com/npillmayer/strokes"
)

// Code is a virtual key code.
type Code uint16

// Virtual key codes used by the built-in keymaps.
const (
	VKBack     Code = 0x08
	VKTab      Code = 0x09
	VKReturn   Code = 0x0D
	VKShift    Code = 0x10
	VKControl  Code = 0x11
	VKMenu     Code = 0x12 // Alt
	VKEscape   Code = 0x1B
	VKSpace    Code = 0x20
	VK0        Code = 0x30 // top-row digits VK0..VK0+9
	VKA        Code = 0x41 // letters VKA..VKA+25
	VKNumpad0  Code = 0x60 // keypad digits VKNumpad0..VKNumpad0+9
	VKMultiply Code = 0x6A
	VKAdd      Code = 0x6B
	VKSubtract Code = 0x6D
	VKDecimal  Code = 0x6E
	VKDivide   Code = 0x6F
	VKLShift   Code = 0xA0
	VKRShift   Code = 0xA1
)

// Numpad returns the code of keypad digit d.
func Numpad(d int) Code {
	return VKNumpad0 + Code(d)
}

// TopRow returns the code of top-row digit d.
func TopRow(d int) Code {
	return VK0 + Code(d)
}

// LetterKey returns the code of the letter key for r, which may be upper or
// lower case. It returns 0 for anything but ASCII letters.
func LetterKey(r rune) Code {
	switch {
	case r >= 'a' && r <= 'z':
		return VKA + Code(r-'a')
	case r >= 'A' && r <= 'Z':
		return VKA + Code(r-'A')
	}
	return 0
}

func (c Code) isLetter() bool {
	return c >= VKA && c < VKA+26
}

// Modifiers represents modifier key state.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta // Command on macOS, Windows key on Windows
)

// HasAny reports whether any of the modifiers in o are held.
func (m Modifiers) HasAny(o Modifiers) bool {
	return m&o != 0
}

// Key is one key-down event as delivered by the host.
type Key struct {
	Code      Code
	Char      rune // character the key produces with the current modifiers, 0 if none
	Modifiers Modifiers
}

// Kind is the semantic category of a key.
type Kind uint8

const (
	NotHandled   Kind = iota // a non-toggle modifier is held
	Unclassified             // no meaning for the input method
	Toggle
	Stroke
	Digit
	PageNext
	PagePrevious
	Escape
	Backspace
	Enter
	Operator // keypad operator without a binding of its own
	Substitutable
	Letter
)

var kindNames = [...]string{
	"NotHandled", "Unclassified", "Toggle", "Stroke", "Digit", "PageNext",
	"PagePrevious", "Escape", "Backspace", "Enter", "Operator", "Substitutable", "Letter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Class is the result of classifying a key.
//
// A key may carry a second reading: a keypad key bound to a stroke may also
// be a digit. Kind holds the primary reading, Digit the digit reading or -1.
type Class struct {
	Kind   Kind
	Stroke strokes.Symbol
	Digit  int
	Text   string // replacement text, for Substitutable
}

// IsDigit reports whether the key has a digit reading.
func (c Class) IsDigit() bool {
	return c.Digit >= 0
}

// Blocked reports whether the key belongs to the input method at all. Blocked
// keys without a meaning in the current mode are swallowed instead of being
// forwarded to the host.
func (c Class) Blocked() bool {
	return c.Kind != NotHandled && c.Kind != Unclassified
}

func (c Class) String() string {
	switch c.Kind {
	case Stroke:
		if c.IsDigit() {
			return fmt.Sprintf("Stroke(%s|%d)", c.Stroke, c.Digit)
		}
		return fmt.Sprintf("Stroke(%s)", c.Stroke)
	case Digit:
		return fmt.Sprintf("Digit(%d)", c.Digit)
	case Substitutable:
		return fmt.Sprintf("Substitutable(%s)", c.Text)
	}
	return c.Kind.String()
}
