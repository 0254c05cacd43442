// Package machine implements the composition state machine of the input
// method: a pure mapping from (mode, key class) to an action and an optional
// mode transition.
package machine

import (
	"fmt"

	"github.com/npillmayer/strokes"
	"github.com/npillmayer/strokes/keys"
)

// Mode is the composition mode.
type Mode uint8

const (
	Disabled  Mode = iota // all keys pass through except the toggle key
	Typing                // strokes accumulate into the preedit
	Selecting             // digits choose among the retrieved candidates
)

func (m Mode) String() string {
	switch m {
	case Disabled:
		return "Disabled"
	case Typing:
		return "Typing"
	case Selecting:
		return "Selecting"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Action is what a session does in response to a key. The concrete types
// below are the only implementations.
type Action interface {
	action()
	fmt.Stringer
}

type (
	// PassThrough forwards the key to the host.
	PassThrough struct{}
	// ConsumeNoop swallows the key without changing the composition.
	ConsumeNoop struct{}
	// AddStroke appends a symbol to the preedit.
	AddStroke struct{ Symbol strokes.Symbol }
	// DeleteStroke removes the last symbol of the preedit.
	DeleteStroke struct{}
	// ClearComposition drops preedit, ghost, candidates and suggestions.
	ClearComposition struct{}
	// ToggleEnabled switches the input method on or off.
	ToggleEnabled struct{}
	// SelectCandidate commits the candidate at Index of the current page.
	SelectCandidate struct{ Index int }
	// NextPage turns to the next page of the active list.
	NextPage struct{}
	// PreviousPage turns to the previous page of the active list.
	PreviousPage struct{}
	// SubstituteCharacter commits Text literally.
	SubstituteCharacter struct{ Text string }
)

func (PassThrough) action()         {}
func (ConsumeNoop) action()         {}
func (AddStroke) action()           {}
func (DeleteStroke) action()        {}
func (ClearComposition) action()    {}
func (ToggleEnabled) action()       {}
func (SelectCandidate) action()     {}
func (NextPage) action()            {}
func (PreviousPage) action()        {}
func (SubstituteCharacter) action() {}

func (PassThrough) String() string           { return "PassThrough" }
func (ConsumeNoop) String() string           { return "ConsumeNoop" }
func (a AddStroke) String() string           { return "AddStroke(" + a.Symbol.String() + ")" }
func (DeleteStroke) String() string          { return "DeleteStroke" }
func (ClearComposition) String() string      { return "ClearComposition" }
func (ToggleEnabled) String() string         { return "ToggleEnabled" }
func (a SelectCandidate) String() string     { return fmt.Sprintf("SelectCandidate(%d)", a.Index) }
func (NextPage) String() string              { return "NextPage" }
func (PreviousPage) String() string          { return "PreviousPage" }
func (a SubstituteCharacter) String() string { return "SubstituteCharacter(" + a.Text + ")" }

// Step is the outcome of one transition. If Transition is set, the session
// enters Next before performing Action.
type Step struct {
	Action     Action
	Transition bool
	Next       Mode
}

func (s Step) String() string {
	if s.Transition {
		return fmt.Sprintf("%s -> %s", s.Action, s.Next)
	}
	return s.Action.String()
}

func stay(a Action) Step {
	return Step{Action: a}
}

func enter(a Action, m Mode) Step {
	return Step{Action: a, Transition: true, Next: m}
}

// Next computes the step for a key of class cl arriving in mode.
func Next(mode Mode, cl keys.Class) Step {
	if cl.Kind == keys.NotHandled {
		return stay(PassThrough{})
	}
	switch mode {
	case Disabled:
		if cl.Kind == keys.Toggle {
			return enter(ToggleEnabled{}, Typing)
		}
		return stay(PassThrough{})
	case Typing:
		return typing(cl)
	case Selecting:
		return selecting(cl)
	}
	return stay(PassThrough{})
}

func typing(cl keys.Class) Step {
	switch cl.Kind {
	case keys.Toggle:
		return enter(ToggleEnabled{}, Disabled)
	case keys.Stroke:
		return stay(AddStroke{Symbol: cl.Stroke})
	case keys.Substitutable:
		return stay(SubstituteCharacter{Text: cl.Text})
	case keys.Backspace:
		return stay(DeleteStroke{})
	case keys.Escape:
		return stay(ClearComposition{})
	case keys.Enter:
		return stay(SelectCandidate{Index: 0})
	case keys.Digit:
		if cl.Digit == 0 {
			return enter(ConsumeNoop{}, Selecting)
		}
	}
	if cl.Blocked() {
		return stay(ConsumeNoop{})
	}
	return stay(PassThrough{})
}

// In Selecting the digit reading of a key wins over its stroke reading.
func selecting(cl keys.Class) Step {
	if cl.Kind == keys.Toggle {
		return enter(ToggleEnabled{}, Disabled)
	}
	if cl.IsDigit() {
		if cl.Digit == 0 {
			return enter(ConsumeNoop{}, Typing)
		}
		return enter(SelectCandidate{Index: cl.Digit - 1}, Typing)
	}
	switch cl.Kind {
	case keys.Enter:
		return enter(SelectCandidate{Index: 0}, Typing)
	case keys.PageNext:
		return stay(NextPage{})
	case keys.PagePrevious:
		return stay(PreviousPage{})
	case keys.Escape:
		return enter(ClearComposition{}, Typing)
	case keys.Backspace:
		return enter(DeleteStroke{}, Typing)
	}
	if cl.Blocked() {
		return stay(ConsumeNoop{})
	}
	return stay(PassThrough{})
}
