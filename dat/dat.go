/*
Package dat implements a frozen double-array trie over stroke codes.

  - Nodes/states are indices into Base/Check (0 is unused; Root is typically 1).
  - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
  - c is a dense alphabet ID in [1..Sigma]. c==0 means "not in alphabet".

Every state of the trie is the end of some prefix of a stored code, so
reaching a state proves that at least one code starts with the symbols
consumed so far. Whether a state terminates a complete code is recorded by
the client, keyed by state index.
*/
package dat

// DAT is a frozen double-array trie.
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Sigma is the size of the dense alphabet (maximum dense ID).
	Sigma uint16

	// Base and Check are the classic double-array.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Alphabet maps code points to dense IDs.
	Alphabet Alphabet
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). dense must be in [1..Sigma].
func (d *DAT) Transition(state uint32, dense uint16) (uint32, bool) {
	if dense == 0 || int(state) >= len(d.Base) || int(state) >= len(d.Check) {
		return 0, false
	}
	t := d.Base[state] + int32(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Walk follows the runes of s from the root and returns the final state.
// ok is false as soon as a rune is unknown or has no transition.
func (d *DAT) Walk(s string) (state uint32, ok bool) {
	state = d.Root
	for _, r := range s {
		if state, ok = d.Transition(state, d.Alphabet.Dense(r)); !ok {
			return 0, false
		}
	}
	return state, true
}

// Grow makes sure idx is a valid index into Base and Check.
func (d *DAT) Grow(idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
}

// FindBase returns the smallest base for which all labels land on free slots.
func (d *DAT) FindBase(labels []uint16) int {
	for base := 1; ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t == int(d.Root) || (t < len(d.Check) && d.Check[t] != 0) {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}
