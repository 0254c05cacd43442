package strokes

import "fmt"

const absentCandidates = ^uint32(0)
const initialCandidateSlots = 2 // include slot 0 + root slot

// candidateStore keeps candidate lists directly indexed by trie state.
// All lists share one flat slice; each state records an offset and a length.
type candidateStore struct {
	offset []uint32 // will grow with demand
	length []uint16
	chars  []string
}

func newCandidateStore(states int) *candidateStore {
	states = max(states, initialCandidateSlots)
	s := &candidateStore{
		offset: make([]uint32, states),
		length: make([]uint16, states),
		chars:  make([]string, 0, states),
	}
	for i := range s.offset {
		s.offset[i] = absentCandidates
	}
	return s
}

func (s *candidateStore) ensure(pos int) {
	if pos < len(s.offset) {
		return
	}
	grow := pos + 1 - len(s.offset)
	old := len(s.offset)
	s.offset = append(s.offset, make([]uint32, grow)...)
	s.length = append(s.length, make([]uint16, grow)...)
	for i := old; i < len(s.offset); i++ {
		s.offset[i] = absentCandidates
	}
}

// maxCandidates is the longest candidate list a single code can hold.
const maxCandidates = int(^uint16(0))

// Put stores a candidate list at trie state pos. A second Put for the same
// state replaces the list; the old strings stay in the flat slice.
func (s *candidateStore) Put(pos int, chars []string) error {
	if pos < 0 {
		return fmt.Errorf("negative trie position: %d", pos)
	}
	if len(chars) > maxCandidates {
		return fmt.Errorf("too many candidates for one code: %d", len(chars))
	}
	s.ensure(pos)
	s.offset[pos] = uint32(len(s.chars))
	s.length[pos] = uint16(len(chars))
	s.chars = append(s.chars, chars...)
	return nil
}

// Get returns the candidate list at trie state pos.
// The returned slice must not be modified.
func (s *candidateStore) Get(pos int) ([]string, bool) {
	if pos < 0 || pos >= len(s.offset) {
		return nil, false
	}
	off := s.offset[pos]
	if off == absentCandidates {
		return nil, false
	}
	end := int(off) + int(s.length[pos])
	return s.chars[off:end:end], true
}

// Len returns the number of states holding a candidate list.
func (s *candidateStore) Len() int {
	n := 0
	for _, off := range s.offset {
		if off != absentCandidates {
			n++
		}
	}
	return n
}
