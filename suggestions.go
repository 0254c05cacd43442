package strokes

import (
	"fmt"
	"io"
	"sync"
)

// PairReader yields (key, value) pairs one-by-one, in source order.
// It should return io.EOF when the stream is exhausted.
type PairReader interface {
	Next() (key string, value string, err error)
}

// Suggestions maps a character to characters commonly following it.
// They are offered right after a commit, before any stroke is typed.
// A table may be replaced while in use.
type Suggestions struct {
	mu   sync.RWMutex
	next map[string][]string
}

// NewSuggestions creates an empty suggestion table.
func NewSuggestions() *Suggestions {
	return &Suggestions{next: make(map[string][]string)}
}

// LoadSuggestions reads character→suggestion pairs from reader.
// Several pairs for the same character accumulate in source order.
func LoadSuggestions(reader PairReader) (*Suggestions, error) {
	s := NewSuggestions()
	for {
		character, suggestion, err := reader.Next()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load suggestions: %w", err)
		}
		s.Add(character, suggestion)
	}
}

// Add appends one suggestion for character. Empty arguments are ignored.
func (s *Suggestions) Add(character, suggestion string) {
	if character == "" || suggestion == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == nil {
		s.next = make(map[string][]string)
	}
	s.next[character] = append(s.next[character], suggestion)
}

// Lookup returns the suggestions for character, or an empty list.
func (s *Suggestions) Lookup(character string) []string {
	if s == nil {
		return []string{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.next[character])
}

// Len returns the number of characters having suggestions.
func (s *Suggestions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.next)
}

// Replace swaps in the contents of other.
func (s *Suggestions) Replace(other *Suggestions) {
	next := make(map[string][]string)
	if other != nil {
		other.mu.RLock()
		for k, v := range other.next {
			next[k] = clone(v)
		}
		other.mu.RUnlock()
	}
	s.mu.Lock()
	s.next = next
	s.mu.Unlock()
}
