package strokes

import "fmt"

// IndexBackend selects the data structure behind a table's code index.
type IndexBackend string

const (
	// IndexDAT is a frozen double-array trie (the default).
	IndexDAT IndexBackend = "dat"
	// IndexTrie is a pointer-based prefix trie.
	IndexTrie IndexBackend = "trie"
)

// IndexStats reports density metrics for a code index.
type IndexStats struct {
	Backend    string
	Codes      int // distinct codes
	UsedSlots  int
	TotalSlots int
}

// FillRatio is UsedSlots/TotalSlots, or 0 for an empty index.
func (s IndexStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// codeIndex is the internal backend abstraction for code→candidates storage.
//
// An index is mutable until Freeze is called and read-only afterwards.
// Add appends character to the candidate list of code, keeping the order
// of calls. Candidates and HasPrefix are valid only after Freeze.
type codeIndex interface {
	Add(code, character string) bool
	Freeze()
	Candidates(code string) []string
	HasPrefix(prefix string) bool
	Stats() IndexStats
}

func newCodeIndex(backend IndexBackend) (codeIndex, error) {
	switch backend {
	case IndexDAT, "":
		return newDATIndex(), nil
	case IndexTrie:
		return newTrieIndex(), nil
	}
	return nil, fmt.Errorf("unknown index backend %q", backend)
}
