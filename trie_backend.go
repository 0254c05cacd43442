package strokes

import (
	"github.com/derekparker/trie"
)

// trieIndex keeps codes in a pointer-based prefix trie for prefix tests and
// candidate lists in a map for exact lookups.
type trieIndex struct {
	frozen bool
	prefix *trie.Trie
	chars  map[string][]string
	nodes  int
}

func newTrieIndex() *trieIndex {
	return &trieIndex{
		prefix: trie.New(),
		chars:  make(map[string][]string),
	}
}

func (ti *trieIndex) Add(code, character string) bool {
	if ti.frozen || code == "" {
		return false
	}
	list, known := ti.chars[code]
	if !known {
		ti.prefix.Add(code, nil)
		ti.nodes += len([]rune(code))
	}
	ti.chars[code] = append(list, character)
	return true
}

func (ti *trieIndex) Freeze() {
	ti.frozen = true
}

func (ti *trieIndex) Candidates(code string) []string {
	if !ti.frozen {
		return nil
	}
	list := ti.chars[code]
	return list[:len(list):len(list)]
}

func (ti *trieIndex) HasPrefix(prefix string) bool {
	if !ti.frozen {
		return false
	}
	if prefix == "" {
		return len(ti.chars) > 0
	}
	return ti.prefix.HasKeysWithPrefix(prefix)
}

func (ti *trieIndex) Stats() IndexStats {
	return IndexStats{
		Backend:    string(IndexTrie),
		Codes:      len(ti.chars),
		UsedSlots:  ti.nodes,
		TotalSlots: ti.nodes,
	}
}
