package strokes

import (
	"fmt"
	"sort"

	"github.com/npillmayer/strokes/dat"
)

type datBuildNode struct {
	state    uint32
	chars    []string // candidates, if a code ends here
	children map[uint16]*datBuildNode
}

type datIndex struct {
	frozen   bool
	root     *datBuildNode
	codes    int
	compiled *dat.DAT
	store    *candidateStore
}

func newDATIndex() *datIndex {
	return &datIndex{
		root:     &datBuildNode{children: make(map[uint16]*datBuildNode)},
		compiled: &dat.DAT{Root: 1},
	}
}

func (di *datIndex) Add(code, character string) bool {
	if di.frozen || code == "" {
		return false
	}
	key := make([]uint16, 0, len(code))
	for _, r := range code {
		dense, ok := di.compiled.Alphabet.Add(r)
		if !ok {
			return false // simply skip codes outside the BMP
		}
		key = append(key, dense)
	}
	n := di.root
	for _, c := range key {
		child := n.children[c]
		if child == nil {
			child = &datBuildNode{children: make(map[uint16]*datBuildNode)}
			n.children[c] = child
		}
		n = child
	}
	if len(n.chars) >= maxCandidates {
		return false
	}
	if n.chars == nil {
		di.codes++
	}
	n.chars = append(n.chars, character)
	return true
}

func (di *datIndex) Freeze() {
	if di.frozen {
		return
	}
	d := di.compiled
	d.Sigma = d.Alphabet.Size()
	d.Grow(int(d.Root))
	di.root.state = d.Root
	queue := []*datBuildNode{di.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		if len(n.children) == 0 {
			continue
		}
		labels := sortedLabels(n.children)
		base := d.FindBase(labels)
		d.Grow(base + int(labels[len(labels)-1]))
		d.Base[n.state] = int32(base)
		for _, label := range labels {
			t := base + int(label)
			child := n.children[label]
			child.state = uint32(t)
			d.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
	}
	di.store = newCandidateStore(d.NStates())
	for _, n := range queue {
		if n.chars != nil {
			err := di.store.Put(int(n.state), n.chars)
			assert(err == nil, "candidate store rejected a trie state")
		}
	}
	di.root = nil
	di.frozen = true
}

func (di *datIndex) Candidates(code string) []string {
	if !di.frozen {
		return nil
	}
	state, ok := di.compiled.Walk(code)
	if !ok {
		return nil
	}
	chars, _ := di.store.Get(int(state))
	return chars
}

func (di *datIndex) HasPrefix(prefix string) bool {
	if !di.frozen {
		return false
	}
	state, ok := di.compiled.Walk(prefix)
	if !ok {
		return false
	}
	return state != di.compiled.Root || di.codes > 0
}

func sortedLabels(children map[uint16]*datBuildNode) []uint16 {
	labels := make([]uint16, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

func (di *datIndex) String() string {
	return fmt.Sprintf("DAT(states=%d,sigma=%d,frozen=%v)", di.compiled.NStates(), di.compiled.Sigma, di.frozen)
}

func (di *datIndex) Stats() IndexStats {
	stats := IndexStats{
		Backend:    string(IndexDAT),
		Codes:      di.codes,
		TotalSlots: di.compiled.NStates(),
	}
	if !di.frozen || stats.TotalSlots == 0 {
		return stats
	}
	used := 0
	for i := range di.compiled.Check {
		if i == int(di.compiled.Root) || di.compiled.Check[i] != 0 {
			used++
		}
	}
	stats.UsedSlots = used
	return stats
}
