package strokes

import (
	"math/rand/v2"
	"sync"
	"unicode/utf8"
)

// Dictionary answers stroke queries against a Table and memoizes the
// expensive ones.
//
// The table itself is immutable; the dictionary owns all mutable state: the
// pattern cache (pattern → characters) and the reverse cache
// (character → codes). Cache entries are never evicted. Reload swaps the
// table and clears both caches, so identical queries answer identically for
// the lifetime of one table.
//
// The composition core drives a dictionary from a single goroutine. A mutex
// still serializes lookups against Reload, which may be called from a file
// watcher.
type Dictionary struct {
	mu       sync.Mutex
	table    *Table
	wildcard Symbol
	pick     func(n int) int
	tracer   Tracer
	patterns map[string][]string
	reverse  map[string][]string
}

// DictionaryOption configures NewDictionary.
type DictionaryOption func(*Dictionary)

// WithWildcard sets the joker symbol of patterns. Default is Wildcard (＊).
func WithWildcard(w Symbol) DictionaryOption {
	return func(d *Dictionary) { d.wildcard = w }
}

// WithPicker replaces the random choice of PickAnyCodeFor. pick(n) must
// return a value in [0, n).
func WithPicker(pick func(n int) int) DictionaryOption {
	return func(d *Dictionary) {
		if pick != nil {
			d.pick = pick
		}
	}
}

// WithTracer sets the tracer for lookup diagnostics.
func WithTracer(t Tracer) DictionaryOption {
	return func(d *Dictionary) { d.tracer = TracerOrNop(t) }
}

// NewDictionary wraps table. A nil table behaves like EmptyTable.
func NewDictionary(table *Table, opts ...DictionaryOption) *Dictionary {
	d := &Dictionary{
		wildcard: Wildcard,
		pick:     rand.IntN,
		tracer:   NoTrace,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.install(table)
	return d
}

func (d *Dictionary) install(table *Table) {
	if table == nil {
		table = EmptyTable()
	}
	d.table = table
	d.patterns = make(map[string][]string)
	d.reverse = make(map[string][]string)
}

// Reload replaces the table and clears all caches.
// A nil table puts the dictionary into degraded mode: every lookup is empty.
func (d *Dictionary) Reload(table *Table) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.install(table)
	d.tracer.Infof("dictionary reloaded: %s, %d entries", d.table.Identifier, d.table.Len())
}

// Table returns the current table.
func (d *Dictionary) Table() *Table {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.table
}

// Len returns the number of entries of the current table.
func (d *Dictionary) Len() int {
	return d.Table().Len()
}

// Wildcard returns the joker symbol of patterns.
func (d *Dictionary) Wildcard() Symbol {
	return d.wildcard
}

// Lookup returns the characters stored for exactly this code.
func (d *Dictionary) Lookup(code string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.table.Lookup(code)
	d.tracer.Debugf("lookup code=%s results=%d", code, len(out))
	return out
}

// LookupPattern returns the characters of all entries whose code starts
// with pattern, the joker matching exactly one symbol. See Table.MatchPattern.
// Results are memoized by pattern.
func (d *Dictionary) LookupPattern(pattern string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pattern == "" {
		return []string{}
	}
	if cached, ok := d.patterns[pattern]; ok {
		d.tracer.Debugf("lookup pattern=%s (cached) results=%d", pattern, len(cached))
		return clone(cached)
	}
	out := d.table.MatchPattern(pattern, d.wildcard)
	d.patterns[pattern] = out
	d.tracer.Debugf("lookup pattern=%s results=%d scanned=%d", pattern, len(out), d.table.Len())
	return clone(out)
}

// ReverseLookup returns all codes producing character, in source order.
// Results are memoized by character.
func (d *Dictionary) ReverseLookup(character string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return clone(d.reverseLocked(character))
}

func (d *Dictionary) reverseLocked(character string) []string {
	if cached, ok := d.reverse[character]; ok {
		d.tracer.Debugf("reverse lookup %s (cached) results=%d", character, len(cached))
		return cached
	}
	codes := d.table.CodesFor(character)
	d.reverse[character] = codes
	d.tracer.Debugf("reverse lookup %s results=%d", character, len(codes))
	return codes
}

// PickAnyCodeFor returns one of the codes producing character, or "" if there
// is none. Which one is picked is deliberately left open: there is no
// canonical stroke order among alternatives.
func (d *Dictionary) PickAnyCodeFor(character string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	codes := d.reverseLocked(character)
	if len(codes) == 0 {
		return ""
	}
	i := d.pick(len(codes))
	if i < 0 || i >= len(codes) {
		i = 0
	}
	return codes[i]
}

// CacheSizes reports the number of memoized patterns and characters.
func (d *Dictionary) CacheSizes() (patterns, characters int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.patterns), len(d.reverse)
}

// LastCharacter returns the trailing character of text, or "" for empty text.
func LastCharacter(text string) string {
	r, size := utf8.DecodeLastRuneInString(text)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return ""
	}
	return text[len(text)-size:]
}

func clone(s []string) []string {
	return append([]string{}, s...)
}
