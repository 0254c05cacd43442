package strokes

import (
	"errors"
	"fmt"
	"io"
)

// ErrEmptyTable is returned by LoadTable if the source yields no usable entry.
var ErrEmptyTable = errors.New("stroke table is empty")

// Entry is one dictionary line: an input code and the character it produces.
type Entry struct {
	Code      string
	Character string
}

// EntryReader yields dictionary entries one-by-one, in source order.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (code string, character string, err error)
}

// Table is a loaded, immutable stroke table.
//
// A table contains:
//   - all entries in source order (for scans that must respect it)
//   - a code index (trie backend + candidate lists) for exact and prefix tests.
//
// A Table is safe for concurrent reads.
type Table struct {
	entries    []Entry
	index      codeIndex
	skipped    int
	name       string
	Identifier string // Identifies the table
}

type tableOptions struct {
	backend IndexBackend
	tracer  Tracer
}

// TableOption configures LoadTable.
type TableOption func(*tableOptions)

// WithIndex selects the code index backend.
func WithIndex(backend IndexBackend) TableOption {
	return func(o *tableOptions) { o.backend = backend }
}

// WithTableTracer sets the tracer receiving load statistics.
func WithTableTracer(t Tracer) TableOption {
	return func(o *tableOptions) { o.tracer = TracerOrNop(t) }
}

// LoadTable compiles entries from a streaming, format-agnostic source.
//
// File format parsing is intentionally outside the base package. Use adapters
// like package tsv to parse concrete formats and feed this API.
func LoadTable(name string, reader EntryReader, opts ...TableOption) (*Table, error) {
	o := tableOptions{backend: IndexDAT, tracer: NoTrace}
	for _, opt := range opts {
		opt(&o)
	}
	index, err := newCodeIndex(o.backend)
	if err != nil {
		return nil, err
	}
	table := &Table{
		entries:    make([]Entry, 0, 1024),
		index:      index,
		name:       name,
		Identifier: fmt.Sprintf("strokes: %s", name),
	}
	for {
		code, character, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load stroke table %s: %w", name, err)
		}
		if code == "" || character == "" || !table.index.Add(code, character) {
			table.skipped++
			continue
		}
		table.entries = append(table.entries, Entry{Code: code, Character: character})
	}
	table.index.Freeze()
	stats := table.index.Stats()
	o.tracer.Infof("stroke table %s: entries=%d skipped=%d codes=%d backend=%s fill=%.2f",
		name, len(table.entries), table.skipped, stats.Codes, stats.Backend, stats.FillRatio())
	if len(table.entries) == 0 {
		return nil, fmt.Errorf("load stroke table %s: %w", name, ErrEmptyTable)
	}
	return table, nil
}

// EmptyTable returns a table without entries. All lookups on it yield nothing.
func EmptyTable() *Table {
	index := newDATIndex()
	index.Freeze()
	return &Table{index: index, name: "empty", Identifier: "strokes: empty"}
}

// Name returns the name the table was loaded under.
func (t *Table) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Skipped returns the number of entries rejected during load.
func (t *Table) Skipped() int {
	if t == nil {
		return 0
	}
	return t.skipped
}

// Entries returns a copy of all entries in source order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return append([]Entry(nil), t.entries...)
}

// Stats reports metrics of the code index.
func (t *Table) Stats() IndexStats {
	if t == nil || t.index == nil {
		return IndexStats{}
	}
	return t.index.Stats()
}

// Lookup returns the characters stored for exactly this code, in source order.
// The result is empty if the code is absent.
func (t *Table) Lookup(code string) []string {
	if t == nil || t.index == nil || code == "" {
		return []string{}
	}
	return append([]string{}, t.index.Candidates(code)...)
}

// MatchPattern returns the characters of all entries whose code starts with
// pattern, where wildcard stands for exactly one arbitrary symbol.
//
// Entries are scanned in source order and every character is reported once,
// at the position of its first match. Example, with wildcard '*':
//
//	{"ab"→X, "azc"→Y, "a"→Z}, "a*" => [X, Y].
//
// MatchPattern does not memoize; see Dictionary.LookupPattern.
func (t *Table) MatchPattern(pattern string, wildcard Symbol) []string {
	out := []string{}
	if t == nil || pattern == "" {
		return out
	}
	p := compilePattern(pattern, wildcard)
	if lead := p.leadingLiteral(); lead != "" && !t.index.HasPrefix(lead) {
		return out // no code starts with the literal head
	}
	seen := make(map[string]struct{})
	for _, e := range t.entries {
		if !p.matches(e.Code) {
			continue
		}
		if _, dup := seen[e.Character]; dup {
			continue
		}
		seen[e.Character] = struct{}{}
		out = append(out, e.Character)
	}
	return out
}

// CodesFor returns every distinct code producing character, in source order.
// CodesFor does not memoize; see Dictionary.ReverseLookup.
func (t *Table) CodesFor(character string) []string {
	codes := []string{}
	if t == nil || character == "" {
		return codes
	}
	seen := make(map[string]struct{})
	for _, e := range t.entries {
		if e.Character != character {
			continue
		}
		if _, dup := seen[e.Code]; dup {
			continue
		}
		seen[e.Code] = struct{}{}
		codes = append(codes, e.Code)
	}
	return codes
}
