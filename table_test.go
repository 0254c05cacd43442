package strokes

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

type sliceEntryReader struct {
	entries []Entry
	index   int
}

func (r *sliceEntryReader) Next() (string, string, error) {
	if r.index >= len(r.entries) {
		return "", "", io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry.Code, entry.Character, nil
}

type failingReader struct{}

func (failingReader) Next() (string, string, error) {
	return "", "", errors.New("disk on fire")
}

func entries(pairs ...string) *sliceEntryReader {
	r := &sliceEntryReader{}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.entries = append(r.entries, Entry{Code: pairs[i], Character: pairs[i+1]})
	}
	return r
}

func mustLoadTable(t *testing.T, backend IndexBackend, pairs ...string) *Table {
	t.Helper()
	table, err := LoadTable("test", entries(pairs...), WithIndex(backend))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

var backends = []IndexBackend{IndexDAT, IndexTrie}

func TestTableLookupExact(t *testing.T) {
	for _, backend := range backends {
		table := mustLoadTable(t, backend, "一丨", "十", "一丨", "干", "一丨丨", "卄")
		if got := table.Lookup("一丨"); !reflect.DeepEqual(got, []string{"十", "干"}) {
			t.Fatalf("[%s] lookup 一丨: got %v", backend, got)
		}
		if got := table.Lookup("一"); len(got) != 0 {
			t.Fatalf("[%s] prefix must not match exactly, got %v", backend, got)
		}
		if got := table.Lookup("丶"); got == nil || len(got) != 0 {
			t.Fatalf("[%s] expected empty non-nil result, got %#v", backend, got)
		}
	}
}

func TestTablePrefixLaw(t *testing.T) {
	for _, backend := range backends {
		table := mustLoadTable(t, backend, "ab", "X", "abc", "Y", "ac", "Z")
		if got := table.MatchPattern("ab", '*'); !reflect.DeepEqual(got, []string{"X", "Y"}) {
			t.Fatalf("[%s] pattern ab: got %v", backend, got)
		}
		if got := table.MatchPattern("ac", '*'); !reflect.DeepEqual(got, []string{"Z"}) {
			t.Fatalf("[%s] pattern ac: got %v", backend, got)
		}
		if got := table.MatchPattern("b", '*'); len(got) != 0 {
			t.Fatalf("[%s] pattern b is not anchored: %v", backend, got)
		}
	}
}

func TestTableWildcardIsOneSymbol(t *testing.T) {
	for _, backend := range backends {
		table := mustLoadTable(t, backend, "ab", "X", "azc", "Y", "a", "Z")
		if got := table.MatchPattern("a*", '*'); !reflect.DeepEqual(got, []string{"X", "Y"}) {
			t.Fatalf("[%s] pattern a*: got %v", backend, got)
		}
		if got := table.MatchPattern("*z", '*'); !reflect.DeepEqual(got, []string{"Y"}) {
			t.Fatalf("[%s] pattern *z: got %v", backend, got)
		}
		if got := table.MatchPattern("**c", '*'); !reflect.DeepEqual(got, []string{"Y"}) {
			t.Fatalf("[%s] pattern **c: got %v", backend, got)
		}
		if got := table.MatchPattern("a**", '*'); !reflect.DeepEqual(got, []string{"Y"}) {
			t.Fatalf("[%s] pattern a**: got %v", backend, got)
		}
	}
}

func TestTableStrokeWildcard(t *testing.T) {
	table := mustLoadTable(t, IndexDAT, "一丨一", "土", "一丿一", "王", "丨一", "上")
	got := table.MatchPattern("一＊一", Wildcard)
	if !reflect.DeepEqual(got, []string{"土", "王"}) {
		t.Fatalf("pattern 一＊一: got %v", got)
	}
}

func TestTableDeduplicates(t *testing.T) {
	table := mustLoadTable(t, IndexDAT, "abd", "Q", "ab", "X", "abc", "Q", "abe", "X")
	if got := table.MatchPattern("ab", '*'); !reflect.DeepEqual(got, []string{"Q", "X"}) {
		t.Fatalf("expected first-seen order without duplicates, got %v", got)
	}
}

func TestTableCodesFor(t *testing.T) {
	table := mustLoadTable(t, IndexDAT, "丿一", "人", "一丨", "十", "丿丶", "人", "丿一", "人")
	if got := table.CodesFor("人"); !reflect.DeepEqual(got, []string{"丿一", "丿丶"}) {
		t.Fatalf("codes for 人: got %v", got)
	}
	if got := table.CodesFor("大"); len(got) != 0 {
		t.Fatalf("codes for absent character: got %v", got)
	}
}

func TestTableSkipsUnusableEntries(t *testing.T) {
	table, err := LoadTable("skips", entries("", "X", "ab", "", "a\U0001F600", "Y", "ab", "Z"))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 1 || table.Skipped() != 3 {
		t.Fatalf("expected 1 entry and 3 skipped, got %d/%d", table.Len(), table.Skipped())
	}
}

func TestTableCandidateListOverflowIsSkipped(t *testing.T) {
	r := &sliceEntryReader{}
	for i := 0; i <= maxCandidates; i++ {
		r.entries = append(r.entries, Entry{Code: "一", Character: "X"})
	}
	table, err := LoadTable("overflow", r)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != maxCandidates || table.Skipped() != 1 {
		t.Fatalf("expected %d entries and 1 skipped, got %d/%d", maxCandidates, table.Len(), table.Skipped())
	}
	if got := len(table.Lookup("一")); got != maxCandidates {
		t.Fatalf("expected %d candidates, got %d", maxCandidates, got)
	}
}

func TestTableName(t *testing.T) {
	table := mustLoadTable(t, IndexDAT, "ab", "X")
	if table.Name() != "test" || table.Identifier != "strokes: test" {
		t.Fatalf("unexpected name %q / identifier %q", table.Name(), table.Identifier)
	}
	if EmptyTable().Name() != "empty" {
		t.Fatalf("unexpected name of the empty table: %q", EmptyTable().Name())
	}
}

func TestTableEmptySource(t *testing.T) {
	_, err := LoadTable("empty", entries())
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
	if _, err = LoadTable("broken", failingReader{}); err == nil {
		t.Fatalf("expected reader error to surface")
	}
	if _, err = LoadTable("bad", entries("a", "b"), WithIndex("btree")); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}

func TestEmptyTableAnswersNothing(t *testing.T) {
	table := EmptyTable()
	if len(table.Lookup("一")) != 0 || len(table.MatchPattern("一", Wildcard)) != 0 ||
		len(table.MatchPattern("＊", Wildcard)) != 0 || len(table.CodesFor("一")) != 0 {
		t.Fatalf("empty table must not produce results")
	}
}

func TestIndexStats(t *testing.T) {
	for _, backend := range backends {
		table := mustLoadTable(t, backend, "ab", "X", "abc", "Y", "ab", "Z")
		stats := table.Stats()
		if stats.Backend != string(backend) {
			t.Fatalf("expected %s backend, got %s", backend, stats.Backend)
		}
		if stats.Codes != 2 {
			t.Fatalf("[%s] expected 2 distinct codes, got %d", backend, stats.Codes)
		}
		if fill := stats.FillRatio(); fill <= 0 || fill > 1 {
			t.Fatalf("[%s] expected fill ratio in (0,1], got %f", backend, fill)
		}
	}
}
