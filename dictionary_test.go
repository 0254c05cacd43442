package strokes

import (
	"reflect"
	"testing"
)

func TestDictionaryDeterminism(t *testing.T) {
	dict := NewDictionary(mustLoadTable(t, IndexDAT, "ab", "X", "abc", "Y", "ac", "Z"), WithWildcard('*'))
	first := dict.LookupPattern("a*")
	for range 3 {
		if again := dict.LookupPattern("a*"); !reflect.DeepEqual(first, again) {
			t.Fatalf("pattern results differ between calls: %v vs %v", first, again)
		}
	}
	if patterns, _ := dict.CacheSizes(); patterns != 1 {
		t.Fatalf("expected one memoized pattern, got %d", patterns)
	}
	if !reflect.DeepEqual(first, []string{"X", "Y", "Z"}) {
		t.Fatalf("pattern a*: got %v", first)
	}
}

func TestDictionaryResultsAreCopies(t *testing.T) {
	dict := NewDictionary(mustLoadTable(t, IndexDAT, "ab", "X"), WithWildcard('*'))
	got := dict.LookupPattern("a")
	got[0] = "mutated"
	if again := dict.LookupPattern("a"); again[0] != "X" {
		t.Fatalf("cache was modified through a result: %v", again)
	}
}

func TestDictionaryReverseLookup(t *testing.T) {
	dict := NewDictionary(mustLoadTable(t, IndexDAT, "丿一", "人", "一丨", "十", "丿丶", "人"))
	if got := dict.ReverseLookup("人"); !reflect.DeepEqual(got, []string{"丿一", "丿丶"}) {
		t.Fatalf("reverse lookup 人: got %v", got)
	}
	if _, chars := dict.CacheSizes(); chars != 1 {
		t.Fatalf("expected one memoized character, got %d", chars)
	}
}

func TestDictionaryPickAnyCodeFor(t *testing.T) {
	table := mustLoadTable(t, IndexDAT, "丿一", "人", "丿丶", "人")
	dict := NewDictionary(table, WithPicker(func(n int) int { return n - 1 }))
	if got := dict.PickAnyCodeFor("人"); got != "丿丶" {
		t.Fatalf("expected picker to choose the last code, got %q", got)
	}
	if got := dict.PickAnyCodeFor("大"); got != "" {
		t.Fatalf("expected no code for absent character, got %q", got)
	}
	random := NewDictionary(table)
	for range 10 {
		if got := random.PickAnyCodeFor("人"); got != "丿一" && got != "丿丶" {
			t.Fatalf("picked a code not producing 人: %q", got)
		}
	}
}

func TestDictionaryReloadClearsCaches(t *testing.T) {
	dict := NewDictionary(mustLoadTable(t, IndexDAT, "ab", "X"), WithWildcard('*'))
	if got := dict.LookupPattern("a"); !reflect.DeepEqual(got, []string{"X"}) {
		t.Fatalf("pattern a: got %v", got)
	}
	dict.ReverseLookup("X")
	dict.Reload(mustLoadTable(t, IndexTrie, "ab", "Y"))
	if patterns, chars := dict.CacheSizes(); patterns != 0 || chars != 0 {
		t.Fatalf("caches not cleared: %d/%d", patterns, chars)
	}
	if got := dict.LookupPattern("a"); !reflect.DeepEqual(got, []string{"Y"}) {
		t.Fatalf("pattern a after reload: got %v", got)
	}
}

func TestDictionaryDegradedMode(t *testing.T) {
	dict := NewDictionary(nil)
	if dict.Len() != 0 {
		t.Fatalf("expected empty dictionary")
	}
	for _, q := range []string{"一", "＊", "一＊丨"} {
		if got := dict.LookupPattern(q); got == nil || len(got) != 0 {
			t.Fatalf("pattern %s in degraded mode: %#v", q, got)
		}
		if got := dict.Lookup(q); got == nil || len(got) != 0 {
			t.Fatalf("lookup %s in degraded mode: %#v", q, got)
		}
	}
	if got := dict.LookupPattern(""); len(got) != 0 {
		t.Fatalf("empty pattern must not match, got %v", got)
	}
}

func TestLastCharacter(t *testing.T) {
	tests := []struct{ text, want string }{
		{"字", "字"},
		{"中文", "文"},
		{"", ""},
		{"a", "a"},
	}
	for _, tt := range tests {
		if got := LastCharacter(tt.text); got != tt.want {
			t.Fatalf("LastCharacter(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCodeEditing(t *testing.T) {
	var c Code
	c = c.Push(Horizontal).Push(Vertical)
	if c.String() != "一丨" {
		t.Fatalf("unexpected code %q", c.String())
	}
	c = c.Pop().Pop().Pop()
	if len(c) != 0 {
		t.Fatalf("expected empty code, got %q", c.String())
	}
	if got := ParseCode("丿＊"); len(got) != 2 || got[1] != Wildcard || !got[0].IsStroke() || got[1].IsStroke() {
		t.Fatalf("unexpected parse result %v", got)
	}
}
