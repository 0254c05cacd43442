// strokes queries stroke tables and runs an interactive composition demo.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/strokes"
	"github.com/npillmayer/strokes/config"
	"github.com/npillmayer/strokes/engine"
)

var (
	configPath = flag.String("config", "", "path to config file")
	dictPath   = flag.String("dict", "", "stroke table, overrides the configured one")
	indexName  = flag.String("index", "", "code index backend: dat or trie")
	keymapName = flag.String("keymap", "", "keymap: numpad or letters")
	trace      = flag.Bool("trace", false, "enable tracing")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	arg := func(what string) string {
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "Usage: strokes %s <%s>\n", cmd, what)
			os.Exit(1)
		}
		return flag.Arg(1)
	}

	switch cmd {
	case "lookup":
		cmdLookup(arg("code"))
	case "pattern":
		cmdPattern(arg("pattern"))
	case "reverse":
		cmdReverse(arg("character"))
	case "stats":
		cmdStats()
	case "demo":
		cmdDemo()
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `strokes - stroke input method tool

Usage: strokes [options] <command> [args]

Commands:
  lookup <code>        Characters for exactly this stroke code
  pattern <pattern>    Characters for codes starting with pattern (＊ matches one stroke)
  reverse <character>  Stroke codes producing a character
  stats                Table statistics
  demo                 Interactive composition in the terminal
  help                 Show this help message

Stroke codes may be written with the glyphs 一丨丿丶フ＊ or the digits
1 to 5 and 6 for the joker.

Options:
  -config <path>   Path to config file (TOML, YAML or JSON)
  -dict <path>     Stroke table (TSV or JSON)
  -index <name>    Code index backend: dat or trie
  -keymap <name>   Keymap: numpad or letters
  -trace           Enable tracing`)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dictPath != "" {
		cfg.Dictionary.Path = *dictPath
		cfg.Dictionary.Format = ""
	}
	if *indexName != "" {
		cfg.Dictionary.Index = *indexName
	}
	if *keymapName != "" {
		cfg.Keymap = *keymapName
	}
	if *trace {
		cfg.Trace.Enabled = true
	}
	return cfg
}

func openEngine(cfg *config.Config, opts ...engine.Option) *engine.Engine {
	e, err := engine.Open(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if degraded, err := e.Degraded(); degraded {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return e
}

// normalizeCode accepts the digit shorthand used by stroke-count dictionaries.
// 6, * and ＊ stand for the dictionary's joker.
func normalizeCode(s string, joker strokes.Symbol) string {
	return strings.NewReplacer(
		"1", strokes.Horizontal.String(),
		"2", strokes.Vertical.String(),
		"3", strokes.PositiveDiagonal.String(),
		"4", strokes.NegativeDiagonal.String(),
		"5", strokes.Compound.String(),
		"6", joker.String(),
		"*", joker.String(),
		strokes.Wildcard.String(), joker.String(),
	).Replace(s)
}

func printList(items []string) {
	if len(items) == 0 {
		fmt.Println("(none)")
		return
	}
	fmt.Println(strings.Join(items, " "))
}

func cmdLookup(code string) {
	e := openEngine(loadConfig())
	defer e.Close()
	printList(e.Dictionary().Lookup(normalizeCode(code, e.Dictionary().Wildcard())))
}

func cmdPattern(pattern string) {
	e := openEngine(loadConfig())
	defer e.Close()
	printList(e.Dictionary().LookupPattern(normalizeCode(pattern, e.Dictionary().Wildcard())))
}

func cmdReverse(character string) {
	e := openEngine(loadConfig())
	defer e.Close()
	printList(e.Dictionary().ReverseLookup(character))
}

func cmdStats() {
	cfg := loadConfig()
	e := openEngine(cfg)
	defer e.Close()
	st := e.Stats()
	fmt.Println("=== strokes Statistics ===")
	fmt.Println()
	fmt.Printf("Table:        %s (%s)\n", st.Table, cfg.Dictionary.Path)
	fmt.Printf("Entries:      %d\n", st.Entries)
	fmt.Printf("Skipped:      %d\n", st.Skipped)
	fmt.Printf("Codes:        %d\n", st.Index.Codes)
	fmt.Printf("Index:        %s, %d of %d slots used (%.1f%%)\n",
		st.Index.Backend, st.Index.UsedSlots, st.Index.TotalSlots, 100*st.Index.FillRatio())
	fmt.Printf("Suggestions:  %d characters\n", st.Suggestions)
	fmt.Printf("Punctuation:  %d symbols\n", st.Punctuation)
	fmt.Printf("Keymap:       %s\n", st.Keymap)
	if st.Degraded {
		fmt.Println("Status:       DEGRADED (no stroke table)")
	}
}
