/*
Package tsv reads stroke tables, suggestion tables and punctuation tables
from tab-separated text.

Each line holds one pair:

	一丨丨	卄
	丿丶	人

Input is UTF-8, optionally starting with a byte-order mark. Lines which are
empty or start with '#' or ';' are comments. Lines without a tab, or with an
empty key or value, are skipped. Everything after the first tab is the value.
Carriage returns at line ends are stripped.
*/
package tsv

import (
	"bufio"
	"io"
	"strings"

	"github.com/npillmayer/strokes"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader streams (key, value) pairs from tab-separated source text.
// It satisfies strokes.EntryReader and strokes.PairReader.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	pairs   int
	skipped int
}

// NewReader creates a reader. A leading UTF-8 byte-order mark is dropped.
func NewReader(reader io.Reader) *Reader {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return &Reader{
		scanner: bufio.NewScanner(transform.NewReader(reader, decoder)),
	}
}

// Next returns the next pair as (key, value).
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, string, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSuffix(r.scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, found := strings.Cut(line, "\t")
		if !found || key == "" || value == "" {
			r.skipped++
			continue
		}
		r.pairs++
		return key, value, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", "", err
	}
	return "", "", io.EOF
}

// Line returns the number of lines read so far.
func (r *Reader) Line() int { return r.line }

// Pairs returns the number of pairs delivered so far.
func (r *Reader) Pairs() int { return r.pairs }

// Skipped returns the number of malformed lines skipped so far.
func (r *Reader) Skipped() int { return r.skipped }

// LoadTable parses a stroke table in TSV format.
//
// Example usage:
//
//	f, _ := os.Open("path/to/strokeData.txt")
//	defer f.Close()
//
//	table, err := tsv.LoadTable("strokeData", f)
func LoadTable(name string, reader io.Reader, opts ...strokes.TableOption) (*strokes.Table, error) {
	return strokes.LoadTable(name, NewReader(reader), opts...)
}

// LoadSuggestions parses a character→suggestion table in TSV format.
func LoadSuggestions(reader io.Reader) (*strokes.Suggestions, error) {
	return strokes.LoadSuggestions(NewReader(reader))
}

// LoadPunctuation parses a symbol→replacement table in TSV format.
func LoadPunctuation(reader io.Reader) (*strokes.Punctuation, error) {
	return strokes.LoadPunctuation(NewReader(reader))
}
