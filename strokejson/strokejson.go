// Package strokejson reads stroke and suggestion data in the JSON layout of
// the upstream character database export.
//
// Stroke data is a list of characters with alternative stroke sequences:
//
//	[{"character": "人", "strokeSequences": ["丿丶"]}]
//
// Suggestion data maps a character to a list of following characters:
//
//	{"中": ["国", "文"]}
//
// Both documents are validated against a JSON schema before use.
package strokejson

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/npillmayer/strokes"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const strokeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["character", "strokeSequences"],
    "properties": {
      "character": {"type": "string"},
      "strokeSequences": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

const suggestionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {"type": "array", "items": {"type": "string"}}
}`

var (
	strokeDocSchema     = jsonschema.MustCompileString("strokeData.schema.json", strokeSchema)
	suggestionDocSchema = jsonschema.MustCompileString("suggestionsData.schema.json", suggestionSchema)
)

type strokeRecord struct {
	Character       string   `json:"character"`
	StrokeSequences []string `json:"strokeSequences"`
}

// Reader yields (code, character) or (character, suggestion) pairs from a
// decoded document, in document order. It satisfies strokes.EntryReader and
// strokes.PairReader.
type Reader struct {
	pairs [][2]string
	index int
}

// Next returns the next pair. It returns io.EOF when exhausted.
func (r *Reader) Next() (string, string, error) {
	if r.index >= len(r.pairs) {
		return "", "", io.EOF
	}
	p := r.pairs[r.index]
	r.index++
	return p[0], p[1], nil
}

// Len returns the total number of pairs of the document.
func (r *Reader) Len() int { return len(r.pairs) }

// NewStrokeReader decodes and validates stroke data. Sequences and
// characters are trimmed; empty ones are dropped.
func NewStrokeReader(reader io.Reader) (*Reader, error) {
	data, err := decodeValid(reader, strokeDocSchema)
	if err != nil {
		return nil, err
	}
	var records []strokeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode stroke data: %w", err)
	}
	r := &Reader{}
	for _, rec := range records {
		character := strings.TrimSpace(rec.Character)
		for _, seq := range rec.StrokeSequences {
			if code := strings.TrimSpace(seq); code != "" && character != "" {
				r.pairs = append(r.pairs, [2]string{code, character})
			}
		}
	}
	return r, nil
}

// NewSuggestionReader decodes and validates suggestion data. Characters are
// visited in code point order, their suggestions in document order.
func NewSuggestionReader(reader io.Reader) (*Reader, error) {
	data, err := decodeValid(reader, suggestionDocSchema)
	if err != nil {
		return nil, err
	}
	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode suggestion data: %w", err)
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := &Reader{}
	for _, k := range keys {
		for _, s := range doc[k] {
			r.pairs = append(r.pairs, [2]string{k, s})
		}
	}
	return r, nil
}

func decodeValid(reader io.Reader, schema *jsonschema.Schema) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	return data, nil
}

// LoadTable parses stroke data in JSON format into a table.
func LoadTable(name string, reader io.Reader, opts ...strokes.TableOption) (*strokes.Table, error) {
	r, err := NewStrokeReader(reader)
	if err != nil {
		return nil, fmt.Errorf("load stroke table %s: %w", name, err)
	}
	return strokes.LoadTable(name, r, opts...)
}

// LoadSuggestions parses suggestion data in JSON format.
func LoadSuggestions(reader io.Reader) (*strokes.Suggestions, error) {
	r, err := NewSuggestionReader(reader)
	if err != nil {
		return nil, fmt.Errorf("load suggestions: %w", err)
	}
	return strokes.LoadSuggestions(r)
}
