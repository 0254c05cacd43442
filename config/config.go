// Package config handles configuration loading and validation for the
// input method engine.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/strokes"
	"github.com/npillmayer/strokes/keys"
	"gopkg.in/yaml.v3"
)

// Source formats.
const (
	FormatTSV  = "tsv"
	FormatJSON = "json"
)

// Config holds the engine configuration.
type Config struct {
	// Enabled sets whether new sessions start enabled.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// Keymap names a built-in keymap, "numpad" or "letters".
	Keymap string `toml:"keymap" json:"keymap" yaml:"keymap"`

	Dictionary  DictionaryConfig  `toml:"dictionary" json:"dictionary" yaml:"dictionary"`
	Suggestions SourceConfig      `toml:"suggestions" json:"suggestions" yaml:"suggestions"`
	Punctuation PunctuationConfig `toml:"punctuation" json:"punctuation" yaml:"punctuation"`

	// Watch enables reloading of data files when they change on disk.
	Watch bool `toml:"watch" json:"watch" yaml:"watch"`

	Trace TraceConfig `toml:"trace" json:"trace" yaml:"trace"`
}

// DictionaryConfig locates the stroke table.
type DictionaryConfig struct {
	Path     string `toml:"path" json:"path" yaml:"path"`
	Format   string `toml:"format" json:"format" yaml:"format"` // empty: by file extension
	Index    string `toml:"index" json:"index" yaml:"index"`    // "dat" or "trie"
	Wildcard string `toml:"wildcard" json:"wildcard" yaml:"wildcard"`
}

// SourceConfig locates an auxiliary table.
type SourceConfig struct {
	Path   string `toml:"path" json:"path" yaml:"path"`
	Format string `toml:"format" json:"format" yaml:"format"`
}

// PunctuationConfig locates the punctuation table. A missing file selects
// the built-in table.
type PunctuationConfig struct {
	Path string `toml:"path" json:"path" yaml:"path"`
}

// TraceConfig controls diagnostic tracing.
type TraceConfig struct {
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Keymap:  "numpad",
		Dictionary: DictionaryConfig{
			Path:     "strokeData.txt",
			Index:    string(strokes.IndexDAT),
			Wildcard: strokes.Wildcard.String(),
		},
		Suggestions: SourceConfig{
			Path: "suggestionsData.txt",
		},
		Punctuation: PunctuationConfig{
			Path: "punctuationData.txt",
		},
	}
}

// Load reads configuration from path.
// If the file doesn't exist, returns default configuration.
// Supports TOML, JSON, and YAML formats based on file extension.
// Relative data paths are resolved against the directory of path.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err == nil {
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnvOverrides()
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	}
	return nil
}

// ApplyEnvOverrides applies STROKES_DICTIONARY, STROKES_KEYMAP and
// STROKES_TRACE from the environment.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("STROKES_DICTIONARY"); v != "" {
		c.Dictionary.Path = v
	}
	if v := os.Getenv("STROKES_KEYMAP"); v != "" {
		c.Keymap = v
	}
	if v := os.Getenv("STROKES_TRACE"); v != "" {
		c.Trace.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
}

func (c *Config) resolve(dir string) {
	for _, p := range []*string{&c.Dictionary.Path, &c.Suggestions.Path, &c.Punctuation.Path} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// DictionaryFormat returns the configured stroke table format, falling back
// to the file extension.
func (c *Config) DictionaryFormat() string {
	return formatOf(c.Dictionary.Format, c.Dictionary.Path)
}

// SuggestionsFormat returns the configured suggestion table format, falling
// back to the file extension.
func (c *Config) SuggestionsFormat() string {
	return formatOf(c.Suggestions.Format, c.Suggestions.Path)
}

func formatOf(format, path string) string {
	if format != "" {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTSV
}

// WildcardSymbol returns the joker symbol of patterns.
func (c *Config) WildcardSymbol() strokes.Symbol {
	if r, _ := utf8.DecodeRuneInString(c.Dictionary.Wildcard); r != utf8.RuneError {
		return strokes.Symbol(r)
	}
	return strokes.Wildcard
}

// KeymapTable returns the configured keymap.
func (c *Config) KeymapTable() (keys.Keymap, error) {
	return keys.KeymapByName(c.Keymap)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs ValidationErrors
	if _, err := keys.KeymapByName(c.Keymap); err != nil {
		errs = append(errs, ValidationError{Field: "keymap", Message: err.Error()})
	}
	if c.Dictionary.Path == "" {
		errs = append(errs, ValidationError{Field: "dictionary.path", Message: "is required"})
	}
	for _, f := range []struct{ field, format string }{
		{"dictionary.format", c.Dictionary.Format},
		{"suggestions.format", c.Suggestions.Format},
	} {
		if f.format != "" && f.format != FormatTSV && f.format != FormatJSON {
			errs = append(errs, ValidationError{Field: f.field, Message: fmt.Sprintf("unknown format %q", f.format)})
		}
	}
	switch strokes.IndexBackend(c.Dictionary.Index) {
	case "", strokes.IndexDAT, strokes.IndexTrie:
	default:
		errs = append(errs, ValidationError{
			Field:   "dictionary.index",
			Message: fmt.Sprintf("unknown index backend %q", c.Dictionary.Index),
		})
	}
	if utf8.RuneCountInString(c.Dictionary.Wildcard) != 1 {
		errs = append(errs, ValidationError{Field: "dictionary.wildcard", Message: "must be a single character"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
