// Package engine assembles an input method from its configuration: stroke
// dictionary, suggestion and punctuation tables, key classifier, optional
// file watching. Sessions are created from an engine and share its tables.
//
// Failing to load a data file is never fatal. An engine without a stroke
// table runs in degraded mode: keys are handled, but no candidates appear
// until a reload succeeds.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/npillmayer/strokes"
	"github.com/npillmayer/strokes/config"
	"github.com/npillmayer/strokes/keys"
	"github.com/npillmayer/strokes/reload"
	"github.com/npillmayer/strokes/session"
	"github.com/npillmayer/strokes/strokejson"
	"github.com/npillmayer/strokes/tsv"
)

// Engine holds the tables shared by all sessions.
type Engine struct {
	cfg        *config.Config
	tracer     strokes.Tracer
	dict       *strokes.Dictionary
	sugg       *strokes.Suggestions
	punct      *strokes.Punctuation
	classifier *keys.Classifier
	keymap     *keys.Keymap
	watcher    *reload.Watcher

	mu       sync.Mutex // serializes Reload
	degraded bool
	loadErr  error
}

// Option configures an engine.
type Option func(*Engine)

// WithTracer sets the tracer of the engine, its dictionary and sessions.
func WithTracer(t strokes.Tracer) Option {
	return func(e *Engine) { e.tracer = strokes.TracerOrNop(t) }
}

// WithKeymap overrides the configured keymap.
func WithKeymap(km keys.Keymap) Option {
	return func(e *Engine) { e.keymap = &km }
}

// Open creates an engine. It fails only for an invalid configuration.
// Keys bound to the joker push the configured wildcard symbol.
func Open(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, tracer: strokes.NoTrace}
	if cfg.Trace.Enabled {
		e.tracer = strokes.SchukoTracer("strokes")
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.keymap == nil {
		km, err := cfg.KeymapTable()
		if err != nil {
			return nil, err
		}
		e.keymap = &km
	}
	km := e.keymap.WithJoker(cfg.WildcardSymbol())
	e.keymap = &km
	e.punct = e.loadPunctuation()
	e.classifier = keys.NewClassifier(km, e.punct)
	table, err := e.loadTable()
	if err != nil {
		e.tracer.Errorf("engine: %v; running without stroke table", err)
		e.degraded, e.loadErr = true, err
	}
	e.dict = strokes.NewDictionary(table,
		strokes.WithWildcard(cfg.WildcardSymbol()),
		strokes.WithTracer(e.tracer))
	e.sugg = e.loadSuggestions()
	if cfg.Watch {
		e.watcher = reload.New([]string{cfg.Dictionary.Path, cfg.Suggestions.Path}, e.onChange)
		if err := e.watcher.Start(); err != nil {
			e.tracer.Errorf("engine: %v; files will not be watched", err)
			e.watcher = nil
		}
	}
	return e, nil
}

// Config returns the configuration the engine was opened with.
func (e *Engine) Config() *config.Config { return e.cfg }

// Dictionary returns the shared stroke dictionary.
func (e *Engine) Dictionary() *strokes.Dictionary { return e.dict }

// Suggestions returns the shared suggestion table.
func (e *Engine) Suggestions() *strokes.Suggestions { return e.sugg }

// Punctuation returns the punctuation table.
func (e *Engine) Punctuation() *strokes.Punctuation { return e.punct }

// Classifier returns the key classifier.
func (e *Engine) Classifier() *keys.Classifier { return e.classifier }

// Degraded reports whether the engine runs without a stroke table, and why.
func (e *Engine) Degraded() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.degraded, e.loadErr
}

// NewSession creates a composition session for one text context.
func (e *Engine) NewSession() *session.Session {
	return session.New(e.dict,
		session.WithSuggestions(e.sugg),
		session.WithClassifier(e.classifier),
		session.WithTracer(e.tracer),
		session.WithEnabled(e.cfg.Enabled))
}

// Reload reads the stroke and suggestion tables again. If the stroke table
// cannot be loaded, the current one stays in place and the error is returned.
func (e *Engine) Reload() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	table, err := e.loadTable()
	if err != nil {
		e.tracer.Errorf("engine: reload: %v", err)
		return err
	}
	e.dict.Reload(table)
	e.sugg.Replace(e.loadSuggestions())
	e.degraded, e.loadErr = false, nil
	return nil
}

func (e *Engine) onChange(changed []string) {
	e.tracer.Infof("engine: %v changed, reloading", changed)
	_ = e.Reload()
}

// Close stops file watching.
func (e *Engine) Close() error {
	if e.watcher != nil {
		return e.watcher.Close()
	}
	return nil
}

// Stats summarizes the loaded tables.
type Stats struct {
	Table       string
	Entries     int
	Skipped     int
	Index       strokes.IndexStats
	Suggestions int
	Punctuation int
	Keymap      string
	Degraded    bool
}

// Stats returns statistics of the loaded tables.
func (e *Engine) Stats() Stats {
	table := e.dict.Table()
	degraded, _ := e.Degraded()
	return Stats{
		Table:       table.Name(),
		Entries:     table.Len(),
		Skipped:     table.Skipped(),
		Index:       table.Stats(),
		Suggestions: e.sugg.Len(),
		Punctuation: e.punct.Len(),
		Keymap:      e.classifier.Keymap(),
		Degraded:    degraded,
	}
}

func (e *Engine) loadTable() (*strokes.Table, error) {
	path := e.cfg.Dictionary.Path
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stroke table: %w", err)
	}
	defer f.Close()
	opts := []strokes.TableOption{
		strokes.WithIndex(strokes.IndexBackend(e.cfg.Dictionary.Index)),
		strokes.WithTableTracer(e.tracer),
	}
	name := filepath.Base(path)
	if e.cfg.DictionaryFormat() == config.FormatJSON {
		return strokejson.LoadTable(name, f, opts...)
	}
	return tsv.LoadTable(name, f, opts...)
}

// loadSuggestions returns an empty table if the source is missing or broken.
func (e *Engine) loadSuggestions() *strokes.Suggestions {
	path := e.cfg.Suggestions.Path
	sugg, err := loadFile(path, func(r io.Reader) (*strokes.Suggestions, error) {
		if e.cfg.SuggestionsFormat() == config.FormatJSON {
			return strokejson.LoadSuggestions(r)
		}
		return tsv.LoadSuggestions(r)
	})
	switch {
	case errors.Is(err, os.ErrNotExist):
		e.tracer.Infof("engine: no suggestions at %s", path)
	case err != nil:
		e.tracer.Errorf("engine: %v", err)
	default:
		e.tracer.Infof("engine: suggestions for %d characters", sugg.Len())
		return sugg
	}
	return strokes.NewSuggestions()
}

// loadPunctuation returns the built-in table if the source is missing or
// broken.
func (e *Engine) loadPunctuation() *strokes.Punctuation {
	path := e.cfg.Punctuation.Path
	punct, err := loadFile(path, tsv.LoadPunctuation)
	switch {
	case errors.Is(err, os.ErrNotExist):
		e.tracer.Debugf("engine: no punctuation table at %s, using built-in", path)
	case err != nil:
		e.tracer.Errorf("engine: %v; using built-in punctuation", err)
	case punct.Len() > 0:
		return punct
	}
	return strokes.DefaultPunctuation()
}

func loadFile[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	var zero T
	if path == "" {
		return zero, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return load(f)
}
