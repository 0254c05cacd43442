package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/strokes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "numpad", cfg.Keymap)
	assert.Equal(t, FormatTSV, cfg.DictionaryFormat())
	assert.Equal(t, FormatTSV, cfg.SuggestionsFormat())
	assert.Equal(t, strokes.Wildcard, cfg.WildcardSymbol())
	assert.NoError(t, cfg.Validate())
}

func TestLoadNonexistent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "strokes.toml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "strokeData.txt"), cfg.Dictionary.Path)
	assert.Equal(t, filepath.Join(dir, "punctuationData.txt"), cfg.Punctuation.Path)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "strokeData.txt", cfg.Dictionary.Path)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "strokes.toml", `
enabled = false
keymap = "letters"
watch = true

[dictionary]
path = "data/strokeData.json"
index = "trie"
wildcard = "?"

[suggestions]
path = "/abs/suggestions.txt"

[trace]
enabled = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "letters", cfg.Keymap)
	assert.True(t, cfg.Watch)
	assert.True(t, cfg.Trace.Enabled)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "data", "strokeData.json"), cfg.Dictionary.Path)
	assert.Equal(t, FormatJSON, cfg.DictionaryFormat())
	assert.Equal(t, "/abs/suggestions.txt", cfg.Suggestions.Path)
	assert.Equal(t, strokes.Symbol('?'), cfg.WildcardSymbol())
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "strokes.yaml", `
keymap: letters
dictionary:
  path: strokes.tsv
  format: tsv
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled, "unset fields keep their defaults")
	assert.Equal(t, "letters", cfg.Keymap)
	assert.Equal(t, FormatTSV, cfg.DictionaryFormat())
	assert.Equal(t, string(strokes.IndexDAT), cfg.Dictionary.Index)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "strokes.json", `{"keymap": "numpad", "suggestions": {"path": "s.json"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.SuggestionsFormat())
}

func TestLoadInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"bad.toml": "keymap = ",
		"bad.yaml": "keymap: [unclosed",
		"bad.json": `{"keymap": }`,
	} {
		_, err := Load(writeConfig(t, name, content))
		assert.Error(t, err, name)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STROKES_KEYMAP", "letters")
	t.Setenv("STROKES_TRACE", "true")
	t.Setenv("STROKES_DICTIONARY", "/data/strokes.txt")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "letters", cfg.Keymap)
	assert.True(t, cfg.Trace.Enabled)
	assert.Equal(t, "/data/strokes.txt", cfg.Dictionary.Path)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keymap = "dvorak"
	cfg.Dictionary.Format = "xml"
	cfg.Dictionary.Index = "btree"
	cfg.Dictionary.Wildcard = "**"
	cfg.Dictionary.Path = ""

	err := cfg.Validate()
	require.Error(t, err)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, len(verrs))
	for i, e := range verrs {
		fields[i] = e.Field
	}
	assert.Equal(t, []string{
		"keymap", "dictionary.path", "dictionary.format", "dictionary.index", "dictionary.wildcard",
	}, fields)
}
