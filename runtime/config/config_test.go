package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatscript.yaml")
	doc := `
flags:
  strict_escape: true
  legacy_getvar: true
registry:
  definitions: ./commands.json
watch:
  lenient: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	flags := cfg.ParserFlags()
	assert.True(t, flags.StrictEscape)
	assert.True(t, flags.LegacyGetVar)
	assert.Equal(t, "./commands.json", cfg.Registry.Definitions)
	assert.True(t, cfg.Watch.Lenient)
}

func TestLoadFromDefaultsWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatscript.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	flags := cfg.ParserFlags()
	assert.False(t, flags.StrictEscape)
	assert.False(t, flags.LegacyGetVar)
}

func TestLoadFromRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatscript.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flags: [not: a: map"), 0o644))

	_, err := LoadFrom(path)
	require.Error(t, err)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.True(t, os.IsNotExist(err))
}
