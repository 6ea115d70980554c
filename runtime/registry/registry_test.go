package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatscript-lang/chatscript/core/script"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&script.CommandSpec{Name: "echo", MaxArgs: 1}))

	spec, ok := r.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", spec.Name)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	err := r.Register(&script.CommandSpec{})
	require.Error(t, err)
}

func TestBuiltinCommands(t *testing.T) {
	r := Builtin()
	for _, name := range []string{"let", "import", "getvar", "getglobalvar", "return"} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, "builtin %q should be registered", name)
	}
	assert.Equal(t, []string{"getglobalvar", "getvar", "import", "let", "return"}, r.Names())
}

func TestLoadDefinitions(t *testing.T) {
	doc := `[
		{"name": "send", "splitArgs": true, "maxArgs": -1},
		{"name": "pick", "splitArgs": true, "maxArgs": -1, "splitCap": 1},
		{"name": "raw", "rawQuotes": true, "maxArgs": 1, "minArgs": 1}
	]`

	specs, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.True(t, specs[0].SplitArgs)
	assert.Equal(t, 1, specs[1].SplitCap)
	assert.True(t, specs[2].RawQuotes)
}

func TestLoadRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an array", `{"name": "echo"}`},
		{"missing name", `[{"maxArgs": 1}]`},
		{"bad name characters", `[{"name": "no spaces"}]`},
		{"unknown field", `[{"name": "echo", "color": "red"}]`},
		{"wrong type", `[{"name": "echo", "splitArgs": "yes"}]`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestLoadDefinitionsIntoRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "send", "splitArgs": true, "maxArgs": -1}]`), 0o644))

	r := Builtin()
	require.NoError(t, r.LoadDefinitions(path))

	spec, ok := r.Lookup("send")
	require.True(t, ok)
	assert.True(t, spec.SplitArgs)

	require.Error(t, r.LoadDefinitions(filepath.Join(t.TempDir(), "absent.json")))
}
