package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatscript-lang/chatscript/core/script"
	"github.com/chatscript-lang/chatscript/runtime/parser"
)

type stubRegistry map[string]*script.CommandSpec

func (m stubRegistry) Lookup(name string) (*script.CommandSpec, bool) {
	spec, ok := m[name]
	return spec, ok
}

func (m stubRegistry) Names() []string { return nil }

func writeScript(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestWatcher(t *testing.T, content string) *Watcher {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.cs")
	writeScript(t, path, content)

	reg := stubRegistry{"echo": {Name: "echo", MaxArgs: 1}}
	w, err := New(path, parser.WithRegistry(reg))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestInitialParse(t *testing.T) {
	w := newTestWatcher(t, "/echo hello")

	res, err := w.Last()
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Root.Body, 1)
	assert.Equal(t, "echo", res.Root.Body[0].Name)
}

func TestBrokenEditKeepsLastGoodResult(t *testing.T) {
	w := newTestWatcher(t, "/echo hello")

	good, err := w.Last()
	require.NoError(t, err)

	// Simulate a save mid-edit with an unknown command.
	writeScript(t, w.path, "/ech hello")
	w.reload()

	res, err := w.Last()
	require.Error(t, err)
	assert.Same(t, good, res, "a failed parse must not evict the last good result")

	// A later valid save clears the error.
	writeScript(t, w.path, "/echo fixed")
	w.reload()

	res, err = w.Last()
	require.NoError(t, err)
	assert.NotSame(t, good, res)
	assert.Equal(t, "/echo fixed", res.Source)
}

func TestMissingFileReportsError(t *testing.T) {
	w := newTestWatcher(t, "/echo hello")

	require.NoError(t, os.Remove(w.path))
	w.reload()

	_, err := w.Last()
	require.Error(t, err)
}

func TestUpdatesDropStaleEntries(t *testing.T) {
	w := newTestWatcher(t, "/echo one")

	// Two reloads without a consumer: the buffer keeps only the newest.
	writeScript(t, w.path, "/echo two")
	w.reload()
	writeScript(t, w.path, "/echo three")
	w.reload()

	select {
	case u := <-w.Updates():
		require.NoError(t, u.Err)
		assert.Equal(t, "/echo three", u.Result.Source)
	default:
		t.Fatal("an update should be pending")
	}
}
