package complete

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatscript-lang/chatscript/core/script"
	"github.com/chatscript-lang/chatscript/runtime/parser"
	"github.com/chatscript-lang/chatscript/runtime/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.Builtin()
	for _, spec := range []*script.CommandSpec{
		{Name: "echo", MaxArgs: 1},
		{Name: "send", SplitArgs: true, MaxArgs: -1},
	} {
		require.NoError(t, r.Register(spec))
	}
	return r
}

func TestCommands(t *testing.T) {
	e := New(testRegistry(t), nil)

	all := e.Commands("")
	assert.Equal(t, []string{"echo", "getglobalvar", "getvar", "import", "let", "return", "send"}, all)

	ranked := e.Commands("ech")
	require.NotEmpty(t, ranked)
	assert.Equal(t, "echo", ranked[0])
}

func TestClosest(t *testing.T) {
	e := New(testRegistry(t), nil)
	assert.Equal(t, "echo", e.Closest("ech"))
	assert.Equal(t, "", e.Closest("zzz"))
}

func TestAtSwitchesOnMacroContext(t *testing.T) {
	reg := testRegistry(t)
	res, err := parser.Parse("/let user 1 | /echo {{us}}", parser.WithRegistry(reg))
	require.NoError(t, err)

	e := New(reg, nil)

	inMacro := e.At(res.Index, 22, "us")
	require.NotEmpty(t, inMacro)
	assert.Equal(t, KindVariable, inMacro[0].Kind)
	assert.Equal(t, "user", inMacro[0].Text)

	inStatement := e.At(res.Index, 3, "le")
	require.NotEmpty(t, inStatement)
	assert.Equal(t, KindCommand, inStatement[0].Kind)
	assert.Equal(t, "let", inStatement[0].Text)
}

func TestVariablesSeeEnclosingScopes(t *testing.T) {
	reg := testRegistry(t)
	src := "/let outer 1 | /echo {/let inner 2}"
	res, err := parser.Parse(src, parser.WithRegistry(reg))
	require.NoError(t, err)

	e := New(reg, nil)
	// Offset inside the nested closure's let statement.
	names := e.Variables(res.Index, 28, "")
	assert.Contains(t, names, "inner")
	assert.Contains(t, names, "outer")
}

type fakeMacroEngine struct {
	unclosed []script.UnclosedMacro
}

func (f *fakeMacroEngine) ParseDocument(text string) any { return text }

func (f *fakeMacroEngine) UnclosedScopedMacros(doc any) []script.UnclosedMacro {
	return f.unclosed
}

func TestUnclosedMacros(t *testing.T) {
	want := []script.UnclosedMacro{
		{Span: script.Span{Start: 4, End: 12}, Name: "each", TrailingWS: " "},
	}
	e := New(testRegistry(t), &fakeMacroEngine{unclosed: want})

	got := e.UnclosedMacros("pre {{each items }} tail")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unclosed macros mismatch (-want +got):\n%s", diff)
	}

	bare := New(testRegistry(t), nil)
	assert.Nil(t, bare.UnclosedMacros("anything"))
}
