package scriptfmt

import (
	"bytes"
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

func parseSnapshot(t *testing.T, src string) *Snapshot {
	t.Helper()
	reg := stubRegistry{
		"echo": {Name: "echo", MaxArgs: 1},
		"let":  {Name: "let", MaxArgs: 2},
	}
	res, err := parser.Parse(src, parser.WithRegistry(reg))
	require.NoError(t, err)
	return &Snapshot{Source: res.Source, Root: res.Root, Index: res.Index}
}

func TestEncodeDeterministic(t *testing.T) {
	src := `/let x 5 | /echo {{x}} and "quoted bits"`

	body1, hash1, err := Encode(parseSnapshot(t, src))
	require.NoError(t, err)
	body2, hash2, err := Encode(parseSnapshot(t, src))
	require.NoError(t, err)

	assert.Equal(t, body1, body2, "same source must encode to identical bytes")
	assert.Equal(t, hash1, hash2)
}

func TestEncodeHashChangesWithSource(t *testing.T) {
	_, hash1, err := Encode(parseSnapshot(t, "/echo one"))
	require.NoError(t, err)
	_, hash2, err := Encode(parseSnapshot(t, "/echo two"))
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestWriteReadRoundTrip(t *testing.T) {
	snap := parseSnapshot(t, "/let name 1 | /echo {/echo inner} {{name}}")

	var buf bytes.Buffer
	wrote, err := Write(&buf, snap)
	require.NoError(t, err)

	cs, read, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, wrote, read, "read must verify the written hash")

	assert.Equal(t, snap.Source, cs.Source)
	require.Len(t, cs.Root.Body, 2)
	assert.Equal(t, "let", cs.Root.Body[0].Name)
	assert.Equal(t, "echo", cs.Root.Body[1].Name)
	assert.True(t, cs.Root.Body[1].PipeInput)
	assert.Contains(t, cs.Root.Names, "name")
	assert.Len(t, cs.Closures, 2)
	require.Len(t, cs.Macros, 1)
	assert.Equal(t, "name", cs.Macros[0].Name)
}

func TestReadRejectsCorruptBody(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, parseSnapshot(t, "/echo ok"))
	require.NoError(t, err)

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF

	_, _, err = Read(bytes.NewReader(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash mismatch")
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("NOPE0000")))
	require.Error(t, err)
}
