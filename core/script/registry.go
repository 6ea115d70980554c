package script

// CommandSpec is the registry's declaration for one command name. The
// parser consults it for arity-driven argument splitting and quote
// preservation; everything else about a command belongs to the execution
// runtime.
type CommandSpec struct {
	Name string

	// MinArgs and MaxArgs bound the declared unnamed-argument arity.
	// MaxArgs < 0 means unbounded.
	MinArgs int
	MaxArgs int

	// SplitArgs requests that one raw unnamed span be divided into
	// positional values when MaxArgs exceeds one.
	SplitArgs bool

	// SplitCap caps how many elements splitting may produce before the
	// remaining text collapses into one final element. Zero means no cap.
	SplitCap int

	// RawQuotes preserves quote characters in unnamed arguments instead of
	// treating a leading quote as a quoted-value delimiter.
	RawQuotes bool
}

// Registry resolves command names at parse time. It is passed into the
// parser explicitly so the core carries no global state; a fake registry is
// all tests need.
type Registry interface {
	// Lookup returns the definition for name and whether it exists.
	Lookup(name string) (*CommandSpec, bool)

	// Names returns all registered command names (for completion).
	Names() []string
}
