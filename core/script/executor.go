package script

// Executor is one parsed command invocation inside a closure body.
type Executor struct {
	// Name is the command name as written (without the leading slash).
	Name string

	// Command is the resolved registry definition, or nil when the name is
	// unknown and verification was disabled.
	Command *CommandSpec

	// Named holds the key=value assignments in source order.
	Named []Argument

	// Unnamed holds the positional assignments. A single scalar stays one
	// entry; split mode and embedded closures produce several.
	Unnamed []Argument

	// Span covers the statement's raw source text.
	Span Span

	// Flags is the parser flag state frozen at parse time.
	Flags Flags

	// PipeInput reports whether the previous statement's output is injected
	// as this statement's implicit first unnamed argument.
	PipeInput bool

	// Break marks a /break statement; BreakValue optionally replaces the
	// pipe value carried out of the terminated closure.
	Break      bool
	BreakValue *Value

	// Breakpoint marks a /breakpoint statement. Only recorded when a debug
	// controller is attached to the parse.
	Breakpoint bool

	// RunTarget is set for the /: run shorthand: the closure or variable
	// name to invoke. Empty for ordinary commands.
	RunTarget string

	// Synthetic marks executors generated by the legacy getter rewrite.
	Synthetic bool

	// Abort and Debug are caller-supplied handles attached verbatim for the
	// execution stage; the parser never interprets them.
	Abort AbortSignal
	Debug DebugController
}

// Arg returns the named assignment for key, if present.
func (e *Executor) Arg(key string) (Argument, bool) {
	for _, a := range e.Named {
		if a.Name == key {
			return a, true
		}
	}
	return Argument{}, false
}

// FirstUnnamed returns the first positional value, if any.
func (e *Executor) FirstUnnamed() (Value, bool) {
	if len(e.Unnamed) == 0 {
		return Value{}, false
	}
	return e.Unnamed[0].Value, true
}
