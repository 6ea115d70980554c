package script

// Closure is a lexical block of statements with its own scope. The root
// closure has no explicit markers and spans the whole input; nested closures
// are delimited by { and }. A closure may itself be an argument value, which
// is how higher-order commands receive callbacks.
type Closure struct {
	// Params are the leading named-argument parameter declarations, in
	// declaration order. Each is also registered in Scope.
	Params []string

	// Body is the ordered executor sequence.
	Body []*Executor

	// Scope is this closure's variable scope, parented to the enclosing
	// closure's scope (nil parent for the root).
	Scope *Scope

	// Source is the raw source substring the closure covers (marker
	// delimiters excluded for nested closures).
	Source string

	// Span covers Source within the full document.
	Span Span

	// Invoke marks a trailing () suffix: the closure is to be invoked
	// immediately upon construction rather than passed as a value.
	Invoke bool
}

// Flags is the fixed set of parser toggles. Each executor freezes the flag
// state that was live when it was parsed; the /parser-flag pseudo-command
// mutates the live state for subsequent statements only.
type Flags struct {
	// StrictEscape selects the strict backslash-run escaping mode in the
	// scanner; off means loose mode (single preceding backslash escapes).
	StrictEscape bool

	// LegacyGetVar enables the rewrite pass that desugars the deprecated
	// getter macros into synthetic statements.
	LegacyGetVar bool
}
