package script

// AbortSignal is an execution-stage cancellation handle. The parser only
// attaches it to produced executors; it never polls it.
type AbortSignal interface {
	Aborted() bool
}

// DebugController is a step-debugging handle attached to executors for the
// execution stage. Its presence during parsing is what makes /breakpoint
// statements get recorded.
type DebugController interface {
	// StepMode reports whether execution should pause at each statement.
	StepMode() bool
}

// UnclosedMacro describes one currently-unterminated scoped macro in a
// document, as reported by the external macro engine.
type UnclosedMacro struct {
	Span Span
	Name string

	// LeadingWS and TrailingWS capture the whitespace surrounding the open
	// tag, which completion needs to splice a closing tag cleanly.
	LeadingWS  string
	TrailingWS string
}

// MacroEngine is the query surface of the external macro template engine.
// The parser core never evaluates macros; tooling paths use this interface
// to detect unterminated scoped macros and nothing more.
type MacroEngine interface {
	// ParseDocument parses the document text into the engine's own
	// structural form. The form is opaque to this module.
	ParseDocument(text string) any

	// UnclosedScopedMacros lists the currently-unclosed scoped-macro ranges
	// in a previously parsed document.
	UnclosedScopedMacros(doc any) []UnclosedMacro
}
