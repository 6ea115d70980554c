package script

// MacroSpan is one embedded {{...}} occurrence found in literal text, with
// its extracted leading identifier. Nested macros each get their own entry.
type MacroSpan struct {
	Span Span
	Name string
}

// Indexes are the four parallel structures built during a parse pass. They
// let external tooling (autocomplete, debuggers) map a cursor offset back to
// a parsed node without re-parsing. All slices are in document order and
// immutable once the parse returns.
type Indexes struct {
	// Closures holds one span per closure, including the synthetic root.
	Closures []Span

	// Macros holds every embedded macro occurrence.
	Macros []MacroSpan

	// Commands holds every executor in document order.
	Commands []*Executor

	// Scopes holds one scope snapshot per executor, taken at the point that
	// executor was parsed. Parallel to Commands.
	Scopes []*Scope
}

// ClosureAt returns the innermost closure span containing offset. The
// second result is the span's position in Closures; -1 when none contains
// the offset.
func (ix *Indexes) ClosureAt(offset int) (Span, int) {
	best := -1
	for i, sp := range ix.Closures {
		if !sp.Contains(offset) {
			continue
		}
		if best == -1 || sp.Len() < ix.Closures[best].Len() {
			best = i
		}
	}
	if best == -1 {
		return Span{}, -1
	}
	return ix.Closures[best], best
}

// CommandAt returns the executor whose span contains offset, preferring the
// innermost one: a statement nested inside another statement's closure
// argument wins over the enclosing statement.
func (ix *Indexes) CommandAt(offset int) (*Executor, bool) {
	best := -1
	for i, ex := range ix.Commands {
		if ex.Synthetic || !ex.Span.Contains(offset) {
			continue
		}
		if best == -1 || ex.Span.Len() <= ix.Commands[best].Span.Len() {
			best = i
		}
	}
	if best == -1 {
		return nil, false
	}
	return ix.Commands[best], true
}

// ScopeAt returns the scope snapshot active at offset: the snapshot of the
// innermost executor containing the offset, or of the nearest executor
// starting before it. Nil when no executor precedes the offset.
func (ix *Indexes) ScopeAt(offset int) *Scope {
	best := -1
	for i, ex := range ix.Commands {
		if !ex.Span.Contains(offset) {
			continue
		}
		if best == -1 || ex.Span.Len() <= ix.Commands[best].Span.Len() {
			best = i
		}
	}
	if best == -1 {
		for i, ex := range ix.Commands {
			if ex.Span.Start <= offset && (best == -1 || ex.Span.Start >= ix.Commands[best].Span.Start) {
				best = i
			}
		}
	}
	if best == -1 {
		return nil
	}
	return ix.Scopes[best]
}

// MacroAt returns the innermost macro occurrence containing offset.
func (ix *Indexes) MacroAt(offset int) (MacroSpan, bool) {
	best := -1
	for i, m := range ix.Macros {
		if !m.Span.Contains(offset) {
			continue
		}
		if best == -1 || m.Span.Len() < ix.Macros[best].Span.Len() {
			best = i
		}
	}
	if best == -1 {
		return MacroSpan{}, false
	}
	return ix.Macros[best], true
}
