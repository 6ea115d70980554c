// Package parser implements the command-script grammar: a recursive-descent
// parser that turns raw script text into a tree of scoped closures and
// command executors, building cursor-queryable indexes in the same pass.
//
// Parsing is synchronous and single-threaded; one Parse call owns all
// mutable cursor/scope/flag state until it returns. Concurrent parses need
// separate calls. A parse either returns a complete tree or an error; on
// error the caller must discard any partial state and keep its last good
// result.
package parser

import (
	"github.com/chatscript-lang/chatscript/core/script"
)

// Result is a completed parse: the root closure and the four indexes used
// for cursor-position lookups. Immutable once returned.
type Result struct {
	Root   *script.Closure
	Index  *script.Indexes
	Source string
}

// parser holds the live parse state: the scanner cursor, the current
// mutable scope/closure, the live flag set and the index builder.
type parser struct {
	*scanner
	source string
	cfg    *config
	flags  script.Flags
	b      *indexBuilder

	curClosure *script.Closure
	curScope   *script.Scope
	depth      int // nested closure depth; 0 while in the root
}

// Parse parses one script. The default mode verifies command names and
// end-of-input structure; WithoutVerification selects the lenient mode used
// while a user is mid-edit.
func Parse(source string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	p := &parser{
		scanner: newScanner(source),
		source:  source,
		cfg:     cfg,
		flags:   cfg.flags,
		b:       &indexBuilder{},
	}

	root, err := p.parseClosure(false)
	if err != nil {
		return nil, err
	}

	return &Result{
		Root:   root,
		Index:  p.b.build(),
		Source: source,
	}, nil
}

// strict is a shorthand for the live escaping mode.
func (p *parser) strict() bool {
	return p.flags.StrictEscape
}

// atTerminator reports whether the cursor sits at a statement terminator:
// an unescaped pipe, the enclosing closure's end marker, or input end.
func (p *parser) atTerminator() bool {
	if p.pos >= len(p.src) {
		return true
	}
	if p.testSymbol("|", 0, p.strict()) {
		return true
	}
	if p.depth > 0 && p.testSymbol("}", 0, p.strict()) {
		return true
	}
	return p.eot()
}

// atClosureStart reports whether the cursor sits at a closure opener. A {{
// always belongs to a macro, never a closure.
func (p *parser) atClosureStart() bool {
	if p.hasAt(p.pos, "{{") {
		return false
	}
	return p.testSymbol("{", 0, p.strict())
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	}
	return false
}

// takeName consumes a command or identifier name at the cursor.
func (p *parser) takeName() string {
	start := p.pos
	for p.pos < len(p.src) && isNameRune(p.src[p.pos]) {
		p.take()
	}
	return string(p.src[start:p.pos])
}

// peekName returns the identifier starting at rune offset at, without
// consuming anything.
func (p *parser) peekName(at int) string {
	end := at
	for end < len(p.src) && isNameRune(p.src[end]) {
		end++
	}
	return string(p.src[at:end])
}
