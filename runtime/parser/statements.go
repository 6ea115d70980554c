package parser

import (
	"strings"

	"github.com/chatscript-lang/chatscript/core/script"
)

// parseStatement dispatches one statement in fixed priority order:
// block comment, line comment, parser-flag, run shorthand, breakpoint,
// break, generic command. Anything else is inert literal text. Statements
// that produce no executor return (nil, nil).
func (p *parser) parseStatement() (*script.Executor, error) {
	if !p.testSymbol("/", 0, p.strict()) {
		return nil, p.parseInertText()
	}

	next := p.pos + 1
	switch {
	case p.hasAt(next, "*"):
		return nil, p.parseBlockComment()
	case p.hasAt(next, "/"), p.hasAt(next, "#"):
		return nil, p.parseLineComment()
	case p.hasAt(next, ":"):
		return p.parseRunShorthand()
	case p.matchWord("parser-flag"):
		return nil, p.parseParserFlag()
	case p.matchWord("breakpoint"):
		return p.parseBreakpoint()
	case p.matchWord("break"):
		return p.parseBreak()
	case next < len(p.src) && isNameRune(p.src[next]):
		return p.parseCommand()
	default:
		return nil, p.parseInertText()
	}
}

// matchWord reports whether the slash statement at the cursor is exactly
// /word followed by a word boundary.
func (p *parser) matchWord(word string) bool {
	if !p.hasAt(p.pos+1, word) {
		return false
	}
	after := p.pos + 1 + len([]rune(word))
	if after >= len(p.src) {
		return true
	}
	return !isNameRune(p.src[after])
}

// parseBlockComment consumes a nestable /* ... */ comment. It ends at the
// matching end marker or input end; the latter is an error under
// verification.
func (p *parser) parseBlockComment() error {
	start := p.pos
	p.takeSymbol("/*")
	depth := 1
	for depth > 0 {
		if p.pos >= len(p.src) {
			if p.cfg.verify {
				return p.errorAt(ErrUnclosedBlockComment, len(p.src), "block comment opened at offset %d is never closed", start)
			}
			return nil
		}
		switch {
		case p.testSymbol("/*", 0, p.strict()):
			depth++
			p.takeSymbol("/*")
		case p.testSymbol("*/", 0, p.strict()):
			depth--
			p.takeSymbol("*/")
		default:
			p.take()
		}
	}
	return nil
}

// parseLineComment consumes a // or /# comment up to the next unescaped
// pipe, the enclosing closure end, or input end. Input end inside a nested
// closure is an error under verification since the close marker can no
// longer follow.
func (p *parser) parseLineComment() error {
	start := p.pos
	p.takeSymbol("//") // same length as /#
	for {
		if p.pos >= len(p.src) {
			if p.depth > 0 && p.cfg.verify {
				return p.errorAt(ErrUnclosedComment, len(p.src), "comment started at offset %d has no terminator", start)
			}
			return nil
		}
		if p.testSymbol("|", 0, p.strict()) {
			return nil
		}
		if p.depth > 0 && p.testSymbol("}", 0, p.strict()) {
			return nil
		}
		p.take()
	}
}

// parseParserFlag handles the /parser-flag pseudo-command. It mutates the
// live flag state immediately; the change affects subsequent statements in
// this and nested closures, never retroactively. Unknown flag names are
// ignored.
func (p *parser) parseParserFlag() error {
	p.takeSymbol("/parser-flag")
	p.skipSpace()
	name := p.takeName()

	state := true
	p.skipSpace()
	if !p.atTerminator() {
		switch p.takeName() {
		case "off", "false", "0":
			state = false
		}
	}

	switch name {
	case "strict-escape":
		p.flags.StrictEscape = state
	case "legacy-getvar":
		p.flags.LegacyGetVar = state
	}

	p.skipToTerminator()
	return nil
}

// parseRunShorthand handles /: name-or-quoted-string [named-args]. It is
// sugar for invoking a closure or variable by name and takes no unnamed
// arguments besides the target.
func (p *parser) parseRunShorthand() (*script.Executor, error) {
	start := p.pos
	p.takeSymbol("/:")
	p.skipSpace()

	if p.atTerminator() {
		if p.cfg.verify {
			return nil, p.errorAt(ErrUnexpectedCommandEnd, p.pos, "run shorthand is missing its target")
		}
		return nil, nil
	}

	var target string
	if !p.testSymbol("\"", 0, p.strict()) {
		target = p.bareWord()
	} else {
		v, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		target = v.Str
	}

	ex := &script.Executor{
		Name:      "run",
		RunTarget: target,
		Span:      script.Span{Start: start},
	}

	for {
		p.skipSpace()
		if p.atTerminator() {
			break
		}
		name, ok := p.peekNamedArg()
		if !ok {
			if p.cfg.verify {
				return nil, p.errorAt(ErrUnexpectedCommandEnd, p.pos, "run shorthand takes only named arguments after the target")
			}
			p.skipToTerminator()
			break
		}
		arg, err := p.parseNamedArg(name)
		if err != nil {
			return nil, err
		}
		ex.Named = append(ex.Named, arg)
	}

	if p.pos >= len(p.src) && p.depth > 0 && p.cfg.verify {
		return nil, p.errorAt(ErrUnexpectedCommandEnd, len(p.src), "run shorthand reaches input end without a terminator")
	}
	ex.Span.End = p.pos
	return ex, nil
}

// parseBreakpoint handles /breakpoint. The statement is recorded only when
// a debug controller is attached to the parse; otherwise it is consumed and
// dropped.
func (p *parser) parseBreakpoint() (*script.Executor, error) {
	start := p.pos
	p.takeSymbol("/breakpoint")
	p.skipToTerminator()
	if p.cfg.debug == nil {
		return nil, nil
	}
	return &script.Executor{
		Name:       "breakpoint",
		Breakpoint: true,
		Span:       script.Span{Start: start, End: p.pos},
	}, nil
}

// parseBreak handles /break [value]: terminate the nearest enclosing
// loop/closure execution, optionally replacing the pipe value.
func (p *parser) parseBreak() (*script.Executor, error) {
	start := p.pos
	p.takeSymbol("/break")
	ex := &script.Executor{
		Name:  "break",
		Break: true,
		Span:  script.Span{Start: start},
	}

	p.skipSpace()
	if !p.atTerminator() {
		args, err := p.parseUnnamed(nil)
		if err != nil {
			return nil, err
		}
		if len(args) > 0 {
			v := args[0].Value
			ex.BreakValue = &v
			ex.Unnamed = args
		}
	}
	ex.Span.End = p.pos
	return ex, nil
}

// parseCommand handles the generic /name [named-args] [unnamed-args]
// statement.
func (p *parser) parseCommand() (*script.Executor, error) {
	start := p.pos
	p.takeSymbol("/")
	nameStart := p.pos
	name := p.takeName()

	var def *script.CommandSpec
	exists := false
	if p.cfg.registry != nil {
		def, exists = p.cfg.registry.Lookup(name)
	}
	if p.cfg.verify && !exists {
		return nil, p.errorAt(ErrUnknownCommand, nameStart, "command %q is not registered", name)
	}

	ex := &script.Executor{
		Name:    name,
		Command: def,
		Span:    script.Span{Start: start},
	}

	for {
		p.skipSpace()
		if p.atTerminator() {
			break
		}
		if argName, ok := p.peekNamedArg(); ok {
			arg, err := p.parseNamedArg(argName)
			if err != nil {
				return nil, err
			}
			ex.Named = append(ex.Named, arg)
			continue
		}
		args, err := p.parseUnnamed(def)
		if err != nil {
			return nil, err
		}
		ex.Unnamed = args
		break
	}

	if p.pos >= len(p.src) && p.depth > 0 && p.cfg.verify {
		return nil, p.errorAt(ErrUnexpectedCommandEnd, len(p.src), "command %q reaches input end without a terminator", name)
	}

	ex.Span.End = p.pos
	p.registerDeclarations(ex)
	return ex, nil
}

// registerDeclarations records the destination variable names of /let and
// /import into the current scope as a parse-time side effect, so tooling
// can validate and suggest variable references.
func (p *parser) registerDeclarations(ex *script.Executor) {
	switch ex.Name {
	case "let":
		if v, ok := ex.FirstUnnamed(); ok && v.Kind == script.ValueString {
			if fields := strings.Fields(v.Str); len(fields) > 0 {
				p.curScope.Declare(fields[0])
			}
		}
	case "import":
		parts := make([]string, 0, len(ex.Unnamed))
		for _, a := range ex.Unnamed {
			parts = append(parts, a.Value.Text())
		}
		fields := strings.Fields(strings.Join(parts, " "))
		if len(fields) == 0 {
			return
		}
		if len(fields) >= 3 && fields[len(fields)-2] == "as" {
			p.curScope.Declare(trimQuotes(fields[len(fields)-1]))
			return
		}
		name := trimQuotes(fields[0])
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		p.curScope.Declare(name)
	}
}

func trimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// parseInertText discards literal content up to the next statement or
// closure terminator, still recording any embedded macro spans.
func (p *parser) parseInertText() error {
	p.skipToTerminator()
	return nil
}

// skipToTerminator discards the rest of the statement.
func (p *parser) skipToTerminator() {
	for !p.atTerminator() {
		if p.hasAt(p.pos, "{{") {
			var b strings.Builder
			p.consumeMacroRaw(&b)
			continue
		}
		p.take()
	}
}

// bareWord consumes a run of text up to whitespace or a terminator.
func (p *parser) bareWord() string {
	var b strings.Builder
	for p.pos < len(p.src) && !isSpaceRune(p.src[p.pos]) && !p.atTerminator() {
		b.WriteRune(p.take())
	}
	return b.String()
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
