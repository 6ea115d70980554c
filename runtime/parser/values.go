package parser

import (
	"strings"

	"github.com/chatscript-lang/chatscript/core/script"
)

// peekNamedArg reports whether the cursor sits at an identifier directly
// followed by '=', without consuming anything.
func (p *parser) peekNamedArg() (string, bool) {
	name := p.peekName(p.pos)
	if name == "" {
		return "", false
	}
	if !p.hasAt(p.pos+len([]rune(name)), "=") {
		return "", false
	}
	return name, true
}

// parseNamedArg consumes identifier= followed by a closure, quoted, list or
// bare value. A missing value yields an empty string; the grammar tolerates
// it so a user can type the name first.
func (p *parser) parseNamedArg(name string) (script.Argument, error) {
	start := p.pos
	for i := 0; i < len([]rune(name))+1; i++ {
		p.take()
	}

	var v script.Value
	var err error
	switch {
	case p.atClosureStart():
		var c *script.Closure
		c, err = p.parseClosure(true)
		if err == nil {
			v = script.ClosureValue(c)
		}
	case p.testSymbol("\"", 0, p.strict()):
		v, err = p.parseQuoted()
	case p.testSymbol("[", 0, p.strict()):
		v, err = p.parseList()
	case p.atTerminator() || isSpaceRune(p.cur()):
		v = script.StringValue("")
	default:
		v = p.parseBareValue()
	}
	if err != nil {
		return script.Argument{}, err
	}
	return script.Argument{Name: name, Value: v, Span: script.Span{Start: start, End: p.pos}}, nil
}

// parseQuoted consumes a "..." value. It ends at an unescaped quote; in
// loose escaping mode a command-terminating delimiter also ends it (without
// being consumed). Reaching input end is an error under verification.
func (p *parser) parseQuoted() (script.Value, error) {
	start := p.pos
	p.takeSymbol(`"`)
	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			if p.cfg.verify {
				return script.Value{}, p.errorAt(ErrUnterminatedQuote, len(p.src), "quote opened at offset %d is never closed", start)
			}
			break
		}
		if p.testSymbol(`"`, 0, p.strict()) {
			p.takeSymbol(`"`)
			break
		}
		if !p.strict() {
			if p.testSymbol("|", 0, false) || (p.depth > 0 && p.testSymbol("}", 0, false)) {
				break
			}
		}
		if p.hasAt(p.pos, "{{") {
			p.consumeMacroRaw(&b)
			continue
		}
		b.WriteRune(p.take())
	}
	return script.QuotedValue(b.String()), nil
}

// parseList consumes a [...] value with comma-separated elements. An
// unclosed list is always an error, even in lenient parses.
func (p *parser) parseList() (script.Value, error) {
	start := p.pos
	p.takeSymbol("[")
	var elems []script.Argument
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return script.Value{}, p.errorAt(ErrUnterminatedList, len(p.src), "list opened at offset %d is never closed", start)
		}
		if p.testSymbol("]", 0, p.strict()) {
			p.takeSymbol("]")
			break
		}

		el, err := p.parseListElement()
		if err != nil {
			return script.Value{}, err
		}
		elems = append(elems, el)

		p.skipSpace()
		if p.testSymbol(",", 0, p.strict()) {
			p.takeSymbol(",")
		}
	}
	return script.ListValue(elems), nil
}

func (p *parser) parseListElement() (script.Argument, error) {
	start := p.pos
	var v script.Value
	var err error
	switch {
	case p.atClosureStart():
		var c *script.Closure
		c, err = p.parseClosure(true)
		if err == nil {
			v = script.ClosureValue(c)
		}
	case p.testSymbol(`"`, 0, p.strict()):
		v, err = p.parseQuoted()
	case p.testSymbol("[", 0, p.strict()):
		v, err = p.parseList()
	default:
		var b strings.Builder
		for p.pos < len(p.src) &&
			!p.testSymbol(",", 0, p.strict()) &&
			!p.testSymbol("]", 0, p.strict()) {
			if p.hasAt(p.pos, "{{") {
				p.consumeMacroRaw(&b)
				continue
			}
			b.WriteRune(p.take())
		}
		text := strings.TrimSpace(b.String())
		v = script.StringValue(text)
	}
	if err != nil {
		return script.Argument{}, err
	}
	return script.Argument{Value: v, Span: script.Span{Start: start, End: p.pos}}, nil
}

// parseBareValue consumes a value up to the next whitespace or terminator.
// A single escaped character may appear literally first.
func (p *parser) parseBareValue() script.Value {
	var b strings.Builder
	if p.hasAt(p.pos, `\`) && p.pos+1 < len(p.src) {
		p.take()
		b.WriteRune(p.take())
	}
	for p.pos < len(p.src) && !isSpaceRune(p.src[p.pos]) && !p.atTerminator() {
		if p.hasAt(p.pos, "{{") {
			p.consumeMacroRaw(&b)
			continue
		}
		b.WriteRune(p.take())
	}
	return script.StringValue(b.String())
}

// consumeMacroRaw copies a {{...}} span verbatim into b, tracking brace
// nesting. Every macro is recorded into the index here, from the live
// cursor positions; offsets into the accumulated text cannot be trusted
// because escape handling may have dropped backslashes from it. An
// unterminated macro stops at an unescaped pipe or input end so it cannot
// swallow the statement terminator, and indexes up to the stop position.
func (p *parser) consumeMacroRaw(b *strings.Builder) {
	var open []int // start offsets of currently open {{ markers
loop:
	for p.pos < len(p.src) {
		switch {
		case p.hasAt(p.pos, "{{"):
			open = append(open, p.pos)
			b.WriteString("{{")
			p.takeSymbol("{{")
		case p.hasAt(p.pos, "}}") && len(open) > 0:
			start := open[len(open)-1]
			open = open[:len(open)-1]
			b.WriteString("}}")
			p.takeSymbol("}}")
			p.b.addMacro(script.MacroSpan{
				Span: script.Span{Start: start, End: p.pos},
				Name: macroName(p.src[start+2 : p.pos-2]),
			})
			if len(open) == 0 {
				return
			}
		default:
			if p.testSymbol("|", 0, p.strict()) {
				break loop
			}
			b.WriteRune(p.take())
		}
	}
	for _, start := range open {
		p.b.addMacro(script.MacroSpan{
			Span: script.Span{Start: start, End: p.pos},
			Name: macroName(p.src[start+2 : p.pos]),
		})
	}
}

// parseUnnamed parses the raw unnamed-argument span of a statement into one
// or more positional assignments, following the list/scalar decomposition
// rules. def drives split mode, the split cap and raw-quote preservation.
func (p *parser) parseUnnamed(def *script.CommandSpec) ([]script.Argument, error) {
	split := def != nil && def.SplitArgs && (def.MaxArgs > 1 || def.MaxArgs < 0)
	raw := def != nil && def.RawQuotes
	if split {
		return p.parseSplitUnnamed(def, raw)
	}
	return p.parsePlainUnnamed(raw)
}

// parsePlainUnnamed handles the non-split case: the span becomes a single
// scalar unless a leading quote or an embedded closure forces list mode.
func (p *parser) parsePlainUnnamed(raw bool) ([]script.Argument, error) {
	var elems []script.Argument
	textStart := p.pos
	var text strings.Builder

	flush := func() {
		if text.Len() == 0 {
			return
		}
		s := p.rewriteLegacy(text.String(), textStart)
		elems = append(elems, script.Argument{
			Value: script.StringValue(s),
			Span:  script.Span{Start: textStart, End: p.pos},
		})
		text.Reset()
	}

	if !raw && p.testSymbol(`"`, 0, p.strict()) {
		qs := p.pos
		v, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		elems = append(elems, script.Argument{Value: v, Span: script.Span{Start: qs, End: p.pos}})
		textStart = p.pos
	}

	for !p.atTerminator() {
		if p.atClosureStart() {
			flush()
			cs := p.pos
			c, err := p.parseClosure(true)
			if err != nil {
				return nil, err
			}
			elems = append(elems, script.Argument{Value: script.ClosureValue(c), Span: script.Span{Start: cs, End: p.pos}})
			textStart = p.pos
			continue
		}
		if p.hasAt(p.pos, "{{") {
			p.consumeMacroRaw(&text)
			continue
		}
		text.WriteRune(p.take())
	}
	flush()

	return trimEdges(elems), nil
}

// splitToken is one recognized token of a split-mode span.
type splitToken struct {
	arg    script.Argument
	joined bool // no separator between this token and the previous one
	raw    string
}

// parseSplitUnnamed handles split mode: each recognized token becomes its
// own element. With a split cap, tokens beyond the cap collapse back into
// one final element; see assembleSplit for the overflow-rejoin rule.
func (p *parser) parseSplitUnnamed(def *script.CommandSpec, raw bool) ([]script.Argument, error) {
	var toks []splitToken

	for {
		before := p.pos
		p.skipSpace()
		if p.atTerminator() {
			break
		}
		joined := p.pos == before && len(toks) > 0

		start := p.pos
		var arg script.Argument
		switch {
		case p.atClosureStart():
			c, err := p.parseClosure(true)
			if err != nil {
				return nil, err
			}
			arg = script.Argument{Value: script.ClosureValue(c)}
		case !raw && p.testSymbol(`"`, 0, p.strict()):
			v, err := p.parseQuoted()
			if err != nil {
				return nil, err
			}
			arg = script.Argument{Value: v}
		case p.testSymbol("[", 0, p.strict()):
			v, err := p.parseList()
			if err != nil {
				return nil, err
			}
			arg = script.Argument{Value: v}
		default:
			var b strings.Builder
			for p.pos < len(p.src) && !isSpaceRune(p.src[p.pos]) && !p.atTerminator() {
				if p.hasAt(p.pos, "{{") {
					p.consumeMacroRaw(&b)
					continue
				}
				if p.atClosureStart() || (!raw && p.testSymbol(`"`, 0, p.strict())) {
					break
				}
				b.WriteRune(p.take())
			}
			if b.Len() == 0 {
				return nil, p.errorAt(ErrUnexpectedArgumentEnd, p.pos, "expected an argument token")
			}
			arg = script.Argument{Value: script.StringValue(b.String())}
		}
		arg.Span = script.Span{Start: start, End: p.pos}
		toks = append(toks, splitToken{
			arg:    arg,
			joined: joined,
			raw:    string(p.src[start:p.pos]),
		})
	}

	if p.cfg.verify && len(toks) < def.MinArgs {
		return nil, p.errorAt(ErrUnexpectedArgumentEnd, p.pos, "command %q expects at least %d arguments, got %d", def.Name, def.MinArgs, len(toks))
	}

	elems := p.assembleSplit(toks, def.SplitCap)
	return trimEdges(elems), nil
}

// assembleSplit applies the split cap. Tokens up to the cap stay separate;
// the overflow is rejoined into one final element using the tokens' raw
// source text, which re-adds quote characters around previously-quoted
// tokens and recovers the author's literal text.
func (p *parser) assembleSplit(toks []splitToken, limit int) []script.Argument {
	finish := func(a script.Argument) script.Argument {
		if a.Value.Kind == script.ValueString && !a.Value.Quoted {
			a.Value.Str = p.rewriteLegacy(a.Value.Str, a.Span.Start)
		}
		return a
	}

	var elems []script.Argument
	if limit <= 0 || len(toks) <= limit {
		for _, t := range toks {
			elems = append(elems, finish(t.arg))
		}
		return elems
	}

	for _, t := range toks[:limit] {
		elems = append(elems, finish(t.arg))
	}

	over := toks[limit:]
	if len(over) == 1 {
		elems = append(elems, finish(over[0].arg))
		return elems
	}

	var b strings.Builder
	for i, t := range over {
		if i > 0 && !t.joined {
			b.WriteString(" ")
		}
		b.WriteString(t.raw)
	}
	elems = append(elems, finish(script.Argument{
		Value: script.StringValue(b.String()),
		Span:  script.Span{Start: over[0].arg.Span.Start, End: over[len(over)-1].arg.Span.End},
	}))
	return elems
}

// trimEdges left-trims the first element and right-trims the last, quoted
// elements exempt. An edge element emptied by trimming is dropped.
func trimEdges(elems []script.Argument) []script.Argument {
	trim := func(i int, cut func(string) string) {
		if i < 0 || i >= len(elems) {
			return
		}
		v := &elems[i].Value
		if v.Kind != script.ValueString || v.Quoted {
			return
		}
		v.Str = cut(v.Str)
	}

	trim(0, func(s string) string { return strings.TrimLeft(s, " \t\r\n") })
	trim(len(elems)-1, func(s string) string { return strings.TrimRight(s, " \t\r\n") })

	drop := func(i int) bool {
		if i < 0 || i >= len(elems) {
			return false
		}
		v := elems[i].Value
		return v.Kind == script.ValueString && !v.Quoted && v.Str == ""
	}
	if drop(len(elems) - 1) {
		elems = elems[:len(elems)-1]
	}
	if drop(0) {
		elems = elems[1:]
	}
	return elems
}
