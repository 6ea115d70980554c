package parser

import "github.com/chatscript-lang/chatscript/core/script"

// parseClosure runs the closure state machine. The root closure has no
// markers and is terminal at end of input; a nested closure is entered on
// its opening brace and exits on the matching close brace, or at input end
// in lenient parses.
func (p *parser) parseClosure(nested bool) (*script.Closure, error) {
	c := &script.Closure{Scope: script.NewScope(p.curScope)}

	start := p.pos
	var idx int
	if nested {
		p.takeSymbol("{")
		start = p.pos
		idx = p.b.openClosure(start)
		p.depth++
	} else {
		idx = p.b.openClosure(0)
	}

	prevClosure, prevScope := p.curClosure, p.curScope
	p.curClosure, p.curScope = c, c.Scope

	if nested {
		p.parseParams(c)
	}

	pipeNext := false
	var perr error
	for {
		p.skipSpace()
		if nested && p.testSymbol("}", 0, p.strict()) {
			break
		}
		if p.pos >= len(p.src) || p.eot() {
			if nested && p.cfg.verify {
				perr = p.errorAt(ErrUnclosedClosure, len(p.src), "closure opened at offset %d is never closed", start)
			}
			break
		}

		ex, err := p.parseStatement()
		if err != nil {
			perr = err
			break
		}
		if ex != nil {
			ex.PipeInput = pipeNext
			ex.Flags = p.flags
			ex.Abort = p.cfg.abort
			ex.Debug = p.cfg.debug
			c.Body = append(c.Body, ex)
			p.b.addCommand(ex, p.curScope)
		}

		p.skipSpace()
		if p.testSymbol("|", 0, p.strict()) {
			p.takeSymbol("|")
			if p.testSymbol("|", 0, p.strict()) {
				// A second consecutive pipe suppresses injection for the
				// following statement only.
				p.takeSymbol("|")
				pipeNext = false
			} else {
				pipeNext = true
			}
		} else {
			pipeNext = false
		}
	}

	end := p.pos
	if !nested {
		end = len(p.src)
	}
	c.Span = script.Span{Start: start, End: end}
	if start <= end && end <= len(p.src) {
		c.Source = string(p.src[start:end])
	}
	p.b.closeClosure(idx, end)

	if nested {
		if p.testSymbol("}", 0, p.strict()) {
			p.takeSymbol("}")
			if p.hasAt(p.pos, "()") {
				p.takeSymbol("()")
				c.Invoke = true
			}
		}
		p.depth--
	}

	p.curClosure, p.curScope = prevClosure, prevScope
	if perr != nil {
		return nil, perr
	}
	return c, nil
}

// parseParams consumes the leading parameter declarations of a nested
// closure: a run of "name=" tokens, each terminated by whitespace or the
// closure end. Every parameter registers its name in the closure's scope.
func (p *parser) parseParams(c *script.Closure) {
	for {
		p.skipSpace()
		name := p.peekName(p.pos)
		if name == "" {
			return
		}
		eq := p.pos + len([]rune(name))
		if !p.hasAt(eq, "=") {
			return
		}
		after := eq + 1
		if after < len(p.src) {
			r := p.src[after]
			if r != ' ' && r != '\t' && r != '\n' && r != '\r' && r != '|' && r != '}' {
				// name=value belongs to a statement, not the head
				return
			}
		}
		for p.pos <= eq {
			p.take()
		}
		c.Params = append(c.Params, name)
		c.Scope.Declare(name)
	}
}
