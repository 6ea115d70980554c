package parser

import (
	"regexp"
	"strings"

	"github.com/chatscript-lang/chatscript/core/script"
)

var legacyGetterRe = regexp.MustCompile(`\{\{\s*(getvar|getglobalvar)\s+([A-Za-z0-9_.-]+)\s*\}\}`)

// rewriteLegacy desugars {{getvar NAME}} and {{getglobalvar NAME}} inside a
// literal text span when the legacy-getvar flag is active. Each occurrence
// is replaced by a {{tmp}} reference and four synthetic executors are
// appended to the enclosing closure:
//
//	/let saved      <- save the current pipe value
//	/getvar NAME    (or /getglobalvar)
//	/let tmp        <- capture the variable into the substituted name
//	/return {{saved}}
//
// so evaluating the closure leaves the pipe value untouched while the macro
// expands to the variable's content. Temp names come from the injected
// generator, keeping the transformation deterministic per parse.
func (p *parser) rewriteLegacy(text string, base int) string {
	if !p.flags.LegacyGetVar {
		return text
	}
	matches := legacyGetterRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	search := base
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		getter := text[m[2]:m[3]]
		varName := text[m[4]:m[5]]

		span := p.sourceSpan(text[m[0]:m[1]], base+len([]rune(text[:m[0]])), &search)

		saved := p.cfg.tempName()
		tmp := p.cfg.tempName()
		p.curScope.Declare(saved)
		p.curScope.Declare(tmp)

		p.appendSynthetic(span, "let", []script.Argument{
			{Value: script.StringValue(saved), Span: span},
		}, true)
		p.appendSynthetic(span, getter, []script.Argument{
			{Value: script.StringValue(varName), Span: span},
		}, false)
		p.appendSynthetic(span, "let", []script.Argument{
			{Value: script.StringValue(tmp), Span: span},
		}, true)
		p.appendSynthetic(span, "return", []script.Argument{
			{Value: script.StringValue("{{" + saved + "}}"), Span: span},
		}, false)

		b.WriteString("{{" + tmp + "}}")
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// sourceSpan locates match verbatim in the source at or after *search and
// advances the cursor past it. Offsets into accumulated text do not map
// onto the source by addition, since escape handling may have dropped
// backslashes ahead of the match; fallback covers reassembled text that no
// longer occurs verbatim.
func (p *parser) sourceSpan(match string, fallback int, search *int) script.Span {
	needle := []rune(match)
	for i := *search; i+len(needle) <= len(p.src); i++ {
		found := true
		for j, r := range needle {
			if p.src[i+j] != r {
				found = false
				break
			}
		}
		if found {
			*search = i + len(needle)
			return script.Span{Start: i, End: i + len(needle)}
		}
	}
	return script.Span{Start: fallback, End: fallback + len(needle)}
}

func (p *parser) appendSynthetic(span script.Span, name string, unnamed []script.Argument, pipeInput bool) {
	var def *script.CommandSpec
	if p.cfg.registry != nil {
		def, _ = p.cfg.registry.Lookup(name)
	}
	ex := &script.Executor{
		Name:      name,
		Command:   def,
		Unnamed:   unnamed,
		Span:      span,
		Flags:     p.flags,
		PipeInput: pipeInput,
		Synthetic: true,
		Abort:     p.cfg.abort,
		Debug:     p.cfg.debug,
	}
	p.curClosure.Body = append(p.curClosure.Body, ex)
	p.b.addCommand(ex, p.curScope)
}
