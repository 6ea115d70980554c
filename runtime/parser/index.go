package parser

import (
	"sort"
	"strings"
	"unicode"

	"github.com/chatscript-lang/chatscript/core/script"
)

// indexBuilder accumulates the four indexes during the recursive parse. It
// is threaded explicitly through the parser rather than captured by
// closures, and produces an immutable script.Indexes when the parse is done.
type indexBuilder struct {
	closures []script.Span
	macros   []script.MacroSpan
	commands []*script.Executor
	scopes   []*script.Scope
}

// openClosure records a closure span entry with a provisional end and
// returns its position so the caller can patch the end offset on exit.
func (b *indexBuilder) openClosure(start int) int {
	b.closures = append(b.closures, script.Span{Start: start, End: start})
	return len(b.closures) - 1
}

// closeClosure finalizes the end offset of a previously opened entry.
func (b *indexBuilder) closeClosure(idx, end int) {
	b.closures[idx].End = end
}

// addCommand records an executor together with the scope snapshot active at
// the point it was parsed.
func (b *indexBuilder) addCommand(ex *script.Executor, scope *script.Scope) {
	b.commands = append(b.commands, ex)
	b.scopes = append(b.scopes, scope.Snapshot())
}

func (b *indexBuilder) addMacro(m script.MacroSpan) {
	b.macros = append(b.macros, m)
}

// build returns the finished indexes, macro entries ordered by start offset.
func (b *indexBuilder) build() *script.Indexes {
	sort.SliceStable(b.macros, func(i, j int) bool {
		return b.macros[i].Span.Start < b.macros[j].Span.Start
	})
	return &script.Indexes{
		Closures: b.closures,
		Macros:   b.macros,
		Commands: b.commands,
		Scopes:   b.scopes,
	}
}

// macroName extracts the leading identifier of a macro body: the first
// whitespace-delimited word, itself cut at any nested macro opener.
func macroName(body []rune) string {
	s := strings.TrimLeftFunc(string(body), unicode.IsSpace)
	end := len(s)
	for i, r := range s {
		if unicode.IsSpace(r) || r == '{' || r == '}' {
			end = i
			break
		}
	}
	return s[:end]
}
