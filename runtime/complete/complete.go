// Package complete turns parse indexes into cursor suggestions: command
// names anywhere a statement can start, in-scope variable names inside
// macro spans. Ranking uses fuzzy subsequence matching so a partial or
// slightly wrong prefix still surfaces the intended name.
package complete

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/chatscript-lang/chatscript/core/script"
)

// Kind says what a suggestion would complete to.
type Kind int

const (
	KindCommand Kind = iota
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Suggestion is one ranked completion candidate.
type Suggestion struct {
	Text string
	Kind Kind
}

// Engine answers completion queries against a registry and, when present,
// the external macro engine's unclosed-macro query surface.
type Engine struct {
	reg    script.Registry
	macros script.MacroEngine
}

// New builds an engine. The macro engine may be nil; unclosed-macro queries
// then report nothing.
func New(reg script.Registry, macros script.MacroEngine) *Engine {
	return &Engine{reg: reg, macros: macros}
}

// Commands returns command names matching the prefix, best match first. An
// empty prefix returns every registered name sorted.
func (e *Engine) Commands(prefix string) []string {
	if e.reg == nil {
		return nil
	}
	return rank(prefix, e.reg.Names())
}

// Variables returns in-scope variable names at the offset, best match
// first. The scope comes from the per-executor snapshots in the indexes.
func (e *Engine) Variables(ix *script.Indexes, offset int, prefix string) []string {
	if ix == nil {
		return nil
	}
	scope := ix.ScopeAt(offset)
	if scope == nil {
		return nil
	}
	return rank(prefix, scope.Names())
}

// At suggests completions for a cursor position: variable names inside a
// macro span, command names everywhere else.
func (e *Engine) At(ix *script.Indexes, offset int, prefix string) []Suggestion {
	if ix != nil {
		if _, ok := ix.MacroAt(offset); ok {
			return tag(e.Variables(ix, offset, prefix), KindVariable)
		}
	}
	return tag(e.Commands(prefix), KindCommand)
}

// Closest returns the best single match for a name, used to turn an
// unknown-command error into a "did you mean" hint. Empty when nothing is
// close enough.
func (e *Engine) Closest(name string) string {
	if e.reg == nil {
		return ""
	}
	ranked := rank(name, e.reg.Names())
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0]
}

// UnclosedMacros asks the external macro engine for currently-unterminated
// scoped macros in the document text.
func (e *Engine) UnclosedMacros(text string) []script.UnclosedMacro {
	if e.macros == nil {
		return nil
	}
	doc := e.macros.ParseDocument(text)
	return e.macros.UnclosedScopedMacros(doc)
}

func tag(names []string, kind Kind) []Suggestion {
	out := make([]Suggestion, 0, len(names))
	for _, n := range names {
		out = append(out, Suggestion{Text: n, Kind: kind})
	}
	return out
}

// rank orders candidates by fuzzy distance to the query, ties broken
// alphabetically. An empty query keeps every candidate, sorted.
func rank(query string, candidates []string) []string {
	if query == "" {
		out := make([]string, len(candidates))
		copy(out, candidates)
		sort.Strings(out)
		return out
	}

	ranks := fuzzy.RankFindFold(query, candidates)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].Target < ranks[j].Target
	})

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	return out
}
