// Package scriptfmt encodes a completed parse into a deterministic binary
// snapshot: a canonical CBOR body plus a BLAKE2b-256 content hash. Tooling
// uses the hash to key caches of "last good" parse results, so the same
// script text must always produce the same bytes.
package scriptfmt

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/chatscript-lang/chatscript/core/script"
)

// Snapshot is the encodable view of one parse result.
type Snapshot struct {
	Source string
	Root   *script.Closure
	Index  *script.Indexes
}

// CanonicalSnapshot is the intermediate form for deterministic encoding.
// It carries no pointers into live parser state and no interface values, so
// CBOR canonical mode yields byte-identical output for equal parses.
type CanonicalSnapshot struct {
	Version  uint8
	Source   string
	Root     CanonicalClosure
	Closures []CanonicalSpan
	Macros   []CanonicalMacro
}

// CanonicalSpan mirrors script.Span.
type CanonicalSpan struct {
	Start int
	End   int
}

// CanonicalMacro is one indexed macro occurrence.
type CanonicalMacro struct {
	Span CanonicalSpan
	Name string
}

// CanonicalClosure is a closure in canonical form. Names holds the
// effective variable set of the closure's scope in declaration order.
type CanonicalClosure struct {
	Params []string
	Span   CanonicalSpan
	Invoke bool
	Names  []string
	Body   []CanonicalExecutor
}

// CanonicalExecutor is one statement in canonical form.
type CanonicalExecutor struct {
	Name       string
	PipeInput  bool
	Break      bool
	Breakpoint bool
	Synthetic  bool
	RunTarget  string
	Span       CanonicalSpan
	BreakValue *CanonicalValue
	Named      []CanonicalArg
	Unnamed    []CanonicalArg
}

// CanonicalArg is one argument assignment in canonical form.
type CanonicalArg struct {
	Key   string
	Value CanonicalValue
}

// CanonicalValue is the tagged value variant in canonical form.
type CanonicalValue struct {
	Kind    uint8
	Str     string
	Quoted  bool
	Closure *CanonicalClosure
	List    []CanonicalArg
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em
}

// Canonicalize converts a snapshot into canonical form.
func Canonicalize(s *Snapshot) *CanonicalSnapshot {
	cs := &CanonicalSnapshot{
		Version: 1,
		Source:  s.Source,
		Root:    canonicalizeClosure(s.Root),
	}
	if s.Index != nil {
		cs.Closures = make([]CanonicalSpan, 0, len(s.Index.Closures))
		for _, sp := range s.Index.Closures {
			cs.Closures = append(cs.Closures, canonicalizeSpan(sp))
		}
		cs.Macros = make([]CanonicalMacro, 0, len(s.Index.Macros))
		for _, m := range s.Index.Macros {
			cs.Macros = append(cs.Macros, CanonicalMacro{
				Span: canonicalizeSpan(m.Span),
				Name: m.Name,
			})
		}
	}
	return cs
}

func canonicalizeSpan(sp script.Span) CanonicalSpan {
	return CanonicalSpan{Start: sp.Start, End: sp.End}
}

func canonicalizeClosure(c *script.Closure) CanonicalClosure {
	if c == nil {
		return CanonicalClosure{}
	}
	cc := CanonicalClosure{
		Params: c.Params,
		Span:   canonicalizeSpan(c.Span),
		Invoke: c.Invoke,
	}
	if c.Scope != nil {
		cc.Names = c.Scope.Names()
	}
	cc.Body = make([]CanonicalExecutor, 0, len(c.Body))
	for _, ex := range c.Body {
		cc.Body = append(cc.Body, canonicalizeExecutor(ex))
	}
	return cc
}

func canonicalizeExecutor(ex *script.Executor) CanonicalExecutor {
	ce := CanonicalExecutor{
		Name:       ex.Name,
		PipeInput:  ex.PipeInput,
		Break:      ex.Break,
		Breakpoint: ex.Breakpoint,
		Synthetic:  ex.Synthetic,
		RunTarget:  ex.RunTarget,
		Span:       canonicalizeSpan(ex.Span),
		Named:      canonicalizeArgs(ex.Named),
		Unnamed:    canonicalizeArgs(ex.Unnamed),
	}
	if ex.BreakValue != nil {
		v := canonicalizeValue(*ex.BreakValue)
		ce.BreakValue = &v
	}
	return ce
}

func canonicalizeArgs(args []script.Argument) []CanonicalArg {
	if len(args) == 0 {
		return nil
	}
	out := make([]CanonicalArg, 0, len(args))
	for _, a := range args {
		out = append(out, CanonicalArg{Key: a.Name, Value: canonicalizeValue(a.Value)})
	}
	return out
}

func canonicalizeValue(v script.Value) CanonicalValue {
	cv := CanonicalValue{
		Kind:   uint8(v.Kind),
		Str:    v.Str,
		Quoted: v.Quoted,
	}
	if v.Closure != nil {
		cc := canonicalizeClosure(v.Closure)
		cv.Closure = &cc
	}
	if len(v.List) > 0 {
		cv.List = canonicalizeArgs(v.List)
	}
	return cv
}
