// Package script defines the data model produced by the command-script
// parser: closures, executors, argument values, scopes, parser flags and
// the cursor-queryable indexes built during a parse.
package script

import "strings"

// ValueKind discriminates the three argument value cases. Every consumer
// must handle all three; there is deliberately no "any" escape hatch.
type ValueKind uint8

const (
	ValueString  ValueKind = iota // Plain or quoted text
	ValueClosure                  // Nested closure passed as a value
	ValueList                     // Ordered mix of string/closure elements
)

// String returns a short name for the kind (for diagnostics and tests).
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueClosure:
		return "closure"
	case ValueList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the tagged variant held by an argument assignment.
// Exactly one of Str/Closure/List is meaningful, selected by Kind.
type Value struct {
	Kind    ValueKind
	Str     string
	Closure *Closure
	List    []Argument

	// Quoted marks a string value that came from a quoted literal.
	// Quoted elements are exempt from edge trimming and get their quote
	// characters re-added when capped splitting rejoins overflow tokens.
	Quoted bool
}

// StringValue builds a plain string value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// QuotedValue builds a string value that originated from a quoted literal.
func QuotedValue(s string) Value {
	return Value{Kind: ValueString, Str: s, Quoted: true}
}

// ClosureValue builds a closure value.
func ClosureValue(c *Closure) Value {
	return Value{Kind: ValueClosure, Closure: c}
}

// ListValue builds a list value.
func ListValue(elems []Argument) Value {
	return Value{Kind: ValueList, List: elems}
}

// Text returns the textual form of a string value, or the raw source of a
// closure value. List values render their elements space-joined.
func (v Value) Text() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueClosure:
		if v.Closure != nil {
			return v.Closure.Source
		}
		return ""
	case ValueList:
		parts := make([]string, 0, len(v.List))
		for _, a := range v.List {
			parts = append(parts, a.Value.Text())
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// Argument is one (name?, value) assignment on an executor. Name is empty
// for unnamed arguments. Span covers the assignment's raw source text.
type Argument struct {
	Name  string
	Value Value
	Span  Span
}

// Named reports whether the assignment carries a name.
func (a Argument) Named() bool {
	return a.Name != ""
}
