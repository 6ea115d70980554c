package script

// Span is a half-open [Start, End) range of rune offsets into the source
// text. All offsets produced by the parser are rune offsets so that cursor
// positions reported by chat front-ends map directly onto index entries.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the offset falls inside the span. The end offset
// is considered inside so that a cursor sitting immediately after a node
// still resolves to it during completion.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End
}

// Len returns the span length in runes.
func (s Span) Len() int {
	return s.End - s.Start
}
