package parser

import "unicode"

// scanner is a cursor-based view over the source runes. It owns the two
// pieces of escape state the grammar depends on: the one-time escape-skip
// flag and the resolved-literal watermark. Every delimiter test in the
// grammar goes through testSymbol, so both escaping modes live here and
// nowhere else.
type scanner struct {
	src []rune
	pos int

	// jumped records that one escaping backslash has already been skipped
	// for the escape run at the current position. Reset by take.
	jumped bool

	// literalUntil marks the end of a region already resolved as literal
	// text by an earlier escape decision. Symbol tests inside the region
	// report no match, which is how an escaped delimiter gets consumed as
	// plain text.
	literalUntil int
}

func newScanner(src string) *scanner {
	return &scanner{src: []rune(src)}
}

// rest returns the unconsumed text ahead of the cursor.
func (s *scanner) rest() string {
	if s.pos >= len(s.src) {
		return ""
	}
	return string(s.src[s.pos:])
}

// behind returns the consumed text behind the cursor.
func (s *scanner) behind() string {
	if s.pos > len(s.src) {
		return string(s.src)
	}
	return string(s.src[:s.pos])
}

// cur returns the current character, or 0 at end of input.
func (s *scanner) cur() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// eot reports end-of-text: true at real end of input, or when the current
// character is whitespace and only whitespace remains. The second condition
// lets callers treat "whitespace then end" as already finished without
// consuming it.
func (s *scanner) eot() bool {
	if s.pos >= len(s.src) {
		return true
	}
	if !unicode.IsSpace(s.src[s.pos]) {
		return false
	}
	for i := s.pos; i < len(s.src); i++ {
		if !unicode.IsSpace(s.src[i]) {
			return false
		}
	}
	return true
}

// take consumes and returns the current character. Consuming resets the
// one-time escape-skip flag.
func (s *scanner) take() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	r := s.src[s.pos]
	s.pos++
	s.jumped = false
	return r
}

// takeSymbol consumes a symbol previously confirmed by testSymbol.
func (s *scanner) takeSymbol(sym string) {
	s.pos += len([]rune(sym))
	s.jumped = false
}

// skipSpace consumes consecutive whitespace.
func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && unicode.IsSpace(s.src[s.pos]) {
		s.take()
	}
}

// hasAt reports whether sym appears verbatim at rune offset p, with no
// escape handling.
func (s *scanner) hasAt(p int, sym string) bool {
	runes := []rune(sym)
	if p < 0 || p+len(runes) > len(s.src) {
		return false
	}
	for i, r := range runes {
		if s.src[p+i] != r {
			return false
		}
	}
	return true
}

// testSymbol decides whether sym occurs at index+offset, honoring the
// backslash-escaping rules. A run of backslashes starting at the candidate
// position and immediately followed by sym is an escape prefix:
//
//   - strict mode: backslash pairs collapse left to right, each pair leaving
//     one literal backslash; an unpaired trailing backslash escapes sym, an
//     even run leaves sym active;
//   - loose mode: any run escapes it (only the single backslash immediately
//     before sym carries meaning, the rest is literal text).
//
// The first time an escape prefix is observed at offset 0, the cursor is
// advanced past one escaping backslash and the resolved region is recorded
// in literalUntil: one pair in strict mode, so the rest of the run is tested
// again pair by pair, or the whole run plus the escaped sym otherwise. The
// skip is guarded by the jumped flag, which take resets.
func (s *scanner) testSymbol(sym string, offset int, strict bool) bool {
	p := s.pos + offset

	// Inside a region already resolved as literal nothing matches.
	if p < s.literalUntil {
		return false
	}

	if s.hasAt(p, sym) {
		return true
	}

	// Count the backslash run starting at the candidate position.
	n := 0
	for s.hasAt(p+n, "\\") {
		n++
	}
	if n == 0 || !s.hasAt(p+n, sym) {
		return false
	}

	if offset == 0 && !s.jumped {
		// Skip one escaping backslash. In the pair case only the pair's
		// second backslash becomes literal; otherwise the run and the escaped
		// symbol resolve in one step.
		s.pos++
		s.jumped = true
		if strict && n >= 2 {
			s.literalUntil = p + 2
		} else {
			s.literalUntil = p + n + len([]rune(sym))
		}
	}
	return false
}
