package parser

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes parse failures. Every kind maps to exactly one
// grammar violation; the parser never recovers locally, so a returned error
// always carries the offset where the violation was detected.
type ErrorKind int

const (
	ErrUnknownCommand ErrorKind = iota
	ErrUnclosedClosure
	ErrUnclosedComment
	ErrUnclosedBlockComment
	ErrUnterminatedQuote
	ErrUnterminatedList
	ErrUnexpectedArgumentEnd
	ErrUnexpectedCommandEnd
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownCommand:
		return "unknown command"
	case ErrUnclosedClosure:
		return "unclosed closure"
	case ErrUnclosedComment:
		return "unclosed comment"
	case ErrUnclosedBlockComment:
		return "unclosed block comment"
	case ErrUnterminatedQuote:
		return "unterminated quote"
	case ErrUnterminatedList:
		return "unterminated list"
	case ErrUnexpectedArgumentEnd:
		return "unexpected argument end"
	case ErrUnexpectedCommandEnd:
		return "unexpected command end"
	default:
		return "parse error"
	}
}

// ScriptError is a parse error carrying the full source text and the
// offending rune offset. Live-editing callers catch and discard these and
// keep their last good indexes; committed parses surface message and offset
// to the user.
type ScriptError struct {
	Kind    ErrorKind
	Message string
	Source  string
	Offset  int
}

// Error renders the message with a caret snippet pointing at the offset.
func (e *ScriptError) Error() string {
	line, col := e.position()
	snippet := e.snippet(line, col)
	if snippet == "" {
		return fmt.Sprintf("%s: %s at offset %d", e.Kind, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s\n%s", e.Kind, e.Message, snippet)
}

// position converts the rune offset into 1-based line and column.
func (e *ScriptError) position() (line, col int) {
	line, col = 1, 1
	for i, r := range []rune(e.Source) {
		if i >= e.Offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (e *ScriptError) snippet(line, col int) string {
	lines := strings.Split(e.Source, "\n")
	if line > len(lines) {
		return ""
	}
	content := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "  --> %d:%d\n", line, col)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", line, content)
	b.WriteString("   | ")
	if col > 0 && col <= len([]rune(content))+1 {
		b.WriteString(strings.Repeat(" ", col-1) + "^")
	}
	return b.String()
}

func (p *parser) errorAt(kind ErrorKind, offset int, format string, args ...any) *ScriptError {
	return &ScriptError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Source:  p.source,
		Offset:  offset,
	}
}
