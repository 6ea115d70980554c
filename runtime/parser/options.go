package parser

import (
	"strconv"

	"github.com/chatscript-lang/chatscript/core/script"
)

// Option configures a single Parse call.
type Option func(*config)

type config struct {
	registry script.Registry
	flags    script.Flags
	verify   bool
	abort    script.AbortSignal
	debug    script.DebugController
	tempName func() string
}

func defaultConfig() *config {
	n := 0
	return &config{
		verify: true,
		tempName: func() string {
			n++
			return "__cs_tmp" + strconv.Itoa(n)
		},
	}
}

// WithRegistry supplies the command registry used to resolve command names
// at parse time. Without one, every executor's Command stays nil and
// verification treats all names as unknown.
func WithRegistry(r script.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithFlags overrides the ambient default parser flags for this parse. The
// /parser-flag pseudo-command can still change them mid-document.
func WithFlags(f script.Flags) Option {
	return func(c *config) { c.flags = f }
}

// WithoutVerification switches to the lenient mode used while a user is
// still typing: unknown commands and end-of-input checks are suppressed.
// Structural errors such as unterminated lists are still raised.
func WithoutVerification() Option {
	return func(c *config) { c.verify = false }
}

// WithAbortSignal attaches an abort handle to every produced executor. The
// parser never interprets it.
func WithAbortSignal(a script.AbortSignal) Option {
	return func(c *config) { c.abort = a }
}

// WithDebugController attaches a debug controller to every produced
// executor and enables recording of /breakpoint statements.
func WithDebugController(d script.DebugController) Option {
	return func(c *config) { c.debug = d }
}

// WithTempNames injects the unique-name generator used by the legacy getter
// rewrite. The default is a per-parse counter, which keeps parses
// reproducible; tests can inject a fixed sequence.
func WithTempNames(gen func() string) Option {
	return func(c *config) { c.tempName = gen }
}
