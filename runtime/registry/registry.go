// Package registry provides the command registry consulted by the parser:
// an in-memory table of command specs with optional JSON definition loading.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/chatscript-lang/chatscript/core/script"
)

// Registry is a concurrency-safe command table implementing script.Registry.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]*script.CommandSpec
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{specs: make(map[string]*script.CommandSpec)}
}

// Builtin returns a registry pre-loaded with the commands the parser gives
// special treatment: variable declaration, imports, the legacy getters and
// the pipe-value return.
func Builtin() *Registry {
	r := New()
	for _, spec := range []*script.CommandSpec{
		{Name: "let", MinArgs: 1, MaxArgs: 2},
		{Name: "import", MinArgs: 1, MaxArgs: 1},
		{Name: "getvar", MinArgs: 1, MaxArgs: 1},
		{Name: "getglobalvar", MinArgs: 1, MaxArgs: 1},
		{Name: "return", MaxArgs: 1},
	} {
		// Builtin specs are static, Register cannot fail on them.
		_ = r.Register(spec)
	}
	return r
}

// Register adds or replaces a command spec.
func (r *Registry) Register(spec *script.CommandSpec) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("command spec must carry a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[spec.Name] = spec
	return nil
}

// Lookup implements script.Registry.
func (r *Registry) Lookup(name string) (*script.CommandSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[name]
	return spec, ok
}

// Names implements script.Registry, sorted for stable output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.specs))
	for n := range r.specs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
