package script

// Scope tracks the variable names declared by one closure. Lookups walk the
// parent chain, so a child's effective set is the union of its own names and
// every ancestor's. The parser keeps one mutable current scope while the
// index stores immutable snapshots, one per executor.
type Scope struct {
	names  []string            // declaration order, this scope only
	member map[string]struct{} // fast membership, this scope only
	parent *Scope
}

// NewScope creates a scope parented to the given scope (nil for the root).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		member: make(map[string]struct{}),
		parent: parent,
	}
}

// Declare registers a variable name in this scope. Re-declaring an existing
// name is a no-op so declaration order stays stable.
func (s *Scope) Declare(name string) {
	if name == "" {
		return
	}
	if _, ok := s.member[name]; ok {
		return
	}
	s.member[name] = struct{}{}
	s.names = append(s.names, name)
}

// Has reports whether the name is declared in this scope or any ancestor.
func (s *Scope) Has(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.member[name]; ok {
			return true
		}
	}
	return false
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Names returns the effective variable set, innermost declarations first.
// Ancestor names shadowed by a local declaration appear once.
func (s *Scope) Names() []string {
	var out []string
	seen := make(map[string]struct{})
	for cur := s; cur != nil; cur = cur.parent {
		for _, n := range cur.names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}

// Snapshot returns a shallow copy of this scope: its own name set is copied,
// the parent link is shared. Later declarations in the live scope do not
// show up in the snapshot, which is what the per-executor index needs.
func (s *Scope) Snapshot() *Scope {
	cp := &Scope{
		names:  make([]string, len(s.names)),
		member: make(map[string]struct{}, len(s.member)),
		parent: s.parent,
	}
	copy(cp.names, s.names)
	for n := range s.member {
		cp.member[n] = struct{}{}
	}
	return cp
}
