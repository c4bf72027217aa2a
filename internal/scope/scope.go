// Package scope implements the lexical scope tree used to bind names to
// signature handles while resolving a module: a parent-chain hierarchy with
// local-map-wins shadowing and plain single-name lookup. Dotted (qualified)
// names are resolved by the resolver on top of this lookup.
package scope

import "tim/internal/source"

// ID is an opaque index into a Tree's scope arena.
type ID uint32

// NoID marks the absence of a scope.
const NoID ID = 0

// IsValid reports whether id refers to an allocated scope.
func (id ID) IsValid() bool { return id != NoID }

// Kind distinguishes the scope categories a module resolution walks through.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindModule        // one per source file, holds its top-level declarations
	KindClass         // a class or extension body, parent of its method scopes
	KindInterface
	KindFunction // a function body, holds parameters and locals
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindFunction:
		return "function"
	default:
		return "invalid"
	}
}

// Binding is what a name resolves to within a scope: the handle it was
// bound to, where it was declared, and whether it is visible outside its
// declaring module.
//
// IsValue distinguishes a binding that names a type/module/function/static
// variable (Handle is that entity's own signature handle) from a binding
// that names a value — a parameter, local, or `this` (Handle is the *type
// of* that value). A child scope's binding always shadows an outer one with the
// same name during lookup, which is what makes a local value binding win
// over an enclosing type of the same name without any special-casing.
type Binding struct {
	Name    source.StringID
	Handle  uint32 // a sig.Handle, stored untyped to avoid an import cycle
	Span    source.Span
	Public  bool
	IsValue bool
}

// Scope is one node of the lexical hierarchy.
type Scope struct {
	Kind     Kind
	Parent   ID
	Span     source.Span
	names    map[source.StringID]Binding
	Children []ID
}

// Tree is the arena of all scopes resolved so far, across every module.
type Tree struct {
	scopes []Scope
}

// NewTree creates an empty scope tree.
func NewTree() *Tree {
	return NewTreeWithCapacity(64)
}

// NewTreeWithCapacity creates an empty scope tree pre-sized to hold roughly
// cap scopes without reallocating. Behaves identically to NewTree; only the
// arena's starting capacity differs.
func NewTreeWithCapacity(cap int) *Tree {
	if cap < 1 {
		cap = 1
	}
	return &Tree{scopes: make([]Scope, 1, cap)} // index 0 reserved for NoID
}

// New allocates a child scope of parent (or a root scope, if parent is
// NoID) and returns its ID.
func (t *Tree) New(kind Kind, parent ID, span source.Span) ID {
	id := ID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{
		Kind:   kind,
		Parent: parent,
		Span:   span,
		names:  make(map[source.StringID]Binding),
	})
	if parent.IsValid() {
		if p := t.Get(parent); p != nil {
			p.Children = append(p.Children, id)
		}
	}
	return id
}

// Get returns the scope pointer for id, or nil if id is invalid.
func (t *Tree) Get(id ID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Define binds name to b within scope id. It reports whether a binding for
// name already existed directly in this scope (the caller turns that into
// an already-defined diagnostic); it does not consult parent scopes, since
// shadowing an outer name is legal.
func (t *Tree) Define(id ID, name source.StringID, b Binding) (previous Binding, alreadyDefined bool) {
	s := t.Get(id)
	if s == nil {
		return Binding{}, false
	}
	if existing, ok := s.names[name]; ok {
		return existing, true
	}
	b.Name = name
	s.names[name] = b
	return Binding{}, false
}

// Lookup searches scope id and its ancestors for name, returning the
// nearest (most local) binding. A binding in a child scope always wins over
// one with the same name further up the chain.
func (t *Tree) Lookup(id ID, name source.StringID) (Binding, bool) {
	for cur := id; cur.IsValid(); {
		s := t.Get(cur)
		if s == nil {
			break
		}
		if b, ok := s.names[name]; ok {
			return b, true
		}
		cur = s.Parent
	}
	return Binding{}, false
}

// LookupLocal searches only scope id itself, without walking to parents.
func (t *Tree) LookupLocal(id ID, name source.StringID) (Binding, bool) {
	s := t.Get(id)
	if s == nil {
		return Binding{}, false
	}
	b, ok := s.names[name]
	return b, ok
}

// Names returns every name bound directly in scope id, for callers that
// need to enumerate a class's fields and methods or an interface's
// requirements. The returned slice is not sorted; callers needing
// deterministic order must sort it themselves.
func (t *Tree) Names(id ID) []source.StringID {
	s := t.Get(id)
	if s == nil {
		return nil
	}
	names := make([]source.StringID, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	return names
}

// Len reports the number of allocated scopes, excluding the sentinel.
func (t *Tree) Len() int { return len(t.scopes) - 1 }
