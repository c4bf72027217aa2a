package sig

import (
	"fmt"

	"fortio.org/safecast"

	"tim/internal/source"
)

// Table is the grow-only, index-addressed signature store. Handles, once
// issued, never dangle and never change target; a first pass reserves shells
// so forward references have something to point at, and a second pass turns
// each shell into a complete signature with exactly one Fill.
type Table struct {
	entries []Signature

	primitives map[Primitive]Handle
	nullables  map[Handle]Handle // inner -> Nullable(inner)
	references map[Handle]Handle // inner -> Reference(inner)
}

// NewTable creates an empty signature table.
func NewTable() *Table {
	return NewTableWithCapacity(64)
}

// NewTableWithCapacity creates an empty signature table pre-sized to hold
// roughly cap entries without reallocating. Purely a performance knob: a
// table created this way behaves identically to NewTable, just with fewer
// slice growths on a large multi-file compile.
func NewTableWithCapacity(cap int) *Table {
	if cap < 1 {
		cap = 1
	}
	return &Table{
		entries:    make([]Signature, 1, cap), // index 0 reserved for NoHandle
		primitives: make(map[Primitive]Handle),
		nullables:  make(map[Handle]Handle),
		references: make(map[Handle]Handle),
	}
}

// InternPrimitive returns the handle for a built-in primitive type,
// allocating it on first use. Idempotent: asking twice for the same kind
// returns the same handle.
func (t *Table) InternPrimitive(p Primitive) Handle {
	if h, ok := t.primitives[p]; ok {
		return h
	}
	h := t.alloc(Signature{Kind: KindPrimitive, Primitive: p})
	t.primitives[p] = h
	return h
}

// Reserve inserts a shell entry for a named, not-yet-filled signature and
// returns its handle. This is what lets a class reference itself, or two
// classes reference each other, before either body has been resolved.
func (t *Table) Reserve(kind Kind, declModule source.FileID, name source.StringID, span source.Span) Handle {
	return t.alloc(Signature{
		Kind:       kind,
		Name:       name,
		DeclModule: declModule,
		Span:       span,
	})
}

// Fill replaces a shell with its complete signature. full.Kind must match the
// shell's reserved Kind. Filling an already-filled handle (other than via the
// narrowly-scoped extension-set mutation in MarkImplements) is a programmer
// error: a double-fill indicates the resolver tried to resolve the same
// declaration twice, which should never happen, so it panics rather than
// becoming a user-facing diagnostic.
func (t *Table) Fill(h Handle, full Signature) {
	if !h.IsValid() || int(h) >= len(t.entries) {
		panic(fmt.Sprintf("sig: Fill of invalid handle %d", h))
	}
	cur := &t.entries[h]
	if cur.filled() {
		panic(fmt.Sprintf("sig: double-fill of handle %d (%s %q)", h, cur.Kind, t.nameOf(cur)))
	}
	if cur.Kind != full.Kind {
		panic(fmt.Sprintf("sig: Fill kind mismatch for handle %d: reserved %s, filled %s", h, cur.Kind, full.Kind))
	}
	full.Name = cur.Name
	full.DeclModule = cur.DeclModule
	full.Span = cur.Span
	full.Kind = cur.Kind
	t.entries[h] = full
	t.entries[h].markFilled()
}

func (t *Table) nameOf(s *Signature) string {
	return fmt.Sprintf("#%d", s.Name)
}

// Lookup returns the signature for h. Infallible after a successful Fill;
// panics on an invalid handle since that is always an internal bug.
func (t *Table) Lookup(h Handle) *Signature {
	if !h.IsValid() || int(h) >= len(t.entries) {
		panic(fmt.Sprintf("sig: Lookup of invalid handle %d", h))
	}
	return &t.entries[h]
}

// IsFilled reports whether h has received its Fill yet.
func (t *Table) IsFilled(h Handle) bool {
	if !h.IsValid() || int(h) >= len(t.entries) {
		return false
	}
	return t.entries[h].filled()
}

// WrapNullable returns the Nullable(inner) handle, allocating it on first
// request. Deduplicated: asking twice for the same inner handle returns the
// same handle, so structural equality of two nullable types reduces to
// handle equality.
func (t *Table) WrapNullable(inner Handle) Handle {
	if h, ok := t.nullables[inner]; ok {
		return h
	}
	h := t.alloc(Signature{Kind: KindNullable, Inner: inner})
	t.entries[h].markFilled()
	t.nullables[inner] = h
	return h
}

// WrapReference returns the Reference(inner) handle, allocating it on first
// request, deduplicated exactly like WrapNullable.
func (t *Table) WrapReference(inner Handle) Handle {
	if h, ok := t.references[inner]; ok {
		return h
	}
	h := t.alloc(Signature{Kind: KindReference, Inner: inner})
	t.entries[h].markFilled()
	t.references[inner] = h
	return h
}

// MarkImplements records that a class implements an interface. Together
// with the extension resolver appending an extension's methods to the
// class's Methods, this is the only change made to an already-filled Class
// signature; the caller
// (the extension resolver) is responsible for the duplicate-extension
// uniqueness check that makes it safe to call at most once per
// (class, interface) pair.
func (t *Table) MarkImplements(class, iface Handle) {
	s := &t.entries[class]
	if s.Implements == nil {
		s.Implements = make(map[Handle]bool)
	}
	s.Implements[iface] = true
}

// Implements reports whether class already implements iface.
func (t *Table) Implements(class, iface Handle) bool {
	s := &t.entries[class]
	return s.Implements != nil && s.Implements[iface]
}

// Len reports the number of allocated signatures, excluding the sentinel.
func (t *Table) Len() int { return len(t.entries) - 1 }

func (t *Table) alloc(s Signature) Handle {
	value, err := safecast.Conv[uint32](len(t.entries))
	if err != nil {
		panic(fmt.Errorf("sig: table overflow: %w", err))
	}
	h := Handle(value)
	t.entries = append(t.entries, s)
	return h
}

func (s *Signature) filled() bool { return s.fillBit }
func (s *Signature) markFilled()  { s.fillBit = true }
