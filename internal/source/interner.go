package source

import "golang.org/x/text/unicode/norm"

// StringID identifies an interned name. Two names compare equal iff their
// StringIDs compare equal, so the resolver never does a string compare once
// an identifier has been interned.
type StringID uint32

// NoStringID marks the absence of a name.
const NoStringID StringID = 0

// Interner deduplicates identifier text. Identifiers are normalized to
// Unicode NFC before interning so visually identical but differently-encoded
// source identifiers collide, matching how a real compiler front end treats
// source text as Unicode rather than raw bytes.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner creates an interner with the empty string pre-interned as
// NoStringID.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern normalizes and interns s, returning its stable StringID.
func (in *Interner) Intern(s string) StringID {
	s = norm.NFC.String(s)
	if id, ok := in.index[s]; ok {
		return id
	}
	id := StringID(len(in.byID))
	in.byID = append(in.byID, s)
	in.index[s] = id
	return id
}

// Lookup returns the text for id, or ("", false) if id was never interned.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) < 0 || int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup is Lookup but panics on an invalid id; only ever an internal
// bug, never a user-facing condition.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

// Len returns the number of interned strings, including NoStringID.
func (in *Interner) Len() int { return len(in.byID) }
