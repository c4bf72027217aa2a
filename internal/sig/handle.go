// Package sig implements the signature table: a grow-only, index-addressed
// store of type signatures. Handles are dense integers and are the single
// source of truth about type identity — structural equality of types
// reduces to handle equality because decorators and named types are each
// interned exactly once.
package sig

// Handle is an opaque index into the signature table. It is cheap to copy
// and the indirection it provides is what lets two classes reference each
// other (in fields, parameters, or return types) without a heap cycle.
type Handle uint32

// NoHandle marks the absence of a signature reference.
const NoHandle Handle = 0

// IsValid reports whether h refers to an allocated signature.
func (h Handle) IsValid() bool { return h != NoHandle }
