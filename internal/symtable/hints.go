// Package symtable holds capacity hints for the resolver's arena-backed
// tables. Sizing them ahead of time avoids the repeated slice growth a
// large multi-file compile would otherwise pay for in internal/sig's
// signature table and internal/scope's scope tree; it never changes what
// either arena produces, only how many times it reallocates while doing so.
package symtable

// Hints estimates starting capacities from the shape of a compile's input.
// The zero value is safe and simply falls back to each arena's own default.
type Hints struct {
	// Signatures estimates how many signature-table entries the compile
	// will reserve: roughly one per top-level declaration plus every
	// nullable/reference wrapper and interned primitive.
	Signatures int
	// Scopes estimates how many scope-tree nodes the compile will
	// allocate: one module scope per file plus one per function/method
	// body and block.
	Scopes int
}

// EstimateFromFileCount derives rough hints from a file count and total
// source size, on the assumption that declaration density stays roughly
// constant across files of a similar project. The constants here are tuned
// to overshoot slightly rather than undershoot, since the cost of spare
// capacity is far cheaper than the cost of a reallocation mid-resolve.
func EstimateFromFileCount(files int, totalBytes int) Hints {
	if files <= 0 {
		return Hints{}
	}
	// A declaration rarely fits in fewer than 40 bytes of source; each
	// declaration contributes on average a handful of signature-table
	// entries (itself, its params/fields, any nullable/reference wraps).
	decls := totalBytes / 40
	if decls < files {
		decls = files
	}
	return Hints{
		Signatures: decls*4 + 16,
		Scopes:     decls*2 + files + 8,
	}
}
