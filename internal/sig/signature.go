package sig

import "tim/internal/source"

// Kind tags which variant a Signature holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindNullable
	KindReference
	KindClass
	KindInterface
	KindFunction
	KindExtension
	KindModule
	KindStatic
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindNullable:
		return "nullable"
	case KindReference:
		return "reference"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindFunction:
		return "function"
	case KindExtension:
		return "extension"
	case KindModule:
		return "module"
	case KindStatic:
		return "static"
	default:
		return "invalid"
	}
}

// Primitive enumerates the built-in primitive types.
type Primitive uint8

const (
	PrimInvalid Primitive = iota
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimFloat
	PrimDouble
	PrimBool
	PrimString
	PrimVoid
)

func (p Primitive) String() string {
	names := map[Primitive]string{
		PrimI8: "i8", PrimI16: "i16", PrimI32: "i32", PrimI64: "i64",
		PrimU8: "u8", PrimU16: "u16", PrimU32: "u32", PrimU64: "u64",
		PrimFloat: "float", PrimDouble: "double", PrimBool: "bool",
		PrimString: "string", PrimVoid: "void",
	}
	if n, ok := names[p]; ok {
		return n
	}
	return "invalid"
}

// FuncKind distinguishes how a Function signature is attached to the
// program: as a free function, a class method, or an extension method.
type FuncKind uint8

const (
	FuncFree FuncKind = iota
	FuncMethod
	FuncExtensionMethod
)

// Field describes one class or interface field.
type Field struct {
	Name       source.StringID
	Type       Handle
	Span       source.Span
	Public     bool
	HasDefault bool
}

// Param describes one function parameter.
type Param struct {
	Name    source.StringID
	Type    Handle
	IsThis  bool
}

// RequiredMethod is an interface's bodiless method requirement: a name,
// parameter type sequence and return type. An extension satisfies this
// requirement when it provides a method of the same name, same arity,
// pairwise-equal parameter type handles, and an equal return type handle.
type RequiredMethod struct {
	Name   source.StringID
	Span   source.Span
	Params []Param
	Return Handle
}

// Signature is a tagged union over every kind of resolved type or binding.
// Only the fields relevant to Kind are meaningful; a single arena-backed
// struct carries every variant instead of a Go interface per variant, so
// Fill can replace a shell in a single write.
type Signature struct {
	Kind Kind

	// Identity, shared by every named (non-decorator) variant.
	Name       source.StringID
	DeclModule source.FileID
	Span       source.Span
	Public     bool

	// KindPrimitive
	Primitive Primitive

	// KindNullable, KindReference: the decorated type.
	// KindStatic: the static variable's declared type.
	Inner Handle

	// KindClass
	Fields     []Field
	Methods    []Handle // Function handles
	Implements map[Handle]bool

	// KindInterface
	ReqFields  []Field
	ReqMethods []RequiredMethod
	Parent     Handle // NoHandle if no parent interface

	// KindFunction
	Params   []Param
	Return   Handle
	FuncKind FuncKind
	Receiver Handle // enclosing class/extension target, if FuncKind != FuncFree

	// KindExtension
	Target    Handle // class
	Interface Handle
	Bindings  []Handle // every method defined in the extension body

	// KindModule
	File source.FileID
	// Exports holds only the pub declarations, keyed by name — what a
	// wildcard import pulls in.
	Exports map[source.StringID]Handle
	// AllMembers holds every top-level declaration, public or not, keyed
	// by name — what a qualified lookup checks first, so a private member
	// reports accessibility_violation instead of looking like it doesn't
	// exist at all.
	AllMembers map[source.StringID]Handle

	// fillBit distinguishes a filled signature from a freshly reserved
	// shell, independent of whether the filled fields happen to be zero
	// (a void no-arg function looks the same as an unfilled shell
	// otherwise).
	fillBit bool
}
