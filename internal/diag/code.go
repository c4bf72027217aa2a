package diag

// Code is a closed enumeration of every diagnostic kind the resolver can
// produce. New kinds are never added ad hoc by call sites — they are named
// here first.
type Code uint16

const (
	UnknownCode Code = 0

	// Parser-reported (folded from the lexer's own diagnostics).
	SyntaxError Code = 1000

	// Signature table / scope tree.
	AlreadyDefined Code = 2000
	TypeNotFound   Code = 2001
	PathNotFound   Code = 2002

	// Module graph / imports.
	AccessibilityViolation Code = 2100
	ImportConflict         Code = 2101

	// Type resolution.
	ExpectedInterface = Code(2200)
	ExpectedClass     = Code(2201)

	// Extensions.
	DuplicateExtension                = Code(2300)
	InterfaceImplementationIncomplete = Code(2301)

	// Type decorators.
	RedundantNullable  = Code(2400)
	NullableReference  = Code(2401)
	RedundantReference = Code(2402)

	// Call-site checks.
	FunctionCallArgumentCountMismatch = Code(2500)
	TypeMismatch                      = Code(2501)

	// Registry.
	DuplicateSource = Code(2600)

	// Ambient warnings, additive and non-blocking.
	UnusedImport        = Code(9000)
	ShadowedDeclaration = Code(9001)
)

var codeNames = map[Code]string{
	UnknownCode:                        "unknown",
	SyntaxError:                        "syntax_error",
	AlreadyDefined:                     "already_defined",
	TypeNotFound:                       "type_not_found",
	PathNotFound:                       "path_not_found",
	AccessibilityViolation:             "accessibility_violation",
	ImportConflict:                     "import_conflict",
	ExpectedInterface:                  "expected_interface",
	ExpectedClass:                      "expected_class",
	DuplicateExtension:                 "duplicate_extension",
	InterfaceImplementationIncomplete:  "interface_implementation_incomplete",
	RedundantNullable:                  "redundant_nullable",
	NullableReference:                  "nullable_reference",
	RedundantReference:                 "redundant_reference",
	FunctionCallArgumentCountMismatch:  "function_call_argument_count_mismatch",
	TypeMismatch:                       "type_mismatch",
	DuplicateSource:                    "duplicate_source",
	UnusedImport:                       "unused_import",
	ShadowedDeclaration:                "shadowed_declaration",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}
