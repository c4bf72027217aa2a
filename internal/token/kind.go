package token

// Kind classifies a lexical token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLiteral
	FloatLiteral
	StringLiteral

	// Keywords.
	KwClass
	KwInterface
	KwExtend
	KwFunc
	KwPub
	KwStatic
	KwUse
	KwAs
	KwThis
	KwLet
	KwReturn
	KwTrue
	KwFalse
	KwRef

	// Primitive type keywords.
	KwI8
	KwI16
	KwI32
	KwI64
	KwU8
	KwU16
	KwU32
	KwU64
	KwFloat
	KwDouble
	KwBool
	KwString
	KwVoid

	// Punctuation.
	LBrace
	RBrace
	LParen
	RParen
	Colon
	Comma
	Semicolon
	Dot
	Question
	Star
	Assign
	Eq
	Plus
	Minus
	Slash
	At
)

var keywords = map[string]Kind{
	"class":     KwClass,
	"interface": KwInterface,
	"extend":    KwExtend,
	"func":      KwFunc,
	"pub":       KwPub,
	"static":    KwStatic,
	"use":       KwUse,
	"as":        KwAs,
	"this":      KwThis,
	"let":       KwLet,
	"return":    KwReturn,
	"true":      KwTrue,
	"false":     KwFalse,
	"ref":       KwRef,
	"i8":        KwI8,
	"i16":       KwI16,
	"i32":       KwI32,
	"i64":       KwI64,
	"u8":        KwU8,
	"u16":       KwU16,
	"u32":       KwU32,
	"u64":       KwU64,
	"float":     KwFloat,
	"double":    KwDouble,
	"bool":      KwBool,
	"string":    KwString,
	"void":      KwVoid,
}

// Lookup classifies an identifier as a keyword, or reports Ident otherwise.
func Lookup(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

// IsPrimitiveKeyword reports whether k is one of the built-in type keywords.
func IsPrimitiveKeyword(k Kind) bool {
	switch k {
	case KwI8, KwI16, KwI32, KwI64, KwU8, KwU16, KwU32, KwU64, KwFloat, KwDouble, KwBool, KwString, KwVoid:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case IntLiteral:
		return "integer literal"
	case FloatLiteral:
		return "float literal"
	case StringLiteral:
		return "string literal"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case Semicolon:
		return "';'"
	case Dot:
		return "'.'"
	case Question:
		return "'?'"
	case Star:
		return "'*'"
	case Assign:
		return "'='"
	case Eq:
		return "'=='"
	case Plus:
		return "'+'"
	case Minus:
		return "'-'"
	case Slash:
		return "'/'"
	case At:
		return "'@'"
	default:
		for text, kw := range keywords {
			if kw == k {
				return "'" + text + "'"
			}
		}
		return "invalid token"
	}
}
