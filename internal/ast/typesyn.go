package ast

import (
	"tim/internal/source"
	"tim/internal/token"
)

// TypeExprKind tags a type expression's shape.
type TypeExprKind uint8

const (
	TypeInvalid TypeExprKind = iota
	TypePrimitive
	TypeName
	TypeNullable
	TypeReference
)

// TypeExpr is a syntactic type expression: a primitive keyword, an
// identifier or dotted path, or a `?` / `ref` decoration around an inner
// type expression.
type TypeExpr struct {
	Kind      TypeExprKind
	Span      source.Span
	Primitive token.Kind // valid when Kind == TypePrimitive
	Path      []string   // valid when Kind == TypeName
	Inner     *TypeExpr  // valid when Kind == TypeNullable or TypeReference
}
