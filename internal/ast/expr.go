package ast

import (
	"tim/internal/source"
	"tim/internal/token"
)

// Expr is any expression node.
type Expr interface {
	exprNode()
	ExprSpan() source.Span
}

// IdentExpr is a bare identifier reference.
type IdentExpr struct {
	Span source.Span
	Name string
}

func (e *IdentExpr) exprNode()             {}
func (e *IdentExpr) ExprSpan() source.Span { return e.Span }

// MemberExpr is `target.name`.
type MemberExpr struct {
	Span     source.Span
	Target   Expr
	Name     string
	NameSpan source.Span
}

func (e *MemberExpr) exprNode()             {}
func (e *MemberExpr) ExprSpan() source.Span { return e.Span }

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Span   source.Span
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) exprNode()             {}
func (e *CallExpr) ExprSpan() source.Span { return e.Span }

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	Span  source.Span
	Op    token.Kind
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) exprNode()             {}
func (e *BinaryExpr) ExprSpan() source.Span { return e.Span }

// IntLit is an integer literal.
type IntLit struct {
	Span  source.Span
	Value string
}

func (e *IntLit) exprNode()             {}
func (e *IntLit) ExprSpan() source.Span { return e.Span }

// FloatLit is a floating-point literal.
type FloatLit struct {
	Span  source.Span
	Value string
}

func (e *FloatLit) exprNode()             {}
func (e *FloatLit) ExprSpan() source.Span { return e.Span }

// StringLit is a string literal.
type StringLit struct {
	Span  source.Span
	Value string
}

func (e *StringLit) exprNode()             {}
func (e *StringLit) ExprSpan() source.Span { return e.Span }

// BoolLit is `true` or `false`.
type BoolLit struct {
	Span  source.Span
	Value bool
}

func (e *BoolLit) exprNode()             {}
func (e *BoolLit) ExprSpan() source.Span { return e.Span }
