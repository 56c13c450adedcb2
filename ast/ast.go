package ast

import (
	"sablec/report"
	"sablec/types"
)

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

/* -------------------------------------------------------------------------- */

// ASTExpr is the abstract interface for all AST expression nodes.
type ASTExpr interface {
	ASTNode

	// The yielded type of the expression.
	Type() types.Type
}

// ExprBase is a utility base struct for most expression nodes.
type ExprBase struct {
	ASTBase

	// The yielded type of the expression.  This is filled in by the walker.
	NodeType types.Type
}

// NewExprBase creates a new expression base with the given span.
func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span)}
}

// NewTypedExprBase creates a new expression base with the given span and type.
func NewTypedExprBase(span *report.TextSpan, typ types.Type) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span), NodeType: typ}
}

func (eb *ExprBase) Type() types.Type {
	return eb.NodeType
}

/* -------------------------------------------------------------------------- */

// AnnotValue represents the value of an annotation.
type AnnotValue struct {
	// The string argument of the annotation: empty if no argument was given.
	Value string

	// The span of the annotation name.
	NameSpan *report.TextSpan

	// The span of the annotation argument.  Nil if no argument was given.
	ValSpan *report.TextSpan
}
