package ast

import (
	"sablec/common"
	"sablec/report"
	"sablec/types"
)

// Literal represents a literal value.
type Literal struct {
	ExprBase

	// The token kind of the literal.
	Kind int

	// The literal's string value.
	Value string
}

// Identifier represents a named value reference.
type Identifier struct {
	ASTBase

	// The name of the identifier.
	Name string

	// The symbol the identifier refers to.  This is filled in by the walker
	// (or by the parser for variable declarations).
	Sym *common.Symbol
}

func (id *Identifier) Type() types.Type {
	return id.Sym.Type
}

/* -------------------------------------------------------------------------- */

// FieldAccess represents a struct field access, possibly through an implicitly
// dereferenced reference.
type FieldAccess struct {
	ExprBase

	// The root expression whose field is accessed.
	Root ASTExpr

	// The name of the accessed field.
	FieldName string

	// The span of the field name.
	FieldSpan *report.TextSpan

	// Whether the access reaches the field through a pinned reference.  Set by
	// the walker.
	ViaPinnedRef bool

	// Whether the accessed field is structurally pinned.  Set by the walker.
	FieldPinned bool
}

// AddressOf represents a reference-taking expression: `&e` or `&pin e`.
type AddressOf struct {
	ExprBase

	// The place whose address is taken.
	Elem ASTExpr

	// Whether a pinned reference is produced.
	Pinned bool
}

// Deref represents a reference dereference: `*e`.
type Deref struct {
	ExprBase

	// The reference being dereferenced.
	Ref ASTExpr
}

/* -------------------------------------------------------------------------- */

// UnaryOp represents a unary operator application.
type UnaryOp struct {
	ExprBase

	// The token kind of the operator.
	OpKind int

	// The operator's string representation.
	OpRepr string

	// The operand.
	Operand ASTExpr
}

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ExprBase

	// The token kind of the operator.
	OpKind int

	// The operator's string representation.
	OpRepr string

	// The operands.
	Lhs, Rhs ASTExpr
}

/* -------------------------------------------------------------------------- */

// FuncCall represents a function call.
type FuncCall struct {
	ExprBase

	// The function being called.
	Func ASTExpr

	// The arguments to the call.
	Args []ASTExpr
}

// StructLiteral represents a struct literal expression.
type StructLiteral struct {
	ExprBase

	// The opaque reference to the named struct type.
	TypeRef *types.OpaqueType

	// The field initializers in source order.
	FieldInits []StructLitField
}

// StructLitField is a single field initializer within a struct literal.
type StructLitField struct {
	// The name of the initialized field.
	Name string

	// The span of the field name.
	NameSpan *report.TextSpan

	// The initializer value.
	Value ASTExpr
}
