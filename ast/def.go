package ast

import (
	"sablec/common"
	"sablec/report"
)

// FuncDef is an AST node for a function definition.
type FuncDef struct {
	ASTBase

	// The symbol defined by the function.
	Symbol *common.Symbol

	// The parameter symbols of the function.
	Params []*common.Symbol

	// The body of the function.
	Body ASTNode

	// The annotations applied to the function.
	Annotations map[string]AnnotValue
}

// StructDef is an AST node for a structure definition.
type StructDef struct {
	ASTBase

	// The symbol defined by the structure.
	Symbol *common.Symbol

	// The annotations applied to the structure.
	Annotations map[string]AnnotValue

	// The spans of the `pin` markers applied to fields, keyed by field name.
	PinSpans map[string]*report.TextSpan
}
