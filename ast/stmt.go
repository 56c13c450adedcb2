package ast

// VarDecl represents a variable declaration.
type VarDecl struct {
	ASTBase

	// The list of variable declaration lists.
	VarLists []VarList
}

// VarList represents a single collection of variables sharing a common type
// label and/or initializer.
type VarList struct {
	Vars        []*Identifier
	Initializer ASTExpr
}

// Assignment represents an assignment statement.
type Assignment struct {
	ASTBase

	// The LHS place being assigned to.
	LHSVar ASTExpr

	// The RHS expression.
	RHSExpr ASTExpr
}

/* -------------------------------------------------------------------------- */

// KeywordStmt represents a single keyword control flow statement (eg. `break`).
type KeywordStmt struct {
	ASTBase

	// The token kind of the keyword.
	Kind int
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	ASTBase

	// The expression being returned.  May be nil for a bare return.
	Expr ASTExpr
}
