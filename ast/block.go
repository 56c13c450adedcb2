package ast

// Block represents a list of AST statements.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []ASTNode
}

/* -------------------------------------------------------------------------- */

// IfTree represents an if/elif/else tree.
type IfTree struct {
	ASTBase

	// The list of conditional branches which make up the tree.
	CondBranches []CondBranch

	// The else branch of the tree.  May be nil.
	ElseBranch *Block
}

// CondBranch represents a single conditional branch of an if/elif/else tree.
type CondBranch struct {
	// The condition of the branch.
	Condition ASTExpr

	// The body of the branch.
	Body *Block
}

// WhileLoop represents a while loop.
type WhileLoop struct {
	ASTBase

	// The condition of the loop.
	Condition ASTExpr

	// The body of the loop.
	Body *Block
}
