package walk

import (
	"sablec/ast"
	"sablec/common"
	"sablec/report"
	"sablec/syntax"
	"sablec/types"
)

// Enumeration of the control modes a statement can produce: how control flow
// leaves the statement.
const (
	ControlNone = iota // Control falls through.
	ControlLoop        // Control exits via break or continue.
	ControlReturn      // Control exits via return.
)

// walkBlock walks a block of statements and returns the control mode of the
// block.
func (w *Walker) walkBlock(b *ast.Block) int {
	w.pushScope()
	defer w.popScope()

	mode := ControlNone
	for _, stmt := range b.Stmts {
		stmtMode := w.walkStmt(stmt)

		// The block exits however its first exiting statement does.
		if mode == ControlNone {
			mode = stmtMode
		}
	}

	return mode
}

// walkStmt walks a single statement and returns its control mode.
func (w *Walker) walkStmt(stmt ast.ASTNode) int {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		w.walkVarDecl(v)
	case *ast.Assignment:
		w.walkAssign(v)
	case *ast.KeywordStmt:
		return w.walkKeywordStmt(v)
	case *ast.ReturnStmt:
		w.walkReturnStmt(v)
		return ControlReturn
	case *ast.IfTree:
		return w.walkIfTree(v)
	case *ast.WhileLoop:
		w.walkWhileLoop(v)
	case ast.ASTExpr:
		w.walkExpr(v)
	default:
		report.ReportICE("invalid statement AST node")
	}

	return ControlNone
}

/* -------------------------------------------------------------------------- */

// walkVarDecl walks a local variable declaration.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) {
	for _, varList := range vd.VarLists {
		if varList.Initializer != nil {
			w.walkExpr(varList.Initializer)
			w.checkMove(varList.Initializer)

			if len(varList.Vars) == 1 {
				ident := varList.Vars[0]

				if ident.Sym.Type == nil { // Identifier type is to be inferred.
					ident.Sym.Type = varList.Initializer.Type()
				} else { // Specified type: unify.
					w.mustAssign(ident.Sym.Type, varList.Initializer)
				}
			} else {
				// All variables of the list share the initializer's type.
				for _, ident := range varList.Vars {
					if ident.Sym.Type == nil {
						ident.Sym.Type = varList.Initializer.Type()
					} else {
						w.mustAssign(ident.Sym.Type, varList.Initializer)
					}
				}
			}
		} else if varList.Vars[0].Sym.Type == nil {
			w.error(vd.Span(), "variable declaration must have a type label or an initializer")
		}

		// Declare variable symbols.
		for _, ident := range varList.Vars {
			w.defineLocal(ident.Sym)
		}
	}
}

// walkAssign walks an assignment statement.
func (w *Walker) walkAssign(as *ast.Assignment) {
	w.walkLHSExpr(as.LHSVar)

	w.walkExpr(as.RHSExpr)
	w.checkMove(as.RHSExpr)

	w.mustAssign(as.LHSVar.Type(), as.RHSExpr)
}

// walkLHSExpr walks an expression used as an assignment target.
func (w *Walker) walkLHSExpr(expr ast.ASTExpr) {
	switch v := expr.(type) {
	case *ast.Identifier:
		{
			sym := w.lookup(v.Name, v.Span())

			if sym.DefKind != common.DefKindValue {
				w.error(v.Span(), "%s cannot be assigned to", sym.Name)
			}

			if sym.Constant {
				w.recError(v.Span(), "cannot mutate an immutable value")
			}

			v.Sym = sym
		}
	case *ast.Deref:
		w.walkDeref(v)
	case *ast.FieldAccess:
		w.walkFieldAccess(v)
	default:
		w.error(expr.Span(), "expression cannot be assigned to")
	}
}

/* -------------------------------------------------------------------------- */

// walkKeywordStmt walks a keyword statement (like `break`).
func (w *Walker) walkKeywordStmt(ks *ast.KeywordStmt) int {
	switch ks.Kind {
	case syntax.TOK_BREAK:
		if w.loopDepth == 0 {
			w.error(ks.Span(), "cannot use break outside a loop")
		}
	case syntax.TOK_CONTINUE:
		if w.loopDepth == 0 {
			w.error(ks.Span(), "cannot use continue outside a loop")
		}
	}

	return ControlLoop
}

// walkReturnStmt walks a return statement.
func (w *Walker) walkReturnStmt(rs *ast.ReturnStmt) {
	if rs.Expr == nil {
		if !types.IsUnit(w.enclosingReturnType) {
			w.error(rs.Span(), "must return a value")
		}

		return
	}

	w.walkExpr(rs.Expr)
	w.checkMove(rs.Expr)

	w.mustUnify(w.enclosingReturnType, rs.Expr.Type(), rs.Expr.Span())
}

/* -------------------------------------------------------------------------- */

// walkIfTree walks an if/elif/else tree and returns its control mode.
func (w *Walker) walkIfTree(it *ast.IfTree) int {
	mode := -1

	for _, condBranch := range it.CondBranches {
		w.walkExpr(condBranch.Condition)
		w.mustUnify(types.PrimTypeBool, condBranch.Condition.Type(), condBranch.Condition.Span())

		branchMode := w.walkBlock(condBranch.Body)
		if mode == -1 || branchMode < mode {
			mode = branchMode
		}
	}

	if it.ElseBranch == nil {
		// Without an else branch, control may always fall through.
		return ControlNone
	}

	elseMode := w.walkBlock(it.ElseBranch)
	if elseMode < mode {
		mode = elseMode
	}

	return mode
}

// walkWhileLoop walks a while loop.
func (w *Walker) walkWhileLoop(wl *ast.WhileLoop) {
	w.walkExpr(wl.Condition)
	w.mustUnify(types.PrimTypeBool, wl.Condition.Type(), wl.Condition.Span())

	w.loopDepth++
	w.walkBlock(wl.Body)
	w.loopDepth--
}
