package syntax

import (
	"sablec/ast"
	"sablec/common"
	"sablec/report"
	"sablec/types"
)

// block := '{' {stmt} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.want(TOK_LBRACE).Span

	var stmts []ast.ASTNode
	for !p.has(TOK_RBRACE) {
		stmts = append(stmts, p.parseStmt())
	}

	endSpan := p.want(TOK_RBRACE).Span

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Stmts:   stmts,
	}
}

// stmt := block_stmt | (simple_stmt | var_decl | expr_assign_stmt) ';' ;
// block_stmt := if_stmt | while_loop ;
// simple_stmt := 'break' | 'continue' | 'return' [expr] ;
func (p *Parser) parseStmt() ast.ASTNode {
	var stmt ast.ASTNode

	switch p.tok.Kind {
	case TOK_LET, TOK_CONST:
		stmt = p.parseVarDecl()
	case TOK_BREAK, TOK_CONTINUE:
		p.next()
		stmt = &ast.KeywordStmt{
			ASTBase: ast.NewASTBaseOn(p.lookbehind.Span),
			Kind:    p.lookbehind.Kind,
		}
	case TOK_RETURN:
		{
			p.next()
			startSpan := p.lookbehind.Span

			var expr ast.ASTExpr
			if !p.has(TOK_SEMI) {
				expr = p.parseExpr()
			}

			stmt = &ast.ReturnStmt{
				ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
				Expr:    expr,
			}
		}
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileLoop()
	default:
		stmt = p.parseExprAssignStmt()
	}

	p.want(TOK_SEMI)
	return stmt
}

/* -------------------------------------------------------------------------- */

// var_decl := ('let' | 'const') var_list {',' var_list} ;
// var_list := ident_list (initializer | type_ext [initializer]) ;
// initializer := '=' expr ;
func (p *Parser) parseVarDecl() *ast.VarDecl {
	var startSpan *report.TextSpan
	var constant bool
	if p.has(TOK_LET) {
		constant = false
		p.next()
		startSpan = p.lookbehind.Span
	} else {
		constant = true
		startSpan = p.want(TOK_CONST).Span
	}

	var varLists []ast.VarList
	for {
		identToks := p.parseIdentList()

		var typ types.Type
		var init ast.ASTExpr
		if p.has(TOK_COLON) {
			typ = p.parseTypeExt()

			if p.has(TOK_ASSIGN) {
				p.next()
				init = p.parseExpr()
			}
		} else {
			p.want(TOK_ASSIGN)
			init = p.parseExpr()
		}

		varList := ast.VarList{Initializer: init}
		for _, identTok := range identToks {
			ident := &ast.Identifier{
				ASTBase: ast.NewASTBaseOn(identTok.Span),
				Name:    identTok.Value,
				Sym: &common.Symbol{
					Name:       identTok.Value,
					ParentID:   p.sbFile.Parent.ID,
					FileNumber: p.sbFile.FileNumber,
					DefSpan:    identTok.Span,
					Type:       typ,
					DefKind:    common.DefKindValue,
					Constant:   constant,
				},
			}

			varList.Vars = append(varList.Vars, ident)
		}

		varLists = append(varLists, varList)

		if p.has(TOK_COMMA) {
			p.next()

			continue
		}

		break
	}

	return &ast.VarDecl{
		ASTBase:  ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		VarLists: varLists,
	}
}

/* -------------------------------------------------------------------------- */

// expr_assign_stmt := lhs_expr ['=' expr] ;
// lhs_expr := ['*'] atom_expr ;
func (p *Parser) parseExprAssignStmt() ast.ASTNode {
	var lhsExpr ast.ASTExpr
	if p.has(TOK_STAR) {
		startSpan := p.tok.Span
		p.next()

		atomExpr := p.parseAtomExpr()
		lhsExpr = &ast.Deref{
			ExprBase: ast.NewExprBase(report.NewSpanOver(startSpan, atomExpr.Span())),
			Ref:      atomExpr,
		}
	} else {
		lhsExpr = p.parseAtomExpr()
	}

	if p.has(TOK_ASSIGN) {
		p.next()

		rhsExpr := p.parseExpr()

		return &ast.Assignment{
			ASTBase: ast.NewASTBaseOver(lhsExpr.Span(), rhsExpr.Span()),
			LHSVar:  lhsExpr,
			RHSExpr: rhsExpr,
		}
	}

	return lhsExpr
}

/* -------------------------------------------------------------------------- */

// if_stmt := 'if' cond_expr block {'elif' cond_expr block} ['else' block] ;
func (p *Parser) parseIfStmt() *ast.IfTree {
	startSpan := p.tok.Span

	var condBranches []ast.CondBranch
	var elseBranch *ast.Block
	for {
		// Move past the leading `if` or `elif`.
		p.next()

		cond := p.parseCondExpr()
		body := p.parseBlock()

		condBranches = append(condBranches, ast.CondBranch{
			Condition: cond,
			Body:      body,
		})

		if p.has(TOK_ELIF) {
			continue
		} else if p.has(TOK_ELSE) {
			p.next()
			elseBranch = p.parseBlock()
		}

		break
	}

	return &ast.IfTree{
		ASTBase:      ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		CondBranches: condBranches,
		ElseBranch:   elseBranch,
	}
}

// while_loop := 'while' cond_expr block ;
func (p *Parser) parseWhileLoop() *ast.WhileLoop {
	startSpan := p.want(TOK_WHILE).Span

	cond := p.parseCondExpr()
	body := p.parseBlock()

	return &ast.WhileLoop{
		ASTBase:   ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Condition: cond,
		Body:      body,
	}
}

// parseCondExpr parses a block header condition.  Struct literals are not
// allowed to begin inside a condition since the `{` always opens the block.
func (p *Parser) parseCondExpr() ast.ASTExpr {
	p.noStructLit = true
	cond := p.parseExpr()
	p.noStructLit = false

	return cond
}
