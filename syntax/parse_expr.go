package syntax

import (
	"sablec/ast"
	"sablec/report"
	"sablec/util"
)

// predTable orders binary operators by precedence: operators earlier in the
// table bind more tightly.
var predTable = [][]int{
	{TOK_STAR, TOK_DIV, TOK_MOD},
	{TOK_PLUS, TOK_MINUS},
	{TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ},
	{TOK_EQ, TOK_NEQ},
	{TOK_LAND},
	{TOK_LOR},
}

// expr := bin_op_expr ;
func (p *Parser) parseExpr() ast.ASTExpr {
	return p.parseBinOpExpr(len(predTable) - 1)
}

// bin_op_expr := bin_op_expr op bin_op_expr | unary_expr ;
func (p *Parser) parseBinOpExpr(prec int) ast.ASTExpr {
	if prec < 0 {
		return p.parseUnaryExpr()
	}

	lhs := p.parseBinOpExpr(prec - 1)

	for util.Contains(predTable[prec], p.tok.Kind) {
		opTok := p.tok
		p.next()

		rhs := p.parseBinOpExpr(prec - 1)

		lhs = &ast.BinaryOp{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
			OpKind:   opTok.Kind,
			OpRepr:   opTok.Value,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// unary_expr := '&' ['pin'] unary_expr | '*' unary_expr
//            | ('-' | '!') unary_expr | atom_expr ;
func (p *Parser) parseUnaryExpr() ast.ASTExpr {
	startSpan := p.tok.Span

	switch p.tok.Kind {
	case TOK_AMP:
		{
			p.next()

			pinned := false
			if p.has(TOK_PIN) {
				p.next()
				pinned = true
			}

			elem := p.parseUnaryExpr()

			return &ast.AddressOf{
				ExprBase: ast.NewExprBase(report.NewSpanOver(startSpan, elem.Span())),
				Elem:     elem,
				Pinned:   pinned,
			}
		}
	case TOK_STAR:
		{
			p.next()

			ref := p.parseUnaryExpr()

			return &ast.Deref{
				ExprBase: ast.NewExprBase(report.NewSpanOver(startSpan, ref.Span())),
				Ref:      ref,
			}
		}
	case TOK_MINUS, TOK_NOT:
		{
			opTok := p.tok
			p.next()

			operand := p.parseUnaryExpr()

			return &ast.UnaryOp{
				ExprBase: ast.NewExprBase(report.NewSpanOver(startSpan, operand.Span())),
				OpKind:   opTok.Kind,
				OpRepr:   opTok.Value,
				Operand:  operand,
			}
		}
	default:
		return p.parseAtomExpr()
	}
}

/* -------------------------------------------------------------------------- */

// atom_expr := atom [struct_lit_suffix] {trailer} ;
// trailer := '.' 'IDENT' | '(' [expr {',' expr}] ')' ;
func (p *Parser) parseAtomExpr() ast.ASTExpr {
	expr := p.parseAtom()

	if ident, ok := expr.(*ast.Identifier); ok && p.has(TOK_LBRACE) && !p.noStructLit {
		expr = p.parseStructLitSuffix(ident)
	}

	for {
		switch p.tok.Kind {
		case TOK_DOT:
			{
				p.next()

				fieldTok := p.want(TOK_IDENT)

				expr = &ast.FieldAccess{
					ExprBase:  ast.NewExprBase(report.NewSpanOver(expr.Span(), fieldTok.Span)),
					Root:      expr,
					FieldName: fieldTok.Value,
					FieldSpan: fieldTok.Span,
				}
			}
		case TOK_LPAREN:
			{
				p.next()

				var args []ast.ASTExpr
				if !p.has(TOK_RPAREN) {
					args = append(args, p.parseExpr())

					for p.has(TOK_COMMA) {
						p.next()

						args = append(args, p.parseExpr())
					}
				}

				endSpan := p.want(TOK_RPAREN).Span

				expr = &ast.FuncCall{
					ExprBase: ast.NewExprBase(report.NewSpanOver(expr.Span(), endSpan)),
					Func:     expr,
					Args:     args,
				}
			}
		default:
			return expr
		}
	}
}

// atom := 'INTLIT' | 'FLOATLIT' | 'BOOLLIT' | 'STRINGLIT'
//      | 'IDENT' | '(' expr ')' ;
func (p *Parser) parseAtom() ast.ASTExpr {
	switch p.tok.Kind {
	case TOK_INTLIT, TOK_FLOATLIT, TOK_BOOLLIT, TOK_STRINGLIT:
		p.next()

		return &ast.Literal{
			ExprBase: ast.NewExprBase(p.lookbehind.Span),
			Kind:     p.lookbehind.Kind,
			Value:    p.lookbehind.Value,
		}
	case TOK_IDENT:
		p.next()

		return &ast.Identifier{
			ASTBase: ast.NewASTBaseOn(p.lookbehind.Span),
			Name:    p.lookbehind.Value,
		}
	case TOK_LPAREN:
		{
			p.next()

			// Struct literals are always allowed inside parentheses.
			noStructLit := p.noStructLit
			p.noStructLit = false

			expr := p.parseExpr()

			p.noStructLit = noStructLit

			p.want(TOK_RPAREN)

			return expr
		}
	default:
		p.reject()
		return nil
	}
}

// struct_lit_suffix := '{' [struct_lit_field {',' struct_lit_field}] '}' ;
// struct_lit_field := 'IDENT' ':' expr ;
func (p *Parser) parseStructLitSuffix(ident *ast.Identifier) ast.ASTExpr {
	typeRef := p.addOpaqueRef(ident.Name, ident.Span())

	p.want(TOK_LBRACE)

	noStructLit := p.noStructLit
	p.noStructLit = false

	var fieldInits []ast.StructLitField
	initialized := make(map[string]struct{})
	if !p.has(TOK_RBRACE) {
		for {
			nameTok := p.want(TOK_IDENT)

			p.want(TOK_COLON)

			value := p.parseExpr()

			if _, ok := initialized[nameTok.Value]; ok {
				p.recError(nameTok.Span, "field %s initialized multiple times", nameTok.Value)
			} else {
				initialized[nameTok.Value] = struct{}{}

				fieldInits = append(fieldInits, ast.StructLitField{
					Name:     nameTok.Value,
					NameSpan: nameTok.Span,
					Value:    value,
				})
			}

			if p.has(TOK_COMMA) {
				p.next()

				continue
			}

			break
		}
	}

	p.noStructLit = noStructLit

	endSpan := p.want(TOK_RBRACE).Span

	return &ast.StructLiteral{
		ExprBase:   ast.NewExprBase(report.NewSpanOver(ident.Span(), endSpan)),
		TypeRef:    typeRef,
		FieldInits: fieldInits,
	}
}
