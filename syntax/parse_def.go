package syntax

import (
	"sablec/ast"
	"sablec/common"
	"sablec/report"
	"sablec/types"
)

// definition := [annot_decl] def_core ;
// def_core := func_def | struct_def ;
func (p *Parser) parseDefinition() {
	var annots map[string]ast.AnnotValue
	if p.has(TOK_ATSIGN) {
		annots = p.parseAnnotDecl()
	}

	var def ast.ASTNode

	switch p.tok.Kind {
	case TOK_DEF:
		def = p.parseFuncDef(annots)
	case TOK_STRUCT:
		def = p.parseStructDef(annots)
	default:
		p.reject()
	}

	p.sbFile.Definitions = append(p.sbFile.Definitions, def)
}

// annot_decl := '@' (annot_elem | '[' annot_elem {',' annot_elem} ']') ;
// annot_elem := 'IDENT' ['(' 'STRINGLIT' ')'] ;
func (p *Parser) parseAnnotDecl() map[string]ast.AnnotValue {
	p.want(TOK_ATSIGN)

	multiAnnot := false
	if p.has(TOK_LBRACKET) {
		p.next()
		multiAnnot = true
	}

	annots := make(map[string]ast.AnnotValue)
	for {
		nameTok := p.want(TOK_IDENT)

		var valueTok *Token
		if p.has(TOK_LPAREN) {
			p.next()

			valueTok = p.want(TOK_STRINGLIT)

			p.want(TOK_RPAREN)
		}

		if _, ok := annots[nameTok.Value]; ok {
			p.error(nameTok, "annotation %s specified multiple times", nameTok.Value)
		}

		if valueTok == nil {
			annots[nameTok.Value] = ast.AnnotValue{NameSpan: nameTok.Span}
		} else {
			annots[nameTok.Value] = ast.AnnotValue{
				Value:    valueTok.Value,
				NameSpan: nameTok.Span,
				ValSpan:  valueTok.Span,
			}
		}

		if multiAnnot && p.has(TOK_COMMA) {
			p.next()

			continue
		}

		break
	}

	if multiAnnot {
		p.want(TOK_RBRACKET)
	}

	return annots
}

/* -------------------------------------------------------------------------- */

// func_def := 'def' 'IDENT' func_signature ;
func (p *Parser) parseFuncDef(annots map[string]ast.AnnotValue) *ast.FuncDef {
	startSpan := p.want(TOK_DEF).Span

	funcIdent := p.want(TOK_IDENT)

	funcParams, funcType, funcBody := p.parseFuncSignature()

	funcSym := &common.Symbol{
		Name:       funcIdent.Value,
		ParentID:   p.sbFile.Parent.ID,
		FileNumber: p.sbFile.FileNumber,
		DefSpan:    funcIdent.Span,
		Type:       funcType,
		DefKind:    common.DefKindFunc,
		Constant:   true,
	}

	p.defineGlobalSymbol(funcSym)

	return &ast.FuncDef{
		ASTBase:     ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Symbol:      funcSym,
		Params:      funcParams,
		Body:        funcBody,
		Annotations: annots,
	}
}

// func_signature := '(' [func_params] ')' [type_label] (block | ';') ;
func (p *Parser) parseFuncSignature() ([]*common.Symbol, *types.FuncType, ast.ASTNode) {
	p.want(TOK_LPAREN)

	var funcParams []*common.Symbol
	if !p.has(TOK_RPAREN) {
		funcParams = p.parseFuncParams()
	}

	p.want(TOK_RPAREN)

	var funcBody ast.ASTNode
	var returnTyp types.Type = types.PrimTypeUnit
	for {
		switch p.tok.Kind {
		case TOK_SEMI:
			p.next()
		case TOK_LBRACE:
			funcBody = p.parseBlock()
		default:
			returnTyp = p.parseTypeLabel()
			continue
		}

		break
	}

	funcType := &types.FuncType{ReturnType: returnTyp}
	for _, param := range funcParams {
		funcType.ParamTypes = append(funcType.ParamTypes, param.Type)
	}

	return funcParams, funcType, funcBody
}

// func_params := func_param {',' func_param} ;
// func_param := ident_list type_ext ;
func (p *Parser) parseFuncParams() []*common.Symbol {
	var funcParams []*common.Symbol
	paramNames := make(map[string]struct{})

	for {
		idents := p.parseIdentList()
		typ := p.parseTypeExt()

		for _, ident := range idents {
			if _, ok := paramNames[ident.Value]; ok {
				p.error(ident, "multiple parameters named %s", ident.Value)
			} else {
				paramNames[ident.Value] = struct{}{}

				funcParams = append(funcParams, &common.Symbol{
					Name:       ident.Value,
					ParentID:   p.sbFile.Parent.ID,
					FileNumber: p.sbFile.FileNumber,
					DefSpan:    ident.Span,
					Type:       typ,
					DefKind:    common.DefKindValue,
					Constant:   false,
				})
			}
		}

		if p.has(TOK_COMMA) {
			p.next()

			continue
		}

		break
	}

	return funcParams
}

/* -------------------------------------------------------------------------- */

// struct_def := 'struct' 'IDENT' '{' struct_field {struct_field} '}' ;
// struct_field := ['pub'] ['pin'] ident_list type_ext ';' ;
func (p *Parser) parseStructDef(annots map[string]ast.AnnotValue) *ast.StructDef {
	startSpan := p.want(TOK_STRUCT).Span

	nameIdent := p.want(TOK_IDENT)

	p.want(TOK_LBRACE)

	var fields []types.StructField
	fieldIndices := make(map[string]int)
	pinSpans := make(map[string]*report.TextSpan)
	for {
		public := false
		if p.has(TOK_PUB) {
			p.next()
			public = true
		}

		var pinSpan *report.TextSpan
		if p.has(TOK_PIN) {
			pinSpan = p.tok.Span
			p.next()
		}

		fieldIdents := p.parseIdentList()
		fieldType := p.parseTypeExt()

		p.want(TOK_SEMI)

		for _, fieldIdent := range fieldIdents {
			fieldName := fieldIdent.Value

			if _, ok := fieldIndices[fieldName]; ok {
				p.recError(fieldIdent.Span, "multiple fields named %s", fieldName)
			}

			fieldIndices[fieldName] = len(fields)

			fields = append(fields, types.StructField{
				Name:   fieldName,
				Type:   fieldType,
				Public: public,
				Pinned: pinSpan != nil,
			})

			if pinSpan != nil {
				pinSpans[fieldName] = pinSpan
			}
		}

		if p.has(TOK_RBRACE) {
			break
		}
	}

	structType := &types.StructType{
		NamedTypeBase: types.NewNamedTypeBase(
			p.sbFile.Parent.Name+"."+nameIdent.Value,
			p.sbFile.Parent.ID,
			len(p.sbFile.Definitions),
		),
		Fields:  fields,
		Indices: fieldIndices,
	}

	if _, ok := annots["transparent"]; ok {
		structType.Transparent = true
	}

	if _, ok := annots["growable"]; ok {
		structType.Growable = true
	}

	if _, ok := annots["pinned"]; ok {
		structType.Pinned = true
	}

	structSym := &common.Symbol{
		Name:       nameIdent.Value,
		ParentID:   p.sbFile.Parent.ID,
		FileNumber: p.sbFile.FileNumber,
		DefSpan:    nameIdent.Span,
		Type:       structType,
		DefKind:    common.DefKindType,
		Constant:   true,
	}

	p.defineGlobalSymbol(structSym)

	endSpan := p.want(TOK_RBRACE).Span

	return &ast.StructDef{
		ASTBase:     ast.NewASTBaseOver(startSpan, endSpan),
		Symbol:      structSym,
		Annotations: annots,
		PinSpans:    pinSpans,
	}
}
