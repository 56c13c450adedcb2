package syntax

import (
	"sablec/report"
	"sablec/types"
)

// primTypePatterns maps primitive type keyword kinds to their primitive type.
var primTypePatterns = map[int]types.PrimitiveType{
	TOK_UNIT: types.PrimTypeUnit,
	TOK_BOOL: types.PrimTypeBool,
	TOK_I8:   types.PrimTypeI8,
	TOK_U8:   types.PrimTypeU8,
	TOK_I16:  types.PrimTypeI16,
	TOK_U16:  types.PrimTypeU16,
	TOK_I32:  types.PrimTypeI32,
	TOK_U32:  types.PrimTypeU32,
	TOK_I64:  types.PrimTypeI64,
	TOK_U64:  types.PrimTypeU64,
	TOK_F32:  types.PrimTypeF32,
	TOK_F64:  types.PrimTypeF64,
}

// type_ext := ':' type_label ;
func (p *Parser) parseTypeExt() types.Type {
	p.want(TOK_COLON)

	return p.parseTypeLabel()
}

// type_label := prim_type | ref_type | array_type | tuple_type | named_type ;
// ref_type := '&' ['pin'] type_label ;
// array_type := '[' ']' type_label ;
// tuple_type := '(' type_label ',' type_label {',' type_label} ')' ;
// named_type := 'IDENT' ;
func (p *Parser) parseTypeLabel() types.Type {
	switch p.tok.Kind {
	case TOK_AMP:
		{
			p.next()

			pinned := false
			if p.has(TOK_PIN) {
				p.next()
				pinned = true
			}

			return &types.RefType{ElemType: p.parseTypeLabel(), Pinned: pinned}
		}
	case TOK_LBRACKET:
		p.next()
		p.want(TOK_RBRACKET)

		return &types.ArrayType{ElemType: p.parseTypeLabel()}
	case TOK_LPAREN:
		{
			p.next()

			elemTypes := []types.Type{p.parseTypeLabel()}
			for p.has(TOK_COMMA) {
				p.next()

				elemTypes = append(elemTypes, p.parseTypeLabel())
			}

			p.want(TOK_RPAREN)

			if len(elemTypes) == 1 {
				return elemTypes[0]
			}

			return &types.TupleType{ElementTypes: elemTypes}
		}
	case TOK_IDENT:
		{
			nameTok := p.tok
			p.next()

			return p.addOpaqueRef(nameTok.Value, nameTok.Span)
		}
	default:
		if prim, ok := primTypePatterns[p.tok.Kind]; ok {
			p.next()

			return prim
		}

		p.reject()
		return nil
	}
}

// addOpaqueRef creates an opaque reference to a named type and records it for
// later resolution against the package's global symbol table.
func (p *Parser) addOpaqueRef(name string, span *report.TextSpan) *types.OpaqueType {
	oref := &types.OpaqueType{
		Name: name,
		Span: span,
	}

	p.sbFile.OpaqueRefs[name] = append(p.sbFile.OpaqueRefs[name], oref)

	return oref
}

/* -------------------------------------------------------------------------- */

// ident_list := 'IDENT' {',' 'IDENT'} ;
func (p *Parser) parseIdentList() []*Token {
	identToks := []*Token{p.want(TOK_IDENT)}

	for p.has(TOK_COMMA) {
		p.next()

		identToks = append(identToks, p.want(TOK_IDENT))
	}

	return identToks
}
