package walk

import (
	"sablec/ast"
	"sablec/common"
	"sablec/report"
	"sablec/syntax"
	"sablec/types"
)

// walkExpr walks an expression.
func (w *Walker) walkExpr(expr ast.ASTExpr) {
	switch v := expr.(type) {
	case *ast.Literal:
		w.walkLiteral(v)
	case *ast.Identifier:
		{
			sym := w.lookup(v.Name, v.Span())

			if sym.DefKind == common.DefKindType {
				w.error(v.Span(), "%s cannot be used as a value", sym.Name)
			}

			sym.Used = true
			v.Sym = sym
		}
	case *ast.FieldAccess:
		w.walkFieldAccess(v)
	case *ast.AddressOf:
		w.walkAddressOf(v)
	case *ast.Deref:
		w.walkDeref(v)
	case *ast.UnaryOp:
		w.walkUnaryOp(v)
	case *ast.BinaryOp:
		w.walkBinaryOp(v)
	case *ast.FuncCall:
		w.walkFuncCall(v)
	case *ast.StructLiteral:
		w.walkStructLiteral(v)
	default:
		report.ReportICE("invalid expression AST node")
	}
}

/* -------------------------------------------------------------------------- */

// walkFieldAccess walks a struct field access.  References to structs are
// automatically dereferenced: accessing a field through a pinned reference is
// the pin projection operation and is recorded on the AST node.
func (w *Walker) walkFieldAccess(fa *ast.FieldAccess) {
	w.walkExpr(fa.Root)

	rootType := types.InnerType(fa.Root.Type())

	// Auto-deref through a reference.
	if rt, ok := rootType.(*types.RefType); ok {
		fa.ViaPinnedRef = rt.Pinned
		rootType = types.InnerType(rt.ElemType)
	}

	st, ok := rootType.(*types.StructType)
	if !ok {
		w.error(fa.Root.Span(), "%s has no fields", fa.Root.Type().Repr())
	}

	field, ok := st.GetFieldByName(fa.FieldName)
	if !ok {
		w.error(fa.FieldSpan, "%s has no field named %s", st.Name(), fa.FieldName)
	}

	if st.ParentID() != w.sbFile.Parent.ID && !field.Public {
		w.error(fa.FieldSpan, "field %s of %s is not public", field.Name, st.Name())
	}

	fa.FieldPinned = field.Pinned
	fa.NodeType = field.Type
}

// walkAddressOf walks a reference-taking expression.  A pinned place (a
// pinned field reached through a pinned reference) can only yield a pinned
// reference unless its type is repinnable; conversely `&pin` applied to an
// unpinned place re-pins it, which is only permitted for pinned places and
// repinnable types.
func (w *Walker) walkAddressOf(ao *ast.AddressOf) {
	w.walkExpr(ao.Elem)

	if !isPlaceExpr(ao.Elem) {
		w.error(ao.Elem.Span(), "cannot take a reference to a temporary value")
	}

	elemType := ao.Elem.Type()

	if ao.Pinned {
		if !isPinnedPlace(ao.Elem) && !types.Repinnable(elemType) {
			w.error(ao.Span(), "cannot pin a value of non-repinnable type %s", elemType.Repr())
		}
	} else if isPinnedPlace(ao.Elem) && !types.Repinnable(elemType) {
		w.error(ao.Span(),
			"cannot take an unpinned reference to a pinned field of non-repinnable type %s",
			elemType.Repr())
	}

	ao.NodeType = &types.RefType{ElemType: elemType, Pinned: ao.Pinned}
}

// walkDeref walks a dereference expression.
func (w *Walker) walkDeref(d *ast.Deref) {
	w.walkExpr(d.Ref)

	rt, ok := types.InnerType(d.Ref.Type()).(*types.RefType)
	if !ok {
		w.error(d.Ref.Span(), "%s cannot be dereferenced", d.Ref.Type().Repr())
	}

	d.NodeType = rt.ElemType
}

// isPlaceExpr returns whether an expression denotes an addressable place.
func isPlaceExpr(expr ast.ASTExpr) bool {
	switch v := expr.(type) {
	case *ast.Identifier, *ast.Deref:
		return true
	case *ast.FieldAccess:
		if _, ok := types.InnerType(v.Root.Type()).(*types.RefType); ok {
			return true
		}

		return isPlaceExpr(v.Root)
	default:
		return false
	}
}

// isPinnedPlace returns whether an expression denotes a pinned place: a
// structurally pinned field reached through a pinned reference.
func isPinnedPlace(expr ast.ASTExpr) bool {
	switch v := expr.(type) {
	case *ast.FieldAccess:
		return v.FieldPinned && (v.ViaPinnedRef || isPinnedDeref(v.Root))
	case *ast.Deref:
		return isPinnedDeref(v)
	default:
		return false
	}
}

// isPinnedDeref returns whether an expression dereferences a pinned reference.
func isPinnedDeref(expr ast.ASTExpr) bool {
	if d, ok := expr.(*ast.Deref); ok {
		if rt, ok := types.InnerType(d.Ref.Type()).(*types.RefType); ok {
			return rt.Pinned
		}
	}

	return false
}

/* -------------------------------------------------------------------------- */

// walkUnaryOp walks a unary operator application.
func (w *Walker) walkUnaryOp(uo *ast.UnaryOp) {
	w.walkExpr(uo.Operand)

	switch uo.OpKind {
	case syntax.TOK_MINUS:
		if !w.isNumberType(uo.Operand.Type()) {
			w.error(uo.Operand.Span(), "%s operator expects a numeric operand not %s",
				uo.OpRepr, uo.Operand.Type().Repr())
		}

		uo.NodeType = uo.Operand.Type()
	case syntax.TOK_NOT:
		w.mustUnify(types.PrimTypeBool, uo.Operand.Type(), uo.Operand.Span())

		uo.NodeType = types.PrimTypeBool
	default:
		report.ReportICE("invalid unary operator: %s", uo.OpRepr)
	}
}

// walkBinaryOp walks a binary operator application.
func (w *Walker) walkBinaryOp(bo *ast.BinaryOp) {
	w.walkExpr(bo.Lhs)
	w.walkExpr(bo.Rhs)

	switch bo.OpKind {
	case syntax.TOK_PLUS, syntax.TOK_MINUS, syntax.TOK_STAR, syntax.TOK_DIV, syntax.TOK_MOD:
		w.mustUnify(bo.Lhs.Type(), bo.Rhs.Type(), bo.Rhs.Span())

		if !w.isNumberType(bo.Lhs.Type()) {
			w.error(bo.Lhs.Span(), "%s operator expects numeric operands not %s",
				bo.OpRepr, bo.Lhs.Type().Repr())
		}

		bo.NodeType = bo.Lhs.Type()
	case syntax.TOK_LT, syntax.TOK_GT, syntax.TOK_LTEQ, syntax.TOK_GTEQ:
		w.mustUnify(bo.Lhs.Type(), bo.Rhs.Type(), bo.Rhs.Span())

		if !w.isNumberType(bo.Lhs.Type()) {
			w.error(bo.Lhs.Span(), "%s operator expects numeric operands not %s",
				bo.OpRepr, bo.Lhs.Type().Repr())
		}

		bo.NodeType = types.PrimTypeBool
	case syntax.TOK_EQ, syntax.TOK_NEQ:
		w.mustUnify(bo.Lhs.Type(), bo.Rhs.Type(), bo.Rhs.Span())

		bo.NodeType = types.PrimTypeBool
	case syntax.TOK_LAND, syntax.TOK_LOR:
		w.mustUnify(types.PrimTypeBool, bo.Lhs.Type(), bo.Lhs.Span())
		w.mustUnify(types.PrimTypeBool, bo.Rhs.Type(), bo.Rhs.Span())

		bo.NodeType = types.PrimTypeBool
	default:
		report.ReportICE("invalid binary operator: %s", bo.OpRepr)
	}
}

// isNumberType returns whether the given type is numeric: an integral or
// floating primitive or an untyped number.
func (w *Walker) isNumberType(typ types.Type) bool {
	switch v := types.InnerType(typ).(type) {
	case types.PrimitiveType:
		return v.IsIntegral() || v.IsFloating()
	case *types.UntypedNumber:
		return true
	default:
		return false
	}
}

/* -------------------------------------------------------------------------- */

// walkFuncCall walks a function call.
func (w *Walker) walkFuncCall(fc *ast.FuncCall) {
	w.walkExpr(fc.Func)

	ft, ok := types.InnerType(fc.Func.Type()).(*types.FuncType)
	if !ok {
		w.error(fc.Func.Span(), "%s is not callable", fc.Func.Type().Repr())
	}

	if len(fc.Args) != len(ft.ParamTypes) {
		w.error(fc.Span(), "function expects %d arguments but received %d",
			len(ft.ParamTypes), len(fc.Args))
	}

	for i, arg := range fc.Args {
		w.walkExpr(arg)
		w.checkMove(arg)

		w.mustAssign(ft.ParamTypes[i], arg)
	}

	fc.NodeType = ft.ReturnType
}

// walkStructLiteral walks a struct literal expression.
func (w *Walker) walkStructLiteral(sl *ast.StructLiteral) {
	st, ok := types.InnerType(sl.TypeRef).(*types.StructType)
	if !ok {
		w.error(sl.TypeRef.Span, "%s is not a struct type", sl.TypeRef.Name)
	}

	initialized := make(map[string]struct{})
	for _, init := range sl.FieldInits {
		field, ok := st.GetFieldByName(init.Name)
		if !ok {
			w.error(init.NameSpan, "%s has no field named %s", st.Name(), init.Name)
		}

		w.walkExpr(init.Value)
		w.checkMove(init.Value)

		w.mustAssign(field.Type, init.Value)

		initialized[init.Name] = struct{}{}
	}

	// Every field must be initialized exactly once.
	for _, field := range st.Fields {
		if _, ok := initialized[field.Name]; !ok {
			w.error(sl.Span(), "missing initializer for field %s of %s", field.Name, st.Name())
		}
	}

	sl.NodeType = sl.TypeRef
}
