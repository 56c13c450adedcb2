package walk

import (
	"sablec/ast"
	"sablec/common"
	"sablec/types"
)

// doWalkDef walks a definition in a Sable file.  This should only be called
// from `walkDef`.
func (w *Walker) doWalkDef(def ast.ASTNode) {
	switch v := def.(type) {
	case *ast.FuncDef:
		w.validateFuncAnnots(v)
		w.walkFuncBody(v.Params, v.Symbol.Type.(*types.FuncType).ReturnType, v.Body)
	case *ast.StructDef:
		w.walkStructDef(v)
	}
}

// validateFuncAnnots validates the annotations of a function definition.
func (w *Walker) validateFuncAnnots(fd *ast.FuncDef) {
	for aname, aval := range fd.Annotations {
		switch aname {
		case "drop":
			if len(aval.Value) != 0 {
				w.recError(aval.ValSpan, "@drop does not take an argument")
			}

			w.validateDropFunc(fd)
		case "layout", "transparent", "growable", "pinned":
			w.recError(aval.NameSpan, "@%s can only be applied to a struct definition", aname)
		}
	}

	if fd.Body == nil {
		w.recError(fd.Span(), "function must have a body")
	}
}

// validateDropFunc validates a function marked as a destructor with `@drop`
// and registers it as the destructor for its operand struct.  A destructor
// takes its operand by reference so destruction never requires moving the
// operand or any of its pinned fields: the reference must be pinned unless the
// operand type is freely repinnable.
func (w *Walker) validateDropFunc(fd *ast.FuncDef) {
	ft := fd.Symbol.Type.(*types.FuncType)

	if !types.IsUnit(ft.ReturnType) {
		w.recError(fd.Symbol.DefSpan, "destructor must return unit")
	}

	if len(ft.ParamTypes) != 1 {
		w.recError(fd.Symbol.DefSpan, "destructor must take exactly one parameter")
		return
	}

	paramType := types.InnerType(ft.ParamTypes[0])

	rt, ok := paramType.(*types.RefType)
	if !ok {
		if types.HasPinnedFields(paramType) {
			w.recError(fd.Symbol.DefSpan,
				"destructor cannot take %s by value because it has pinned fields",
				ft.ParamTypes[0].Repr())
		} else {
			w.recError(fd.Symbol.DefSpan, "destructor must take its operand by reference")
		}

		return
	}

	st, ok := types.InnerType(rt.ElemType).(*types.StructType)
	if !ok {
		w.recError(fd.Symbol.DefSpan, "destructor operand must be a struct type")
		return
	}

	if !rt.Pinned && !types.Repinnable(st) {
		w.recError(fd.Symbol.DefSpan,
			"destructor for %s must take a pinned reference", st.Name())
	}

	w.defineDestructor(st, fd.Symbol)
}

// defineDestructor registers a destructor symbol for the given struct type.
func (w *Walker) defineDestructor(st *types.StructType, sym *common.Symbol) {
	if _, ok := w.sbFile.Parent.Destructors[st.Name()]; ok {
		w.recError(sym.DefSpan, "multiple destructors defined for %s", st.Name())
		return
	}

	w.sbFile.Parent.Destructors[st.Name()] = sym
}

// walkFuncBody walks a function body.
func (w *Walker) walkFuncBody(params []*common.Symbol, rtType types.Type, body ast.ASTNode) {
	if body == nil {
		return
	}

	// Push the enclosing scope of the function.
	w.pushScope()
	defer w.popScope()

	// Declare all parameter symbols.
	for _, paramSym := range params {
		w.defineLocal(paramSym)
	}

	// Set the function return type.
	w.enclosingReturnType = rtType

	bodyBlock := body.(*ast.Block)
	cm := w.walkBlock(bodyBlock)

	// Make sure the function returns.
	if !types.IsUnit(rtType) && cm != ControlReturn {
		if len(bodyBlock.Stmts) > 0 {
			w.error(
				bodyBlock.Stmts[len(bodyBlock.Stmts)-1].Span(),
				"missing return statement",
			)
		} else {
			w.error(bodyBlock.Span(), "missing return statement")
		}
	}

	// Clear the function return type.
	w.enclosingReturnType = nil
}

/* -------------------------------------------------------------------------- */

// walkStructDef walks a structure definition.
func (w *Walker) walkStructDef(sd *ast.StructDef) {
	st := sd.Symbol.Type.(*types.StructType)

	// Pinning a field whose type is exempt from pinning concerns has no
	// effect.
	for _, field := range st.Fields {
		if field.Pinned && types.Repinnable(field.Type) {
			w.warn(sd.PinSpans[field.Name],
				"pin marker on field %s is redundant: %s is freely repinnable",
				field.Name, field.Type.Repr())
		}
	}
}
