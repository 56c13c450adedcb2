package walk

import (
	"sablec/ast"
	"sablec/report"
	"sablec/types"
)

// mustUnify asserts that two types must be unifiable.
func (w *Walker) mustUnify(expected, actual types.Type, span *report.TextSpan) {
	if !types.Unify(expected, actual) {
		w.error(span, "type mismatch: expected %s but got %s", expected.Repr(), actual.Repr())
	}
}

// mustAssign asserts that an expression may be stored in a location of the
// expected type.  This is unification extended with reference re-pinning:
// `&T` and `&pin T` coerce to each other exactly when T is repinnable.
func (w *Walker) mustAssign(expected types.Type, expr ast.ASTExpr) {
	actual := expr.Type()

	if ert, ok := types.InnerType(expected).(*types.RefType); ok {
		if art, ok := types.InnerType(actual).(*types.RefType); ok {
			if ert.Pinned != art.Pinned && types.Equals(ert.ElemType, art.ElemType) {
				if !types.Repinnable(ert.ElemType) {
					w.error(expr.Span(), "cannot convert %s to %s: %s is not repinnable",
						actual.Repr(), expected.Repr(), ert.ElemType.Repr())
				}

				return
			}
		}
	}

	w.mustUnify(expected, actual, expr.Span())
}

// checkMove checks that using the given expression as an r-value does not
// move a value out of a place it may never leave: a structurally pinned field
// reached through a pinned reference, or any place behind a reference.
func (w *Walker) checkMove(expr ast.ASTExpr) {
	if types.IsCopyType(expr.Type()) {
		return
	}

	switch v := expr.(type) {
	case *ast.FieldAccess:
		if v.FieldPinned && (v.ViaPinnedRef || isPinnedDeref(v.Root)) {
			w.recError(v.Span(), "cannot move pinned field %s out of a pinned reference", v.FieldName)
		} else if _, ok := types.InnerType(v.Root.Type()).(*types.RefType); ok {
			w.recError(v.Span(), "cannot move field %s out of a reference", v.FieldName)
		}
	case *ast.Deref:
		w.recError(v.Span(), "cannot move a value out of a reference")
	}
}

/* -------------------------------------------------------------------------- */

// newUntypedNumber creates a new untyped number and registers it for type
// inference finalization.
func (w *Walker) newUntypedNumber(displayName string, validTypes []types.PrimitiveType) *types.UntypedNumber {
	numType := &types.UntypedNumber{
		DisplayName: displayName,
		ValidTypes:  validTypes,
	}

	w.untypedNumbers = append(w.untypedNumbers, numType)

	return numType
}
