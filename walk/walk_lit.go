package walk

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"sablec/ast"
	"sablec/report"
	"sablec/syntax"
	"sablec/types"
)

// walkLiteral walks a literal AST node.
func (w *Walker) walkLiteral(lit *ast.Literal) {
	switch lit.Kind {
	case syntax.TOK_INTLIT:
		w.walkIntLit(lit)
	case syntax.TOK_FLOATLIT:
		w.walkFloatLit(lit)
	case syntax.TOK_BOOLLIT:
		lit.NodeType = types.PrimTypeBool
	case syntax.TOK_STRINGLIT:
		lit.NodeType = &types.ArrayType{ElemType: types.PrimTypeU8}
	}
}

// The list of int types in default preferential order.
var intTypes = []types.PrimitiveType{
	types.PrimTypeI32,
	types.PrimTypeU32,
	types.PrimTypeI64,
	types.PrimTypeU64,
	types.PrimTypeI16,
	types.PrimTypeU16,
	types.PrimTypeI8,
	types.PrimTypeU8,
}

// walkIntLit walks an integer literal.
func (w *Walker) walkIntLit(lit *ast.Literal) {
	// Trim off the integer suffix and determine whether it is long/unsigned.
	var long, unsigned bool
	trimmedText := strings.TrimRight(lit.Value, "ul")

	switch len(lit.Value) - len(trimmedText) {
	case 2:
		long = true
		unsigned = true
	case 1:
		unsigned = lit.Value[len(lit.Value)-1] == 'u'
		long = lit.Value[len(lit.Value)-1] == 'l'
	}

	// Underscore separators are cosmetic.
	trimmedText = strings.ReplaceAll(trimmedText, "_", "")

	x, err := strconv.ParseUint(trimmedText, 0, 64)
	if err != nil {
		nerr := err.(*strconv.NumError)
		if nerr.Err == strconv.ErrRange {
			w.recError(lit.Span(), "literal %s is too large to be represented by any integer type", lit.Value)
			return
		}

		report.ReportICE("unexpected Go error when parsing integer literal: %s", err)
	}

	// Determine the set of types that can represent the integer.
	var validTypes []types.PrimitiveType
	var constKindName string
	if long && unsigned {
		lit.NodeType = types.PrimTypeU64
		return
	} else if unsigned {
		validTypes = validIntTypes(x, types.PrimTypeU32, types.PrimTypeU64, types.PrimTypeU16, types.PrimTypeU8)
		constKindName = "unsigned int"
	} else if long {
		validTypes = validIntTypes(x, types.PrimTypeI64, types.PrimTypeU64)
		constKindName = "long int"
	} else {
		validTypes = validIntTypes(x, intTypes...)
		constKindName = "int"
	}

	if len(validTypes) == 0 {
		w.recError(lit.Span(), "literal %s is too large to be represented by any valid integer type", lit.Value)
		return
	}

	lit.NodeType = w.newUntypedNumber(
		fmt.Sprintf("untyped %s literal", constKindName),
		validTypes,
	)
}

// validIntTypes returns the valid integer types of those passed in that can
// represent the given value, preserving their order.
func validIntTypes(x uint64, intTypes ...types.PrimitiveType) []types.PrimitiveType {
	var newIntTypes []types.PrimitiveType

	// The value of an integral primitive type encodes the number of value
	// bits it can hold, so the representability check is a single shift.
	for _, typ := range intTypes {
		if typ >= 64 || x < 1<<typ {
			newIntTypes = append(newIntTypes, typ)
		}
	}

	return newIntTypes
}

// walkFloatLit walks a floating literal.
func (w *Walker) walkFloatLit(lit *ast.Literal) {
	text := strings.ReplaceAll(lit.Value, "_", "")

	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		nerr := err.(*strconv.NumError)
		if nerr.Err == strconv.ErrRange {
			w.recError(lit.Span(), "literal %s cannot be represented by any floating point type", lit.Value)
			return
		}

		report.ReportICE("unexpected Go error parsing float literal: %s", err)
	}

	// Test if the literal can be represented by a 32-bit value.
	if x != 0 && (math.Abs(x) < math.SmallestNonzeroFloat32 || math.Abs(x) > math.MaxFloat32) {
		lit.NodeType = types.PrimTypeF64
	} else {
		lit.NodeType = w.newUntypedNumber(
			"untyped float literal",
			[]types.PrimitiveType{types.PrimTypeF64, types.PrimTypeF32},
		)
	}
}
