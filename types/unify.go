package types

// Unify attempts to make two types equal.  It returns whether or not it was
// successful.  This function may make any untyped numbers that are passed into
// it concrete!
func Unify(lhs, rhs Type) bool {
	lhs = InnerType(lhs)
	rhs = InnerType(rhs)

	// Check for untyped numbers unified against each other or against a
	// concrete type.
	if run, ok := rhs.(*UntypedNumber); ok {
		if lun, ok := lhs.(*UntypedNumber); ok {
			return unifyUntypedNumbers(lun, run)
		}

		return unifyUntypedNumberWithConcrete(run, lhs)
	}

	switch v := lhs.(type) {
	case *UntypedNumber:
		// We know the RHS is concrete so we can just do concrete unification.
		return unifyUntypedNumberWithConcrete(v, rhs)
	case *RefType:
		if rrt, ok := rhs.(*RefType); ok {
			return v.Pinned == rrt.Pinned && Unify(v.ElemType, rrt.ElemType)
		}
	case *ArrayType:
		if rat, ok := rhs.(*ArrayType); ok {
			return Unify(v.ElemType, rat.ElemType)
		}
	case *TupleType:
		if rtt, ok := rhs.(*TupleType); ok {
			if len(v.ElementTypes) != len(rtt.ElementTypes) {
				return false
			}

			for i, elemType := range v.ElementTypes {
				if !Unify(elemType, rtt.ElementTypes[i]) {
					return false
				}
			}

			return true
		}
	case *FuncType:
		if rft, ok := rhs.(*FuncType); ok {
			if len(v.ParamTypes) != len(rft.ParamTypes) {
				return false
			}

			for i, paramType := range v.ParamTypes {
				if !Unify(paramType, rft.ParamTypes[i]) {
					return false
				}
			}

			return Unify(v.ReturnType, rft.ReturnType)
		}
	default:
		return Equals(lhs, rhs)
	}

	return false
}

// unifyUntypedNumbers unifies two untyped numbers by intersecting their sets of
// valid types.
func unifyUntypedNumbers(lhs, rhs *UntypedNumber) bool {
	var common []PrimitiveType
	for _, ltyp := range lhs.ValidTypes {
		for _, rtyp := range rhs.ValidTypes {
			if ltyp == rtyp {
				common = append(common, ltyp)
				break
			}
		}
	}

	if len(common) == 0 {
		return false
	}

	// The two numbers must infer together: sharing the valid type set makes
	// whichever concrete type is eventually chosen propagate to both.
	lhs.ValidTypes = common
	rhs.InferredType = lhs

	return true
}

// unifyUntypedNumberWithConcrete unifies an untyped number with a concrete
// type.
func unifyUntypedNumberWithConcrete(un *UntypedNumber, concrete Type) bool {
	for _, typ := range un.ValidTypes {
		if Equals(typ, concrete) {
			un.InferredType = concrete
			return true
		}
	}

	return false
}
