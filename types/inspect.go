package types

// Equals returns whether two types are equal.
func Equals(a, b Type) bool {
	bInner := InnerType(b)

	// Handle any special types that override normal equality logic.
	switch bInner.(type) {
	case *UntypedNumber:
		return bInner.equals(InnerType(a))
	}

	return InnerType(a).equals(bInner)
}

// InnerType returns the "inner" type of typ.  For most types, this is just an
// identity function; however, for types such as opaque named type references
// and untyped numbers which essentially just wrap other types, this method is
// useful.
func InnerType(typ Type) Type {
	switch v := typ.(type) {
	case *UntypedNumber:
		if v.InferredType != nil {
			return InnerType(v.InferredType)
		}
	case *OpaqueType:
		if v.Value != nil {
			return InnerType(v.Value)
		}
	}

	return typ
}

// IsUnit returns whether the given type is a unit type.
func IsUnit(typ Type) bool {
	return Equals(typ, PrimTypeUnit)
}

// IsCopyType returns whether values of the given type are copied rather than
// moved when used as values: primitives, references, array views, and
// functions are all copy types; structs and tuples move.
func IsCopyType(typ Type) bool {
	switch InnerType(typ).(type) {
	case *StructType, *TupleType:
		return false
	default:
		return true
	}
}
