package types

// UntypedNumber is used to represent an untyped numeric constant.
type UntypedNumber struct {
	// The name used to represent this type in source code.
	DisplayName string

	// The list of types which are valid for this number.  The first entry is
	// the default type of the number.
	ValidTypes []PrimitiveType

	// The type inferred for this numeric constant.
	InferredType Type
}

func (un *UntypedNumber) equals(other Type) bool {
	if un.InferredType == nil {
		for _, typ := range un.ValidTypes {
			if typ.equals(other) {
				return true
			}
		}

		return false
	}

	return Equals(un.InferredType, other)
}

func (un *UntypedNumber) Size() int {
	if un.InferredType == nil {
		return un.ValidTypes[0].Size()
	}

	return un.InferredType.Size()
}

func (un *UntypedNumber) Align() int {
	if un.InferredType == nil {
		return un.ValidTypes[0].Align()
	}

	return un.InferredType.Align()
}

func (un *UntypedNumber) Repr() string {
	if un.InferredType == nil {
		return un.DisplayName
	}

	return un.InferredType.Repr()
}

// Default collapses the untyped number to its default type if no concrete type
// has been inferred for it.
func (un *UntypedNumber) Default() {
	if un.InferredType == nil {
		un.InferredType = un.ValidTypes[0]
	}
}
