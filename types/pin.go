package types

// Repinnable returns whether values of the given type may be freely pinned and
// unpinned.  An address sensitive struct is never repinnable.  Otherwise, a
// struct with no structurally pinned fields is unconditionally repinnable, and
// a struct with pinned fields is repinnable only if every pinned field's type
// is itself repinnable.  All non-struct types are repinnable.
func Repinnable(typ Type) bool {
	return repinnable(InnerType(typ), make(map[*StructType]struct{}))
}

func repinnable(typ Type, visiting map[*StructType]struct{}) bool {
	st, ok := typ.(*StructType)
	if !ok {
		return true
	}

	if st.Pinned {
		return false
	}

	// A cycle back to a struct already being examined cannot itself introduce
	// a non-repinnable pinned field.
	if _, ok := visiting[st]; ok {
		return true
	}
	visiting[st] = struct{}{}

	for _, field := range st.Fields {
		if field.Pinned && !repinnable(InnerType(field.Type), visiting) {
			return false
		}
	}

	return true
}

// HasPinnedFields returns whether the given type is a struct with at least one
// structurally pinned field.
func HasPinnedFields(typ Type) bool {
	if st, ok := InnerType(typ).(*StructType); ok {
		for _, field := range st.Fields {
			if field.Pinned {
				return true
			}
		}
	}

	return false
}
