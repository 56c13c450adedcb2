package types

import "testing"

func TestPrimitiveSizes(t *testing.T) {
	cases := []struct {
		typ   PrimitiveType
		size  int
		align int
	}{
		{PrimTypeUnit, 0, 1},
		{PrimTypeBool, 1, 1},
		{PrimTypeI8, 1, 1},
		{PrimTypeU8, 1, 1},
		{PrimTypeI16, 2, 2},
		{PrimTypeU16, 2, 2},
		{PrimTypeI32, 4, 4},
		{PrimTypeU32, 4, 4},
		{PrimTypeI64, 8, 8},
		{PrimTypeU64, 8, 8},
		{PrimTypeF32, 4, 4},
		{PrimTypeF64, 8, 8},
	}

	for _, c := range cases {
		if c.typ.Size() != c.size {
			t.Errorf("expected %s to have size %d, got %d", c.typ.Repr(), c.size, c.typ.Size())
		}

		if c.typ.Align() != c.align {
			t.Errorf("expected %s to have alignment %d, got %d", c.typ.Repr(), c.align, c.typ.Align())
		}
	}
}

func TestStructSizeAndAlign(t *testing.T) {
	// struct { a: i8; b: i64; c: i16; }
	st := &StructType{
		NamedTypeBase: NewNamedTypeBase("test.Padded", 1, 0),
		Fields: []StructField{
			{Name: "a", Type: PrimTypeI8},
			{Name: "b", Type: PrimTypeI64},
			{Name: "c", Type: PrimTypeI16},
		},
		Indices: map[string]int{"a": 0, "b": 1, "c": 2},
	}

	if st.Size() != 18 {
		t.Errorf("expected struct size 18, got %d", st.Size())
	}

	if st.Align() != 8 {
		t.Errorf("expected struct alignment 8, got %d", st.Align())
	}
}

func TestEmptyStructAlign(t *testing.T) {
	st := &StructType{
		NamedTypeBase: NewNamedTypeBase("test.Empty", 1, 0),
		Indices:       map[string]int{},
	}

	if st.Size() != 0 {
		t.Errorf("expected empty struct size 0, got %d", st.Size())
	}

	if st.Align() != 1 {
		t.Errorf("expected empty struct alignment 1, got %d", st.Align())
	}
}

func TestTupleSizeAndAlign(t *testing.T) {
	// (i32, i8, i16)
	tt := &TupleType{ElementTypes: []Type{PrimTypeI32, PrimTypeI8, PrimTypeI16}}

	if tt.Size() != 8 {
		t.Errorf("expected tuple size 8, got %d", tt.Size())
	}

	if tt.Align() != 4 {
		t.Errorf("expected tuple alignment 4, got %d", tt.Align())
	}
}

func TestRefAndArraySizes(t *testing.T) {
	rt := &RefType{ElemType: PrimTypeI32}
	if rt.Size() != 8 || rt.Align() != 8 {
		t.Errorf("expected reference to be pointer sized, got size %d align %d", rt.Size(), rt.Align())
	}

	at := &ArrayType{ElemType: PrimTypeU8}
	if at.Size() != 16 {
		t.Errorf("expected array view size 16, got %d", at.Size())
	}
}

func TestEquals(t *testing.T) {
	if !Equals(PrimTypeI32, PrimTypeI32) {
		t.Error("expected i32 == i32")
	}

	if Equals(PrimTypeI32, PrimTypeU32) {
		t.Error("expected i32 != u32")
	}

	a := &RefType{ElemType: PrimTypeI32}
	b := &RefType{ElemType: PrimTypeI32}
	if !Equals(a, b) {
		t.Error("expected &i32 == &i32")
	}

	pinned := &RefType{ElemType: PrimTypeI32, Pinned: true}
	if Equals(a, pinned) {
		t.Error("expected &i32 != &pin i32")
	}
}

func TestNamedTypeEquality(t *testing.T) {
	a := &StructType{NamedTypeBase: NewNamedTypeBase("test.Vec", 1, 0), Indices: map[string]int{}}
	b := &StructType{NamedTypeBase: NewNamedTypeBase("test.Vec", 1, 0), Indices: map[string]int{}}
	c := &StructType{NamedTypeBase: NewNamedTypeBase("test.Vec", 2, 0), Indices: map[string]int{}}

	if !Equals(a, b) {
		t.Error("expected identically named structs in the same package to be equal")
	}

	if Equals(a, c) {
		t.Error("expected identically named structs in different packages to be unequal")
	}
}

func TestOpaqueTypeResolution(t *testing.T) {
	st := &StructType{
		NamedTypeBase: NewNamedTypeBase("test.Wrapper", 1, 0),
		Fields:        []StructField{{Name: "value", Type: PrimTypeI64}},
		Indices:       map[string]int{"value": 0},
	}

	ot := &OpaqueType{Name: "Wrapper", Value: st}

	if !Equals(ot, st) {
		t.Error("expected resolved opaque type to equal its value")
	}

	if ot.Size() != st.Size() {
		t.Errorf("expected opaque type size %d, got %d", st.Size(), ot.Size())
	}
}

func TestUnifyUntypedNumberWithConcrete(t *testing.T) {
	un := &UntypedNumber{
		DisplayName: "untyped int literal",
		ValidTypes:  []PrimitiveType{PrimTypeI32, PrimTypeU32, PrimTypeI64, PrimTypeU64},
	}

	if !Unify(PrimTypeU64, un) {
		t.Fatal("expected untyped int to unify with u64")
	}

	if !Equals(un, PrimTypeU64) {
		t.Errorf("expected inferred type u64, got %s", un.Repr())
	}
}

func TestUnifyUntypedNumbersTogether(t *testing.T) {
	a := &UntypedNumber{
		DisplayName: "untyped int literal",
		ValidTypes:  []PrimitiveType{PrimTypeI32, PrimTypeU32, PrimTypeI64, PrimTypeU64},
	}
	b := &UntypedNumber{
		DisplayName: "untyped int literal",
		ValidTypes:  []PrimitiveType{PrimTypeI64, PrimTypeU64},
	}

	if !Unify(a, b) {
		t.Fatal("expected untyped ints to unify together")
	}

	// A later concrete inference on one number must propagate to the other.
	if !Unify(a, PrimTypeU64) {
		t.Fatal("expected joined untyped int to unify with u64")
	}

	if !Equals(b, PrimTypeU64) {
		t.Errorf("expected propagated type u64, got %s", b.Repr())
	}
}

func TestUnifyRejectsOutOfRange(t *testing.T) {
	un := &UntypedNumber{
		DisplayName: "untyped int literal",
		ValidTypes:  []PrimitiveType{PrimTypeI64, PrimTypeU64},
	}

	if Unify(PrimTypeI8, un) {
		t.Error("expected untyped int too large for i8 not to unify")
	}

	if un.InferredType != nil {
		t.Error("expected failed unification not to infer a type")
	}
}

func TestUntypedNumberDefault(t *testing.T) {
	un := &UntypedNumber{
		DisplayName: "untyped int literal",
		ValidTypes:  []PrimitiveType{PrimTypeI32, PrimTypeU32, PrimTypeI64, PrimTypeU64},
	}

	un.Default()

	if !Equals(un, PrimTypeI32) {
		t.Errorf("expected untyped int to default to i32, got %s", un.Repr())
	}
}

func TestUnifyRefTypes(t *testing.T) {
	a := &RefType{ElemType: PrimTypeI32, Pinned: true}
	b := &RefType{ElemType: PrimTypeI32, Pinned: true}
	c := &RefType{ElemType: PrimTypeI32}

	if !Unify(a, b) {
		t.Error("expected matching pinned references to unify")
	}

	if Unify(a, c) {
		t.Error("expected pinned and unpinned references not to unify")
	}
}

func TestIsCopyType(t *testing.T) {
	if !IsCopyType(PrimTypeI32) {
		t.Error("expected primitives to be copy types")
	}

	if !IsCopyType(&RefType{ElemType: PrimTypeI32}) {
		t.Error("expected references to be copy types")
	}

	if !IsCopyType(&ArrayType{ElemType: PrimTypeU8}) {
		t.Error("expected array views to be copy types")
	}

	st := &StructType{NamedTypeBase: NewNamedTypeBase("test.S", 1, 0), Indices: map[string]int{}}
	if IsCopyType(st) {
		t.Error("expected structs to be move types")
	}

	if IsCopyType(&TupleType{ElementTypes: []Type{PrimTypeI32}}) {
		t.Error("expected tuples to be move types")
	}
}
