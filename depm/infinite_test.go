package depm

import (
	"strings"
	"testing"

	"sablec/ast"
	"sablec/common"
	"sablec/report"
	"sablec/types"
)

// newCycleTestModule creates a single package module for infinite type tests.
func newCycleTestModule() (*SableModule, *SableFile) {
	pkg := &SablePackage{
		ID:          1,
		Name:        "test",
		SymbolTable: make(map[string]*common.Symbol),
		Destructors: make(map[string]*common.Symbol),
	}

	file := &SableFile{
		Parent:     pkg,
		AbsPath:    "/test/test.sbl",
		ReprPath:   "[test] test.sbl",
		OpaqueRefs: make(map[string][]*types.OpaqueType),
	}
	pkg.Files = []*SableFile{file}

	mod := &SableModule{
		ID:          1,
		Name:        "test",
		RootPackage: pkg,
		SubPackages: make(map[string]*SablePackage),
	}
	pkg.Parent = mod

	return mod, file
}

// declareStruct adds a struct definition with the given fields to the file and
// returns its type so that tests can wire up cyclic field references.
func declareStruct(file *SableFile, name string, fields ...types.StructField) *types.StructType {
	indices := make(map[string]int)
	for i, field := range fields {
		indices[field.Name] = i
	}

	st := &types.StructType{
		NamedTypeBase: types.NewNamedTypeBase(
			file.Parent.Name+"."+name,
			file.Parent.ID,
			len(file.Definitions),
		),
		Fields:  fields,
		Indices: indices,
	}

	sym := &common.Symbol{
		Name:     name,
		ParentID: file.Parent.ID,
		DefSpan:  &report.TextSpan{},
		Type:     st,
		DefKind:  common.DefKindType,
		Constant: true,
	}

	file.Parent.SymbolTable[name] = sym
	file.Definitions = append(file.Definitions, &ast.StructDef{Symbol: sym})

	return st
}

func TestDirectSelfContainmentRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newCycleTestModule()

	node := declareStruct(file, "Node")
	node.Fields = append(node.Fields, types.StructField{Name: "next", Type: node})

	if CheckForInfiniteTypes(mod) {
		t.Fatal("expected infinite type to be detected")
	}

	diags := report.Diagnostics()
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "infinite type: Node directly contains itself") {
		t.Fatalf("expected an infinite type error for Node, got %v", diags)
	}
}

func TestMutualContainmentRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newCycleTestModule()

	a := declareStruct(file, "A")
	b := declareStruct(file, "B", types.StructField{Name: "a", Type: a})
	a.Fields = append(a.Fields, types.StructField{Name: "b", Type: b})

	if CheckForInfiniteTypes(mod) {
		t.Fatal("expected infinite type to be detected")
	}

	// The cycle is reported once, on the struct the search started from.
	diags := report.Diagnostics()
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "infinite type") {
		t.Fatalf("expected a single infinite type error, got %v", diags)
	}
}

func TestTupleEmbeddedCycleRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newCycleTestModule()

	tree := declareStruct(file, "Tree")
	tree.Fields = append(tree.Fields, types.StructField{
		Name: "children",
		Type: &types.TupleType{ElementTypes: []types.Type{types.PrimTypeI64, tree}},
	})

	if CheckForInfiniteTypes(mod) {
		t.Fatal("expected infinite type through a tuple element to be detected")
	}
}

func TestReferenceIndirectionAccepted(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newCycleTestModule()

	node := declareStruct(file, "Node")
	node.Fields = append(node.Fields, types.StructField{
		Name: "next",
		Type: &types.RefType{ElemType: node},
	})

	if !CheckForInfiniteTypes(mod) {
		t.Fatal("self reference through a reference type is not infinite")
	}

	if len(report.Diagnostics()) != 0 {
		t.Errorf("unexpected diagnostics: %v", report.Diagnostics())
	}
}

func TestArrayViewIndirectionAccepted(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newCycleTestModule()

	node := declareStruct(file, "Node")
	node.Fields = append(node.Fields, types.StructField{
		Name: "children",
		Type: &types.ArrayType{ElemType: node},
	})

	if !CheckForInfiniteTypes(mod) {
		t.Fatal("self containment through an array view is not infinite")
	}
}

func TestAcyclicStructsAccepted(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newCycleTestModule()

	inner := declareStruct(file, "Inner", types.StructField{Name: "x", Type: types.PrimTypeI64})
	declareStruct(file, "Outer", types.StructField{Name: "inner", Type: inner})

	if !CheckForInfiniteTypes(mod) {
		t.Fatalf("unexpected infinite type: %v", report.Diagnostics())
	}
}
