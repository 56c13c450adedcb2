package layout

import (
	"strings"
	"testing"

	"sablec/ast"
	"sablec/common"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// newTestModule creates a single package module with one source file for
// layout checking tests.
func newTestModule(iterLimit int) (*depm.SableModule, *depm.SableFile) {
	mod := &depm.SableModule{
		ID:              1,
		Name:            "test",
		LayoutIterLimit: iterLimit,
		SubPackages:     make(map[string]*depm.SablePackage),
	}

	pkg := &depm.SablePackage{
		ID:          1,
		Name:        "test",
		Parent:      mod,
		SymbolTable: make(map[string]*common.Symbol),
	}
	mod.RootPackage = pkg

	file := &depm.SableFile{Parent: pkg, ReprPath: "[test] test.sbl"}
	pkg.Files = append(pkg.Files, file)

	return mod, file
}

// addPackage adds a sub-package with one source file to the given module.
func addPackage(mod *depm.SableModule, name string) *depm.SableFile {
	pkg := &depm.SablePackage{
		ID:          uint64(len(mod.SubPackages) + 2),
		Name:        name,
		Parent:      mod,
		SymbolTable: make(map[string]*common.Symbol),
	}
	mod.SubPackages[name] = pkg

	file := &depm.SableFile{Parent: pkg, ReprPath: "[" + name + "] " + name + ".sbl"}
	pkg.Files = append(pkg.Files, file)

	return file
}

// addStruct defines a struct in the given file and returns its type.
func addStruct(file *depm.SableFile, name string, annots map[string]ast.AnnotValue, fields ...types.StructField) *types.StructType {
	pkg := file.Parent

	indices := make(map[string]int)
	for i, field := range fields {
		indices[field.Name] = i
	}

	st := &types.StructType{
		NamedTypeBase: types.NewNamedTypeBase(pkg.Name+"."+name, pkg.ID, len(file.Definitions)),
		Fields:        fields,
		Indices:       indices,
	}

	if annots == nil {
		annots = make(map[string]ast.AnnotValue)
	}

	if _, ok := annots["transparent"]; ok {
		st.Transparent = true
	}
	if _, ok := annots["growable"]; ok {
		st.Growable = true
	}

	sym := &common.Symbol{
		Name:     name,
		ParentID: pkg.ID,
		Type:     st,
		DefKind:  common.DefKindType,
		Constant: true,
	}
	pkg.SymbolTable[name] = sym

	file.Definitions = append(file.Definitions, &ast.StructDef{
		Symbol:      sym,
		Annotations: annots,
	})

	return st
}

// layoutOf builds the annotation map for a `@layout` declaration.
func layoutOf(target string) map[string]ast.AnnotValue {
	return map[string]ast.AnnotValue{"layout": {Value: target}}
}

// assertErrors checks that exactly the expected error messages were reported.
func assertErrors(t *testing.T, expected ...string) {
	t.Helper()

	diags := report.Diagnostics()
	if len(diags) != len(expected) {
		t.Fatalf("expected %d diagnostics, got %d: %v", len(expected), len(diags), diagMessages(diags))
	}

	for i, want := range expected {
		if !strings.Contains(diags[i].Message, want) {
			t.Errorf("expected diagnostic %d to contain %q, got %q", i, want, diags[i].Message)
		}
	}
}

func diagMessages(diags []*report.Diagnostic) []string {
	msgs := make([]string, len(diags))
	for i, diag := range diags {
		msgs[i] = diag.Message
	}
	return msgs
}

/* -------------------------------------------------------------------------- */

func TestCompatibleLayoutAccepted(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Base", nil,
		types.StructField{Name: "x", Type: types.PrimTypeI64},
		types.StructField{Name: "y", Type: types.PrimTypeI32},
	)
	addStruct(file, "View", layoutOf("Base"),
		types.StructField{Name: "a", Type: types.PrimTypeI64},
		types.StructField{Name: "b", Type: types.PrimTypeI32},
	)

	Check(mod)
	assertErrors(t)
}

func TestFieldCountMismatchRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Base",
		nil,
		types.StructField{Name: "x", Type: types.PrimTypeI64},
	)
	addStruct(file, "View", layoutOf("Base"),
		types.StructField{Name: "a", Type: types.PrimTypeI64},
		types.StructField{Name: "b", Type: types.PrimTypeI32},
	)

	Check(mod)
	assertErrors(t, "has 2 fields but its layout target test.Base has 1")
}

func TestIncompatibleFieldTypeRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Base", nil,
		types.StructField{Name: "x", Type: types.PrimTypeI64},
	)
	addStruct(file, "View", layoutOf("Base"),
		types.StructField{Name: "a", Type: types.PrimTypeF64},
	)

	Check(mod)
	assertErrors(t, "not layout compatible")
}

func TestTransparentWrapperFieldsCompatible(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Wrapper", map[string]ast.AnnotValue{"transparent": {}},
		types.StructField{Name: "value", Type: types.PrimTypeI64},
	)
	wrapper := file.Parent.SymbolTable["Wrapper"].Type

	addStruct(file, "Base", nil,
		types.StructField{Name: "x", Type: types.PrimTypeI64},
	)
	addStruct(file, "View", layoutOf("Base"),
		types.StructField{Name: "a", Type: wrapper},
	)

	Check(mod)
	assertErrors(t)
}

func TestLayoutClassFieldsCompatible(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	// A and B are in the same layout class, so a struct holding an A may
	// declare the layout of a struct holding a B.
	addStruct(file, "B", nil, types.StructField{Name: "x", Type: types.PrimTypeI64})
	a := addStruct(file, "A", layoutOf("B"), types.StructField{Name: "x", Type: types.PrimTypeI64})
	b := file.Parent.SymbolTable["B"].Type

	addStruct(file, "HoldsB", nil, types.StructField{Name: "inner", Type: b})
	addStruct(file, "HoldsA", layoutOf("HoldsB"), types.StructField{Name: "inner", Type: a})

	Check(mod)
	assertErrors(t)
}

func TestLayoutClassMembersShareSizeAndAlign(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	wrapper := addStruct(file, "Wrapper",
		map[string]ast.AnnotValue{"transparent": {}},
		types.StructField{Name: "value", Type: types.PrimTypeI64},
	)
	base := addStruct(file, "Base", nil,
		types.StructField{Name: "x", Type: types.PrimTypeI64},
		types.StructField{Name: "y", Type: types.PrimTypeI32},
	)
	view := addStruct(file, "View", layoutOf("Base"),
		types.StructField{Name: "x", Type: wrapper},
		types.StructField{Name: "y", Type: types.PrimTypeI32},
	)

	Check(mod)
	assertErrors(t)

	if view.Size() != base.Size() {
		t.Errorf("expected layout class members to share a size, got %d and %d",
			view.Size(), base.Size())
	}

	if view.Align() != base.Align() {
		t.Errorf("expected layout class members to share an alignment, got %d and %d",
			view.Align(), base.Align())
	}

	if wrapper.Size() != types.PrimTypeI64.Size() || wrapper.Align() != types.PrimTypeI64.Align() {
		t.Error("expected a transparent wrapper to share its field's size and alignment")
	}
}

func TestChainedLayoutsResolveAcrossPasses(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	// A's declaration can only be checked after B's, which can only be
	// checked after C's.
	addStruct(file, "A", layoutOf("B"), types.StructField{Name: "x", Type: types.PrimTypeI64})
	addStruct(file, "B", layoutOf("C"), types.StructField{Name: "x", Type: types.PrimTypeI64})
	addStruct(file, "C", nil, types.StructField{Name: "x", Type: types.PrimTypeI64})

	Check(mod)
	assertErrors(t)
}

func TestChainExceedingIterLimitRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(2)

	// With an iteration limit of 2, only the two innermost declarations of
	// the chain resolve.
	addStruct(file, "A", layoutOf("B"), types.StructField{Name: "x", Type: types.PrimTypeI64})
	addStruct(file, "B", layoutOf("C"), types.StructField{Name: "x", Type: types.PrimTypeI64})
	addStruct(file, "C", layoutOf("D"), types.StructField{Name: "x", Type: types.PrimTypeI64})
	addStruct(file, "D", nil, types.StructField{Name: "x", Type: types.PrimTypeI64})

	Check(mod)
	assertErrors(t, "layout of test.A did not resolve within 2 iterations")
}

func TestLayoutCycleRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "A", layoutOf("B"), types.StructField{Name: "x", Type: types.PrimTypeI64})
	addStruct(file, "B", layoutOf("A"), types.StructField{Name: "x", Type: types.PrimTypeI64})

	Check(mod)
	assertErrors(t,
		"layout of test.A did not resolve within 16 iterations",
		"layout of test.B did not resolve within 16 iterations",
	)
}

func TestSelfLayoutRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "A", layoutOf("A"), types.StructField{Name: "x", Type: types.PrimTypeI64})

	Check(mod)
	assertErrors(t, "test.A cannot declare its own layout as its layout target")
}

func TestGrowableTargetRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Base", map[string]ast.AnnotValue{"growable": {}},
		types.StructField{Name: "x", Type: types.PrimTypeI64},
	)
	addStruct(file, "View", layoutOf("Base"),
		types.StructField{Name: "a", Type: types.PrimTypeI64},
	)

	Check(mod)
	assertErrors(t, "growable struct Base cannot be a layout target")
}

func TestGrowableDeclaringLayoutRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Base", nil, types.StructField{Name: "x", Type: types.PrimTypeI64})

	annots := layoutOf("Base")
	annots["growable"] = ast.AnnotValue{}
	addStruct(file, "View", annots, types.StructField{Name: "a", Type: types.PrimTypeI64})

	Check(mod)
	assertErrors(t, "View cannot declare a layout because it is growable")
}

func TestTransparentDeclaringLayoutRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Base", nil, types.StructField{Name: "x", Type: types.PrimTypeI64})

	annots := layoutOf("Base")
	annots["transparent"] = ast.AnnotValue{}
	addStruct(file, "View", annots, types.StructField{Name: "a", Type: types.PrimTypeI64})

	Check(mod)
	assertErrors(t, "View cannot declare a layout because it is transparent")
}

func TestTransparentStructFieldCountEnforced(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Wrapper", map[string]ast.AnnotValue{"transparent": {}},
		types.StructField{Name: "a", Type: types.PrimTypeI64},
		types.StructField{Name: "b", Type: types.PrimTypeI64},
	)

	Check(mod)
	assertErrors(t, "transparent struct Wrapper must have exactly one field")
}

func TestTransparentGrowableConflictRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "Both", map[string]ast.AnnotValue{"transparent": {}, "growable": {}},
		types.StructField{Name: "a", Type: types.PrimTypeI64},
	)

	Check(mod)
	assertErrors(t, "Both cannot be both transparent and growable")
}

func TestMissingLayoutArgumentRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "View", map[string]ast.AnnotValue{"layout": {}},
		types.StructField{Name: "a", Type: types.PrimTypeI64},
	)

	Check(mod)
	assertErrors(t, "layout annotation requires a type argument")
}

func TestUndefinedTargetRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "View", layoutOf("Missing"),
		types.StructField{Name: "a", Type: types.PrimTypeI64},
	)

	Check(mod)
	assertErrors(t, "undefined symbol: Missing")
}

func TestUndefinedTargetPackageRejected(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)

	addStruct(file, "View", layoutOf("nowhere.Base"),
		types.StructField{Name: "a", Type: types.PrimTypeI64},
	)

	Check(mod)
	assertErrors(t, "undefined package: nowhere")
}

func TestCrossPackageTargetRequiresPublicFields(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)
	otherFile := addPackage(mod, "other")

	addStruct(otherFile, "Base", nil,
		types.StructField{Name: "x", Type: types.PrimTypeI64},
	)
	addStruct(file, "View", layoutOf("other.Base"),
		types.StructField{Name: "a", Type: types.PrimTypeI64},
	)

	Check(mod)
	assertErrors(t, "layout target Base has non-public fields and cannot be inherited across packages")
}

func TestCrossPackagePublicTargetAccepted(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	mod, file := newTestModule(16)
	otherFile := addPackage(mod, "other")

	addStruct(otherFile, "Base", nil,
		types.StructField{Name: "x", Type: types.PrimTypeI64, Public: true},
	)
	addStruct(file, "View", layoutOf("other.Base"),
		types.StructField{Name: "a", Type: types.PrimTypeI64},
	)

	Check(mod)
	assertErrors(t)
}
