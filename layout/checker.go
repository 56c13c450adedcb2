package layout

import (
	"strings"

	"sablec/ast"
	"sablec/common"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// Checker validates the layout inheritance declarations of a module.  A
// struct may declare `@layout("Target")` to assert that it shares the memory
// layout of another struct: the two structs must have the same number of
// fields and every pair of corresponding fields must have compatible types.
// Layout compatibility is transitive, so declarations are resolved iteratively
// until a fixpoint is reached or the module's iteration limit is exceeded.
type Checker struct {
	// mod is the module being checked.
	mod *depm.SableModule

	// decls is the list of pending layout declarations.
	decls []*layoutDecl

	// declared maps struct types to their layout declaration.
	declared map[*types.StructType]*layoutDecl

	// reps maps struct types to the representative of their layout class.
	// Structs with the same representative are layout compatible.
	reps map[*types.StructType]*types.StructType
}

// layoutDecl is a single pending `@layout` declaration.
type layoutDecl struct {
	// file is the source file the declaration occurs in.
	file *depm.SableFile

	// st is the struct type declaring the layout.
	st *types.StructType

	// target is the struct type whose layout is inherited.  This is nil until
	// the target name is resolved.
	target *types.StructType

	// annot is the `@layout` annotation value.
	annot ast.AnnotValue

	// resolved indicates that the declaration has been fully checked.
	resolved bool
}

// Check validates all layout declarations of the given module.
func Check(mod *depm.SableModule) {
	c := &Checker{
		mod:      mod,
		declared: make(map[*types.StructType]*layoutDecl),
		reps:     make(map[*types.StructType]*types.StructType),
	}

	c.collectDecls()

	if !report.AnyErrors() {
		c.resolveDecls()
	}
}

/* -------------------------------------------------------------------------- */

// collectDecls walks all struct definitions of the module, validates their
// layout related annotations, and collects the pending layout declarations.
func (c *Checker) collectDecls() {
	for _, pkg := range c.mod.Packages() {
		for _, file := range pkg.Files {
			for _, def := range file.Definitions {
				if sd, ok := def.(*ast.StructDef); ok {
					c.collectStructDecl(file, sd)
				}
			}
		}
	}
}

// collectStructDecl validates the annotations of a single struct definition
// and records its layout declaration if it has one.
func (c *Checker) collectStructDecl(file *depm.SableFile, sd *ast.StructDef) {
	st := sd.Symbol.Type.(*types.StructType)

	if st.Transparent {
		if st.Growable {
			c.error(file, sd.Annotations["transparent"].NameSpan,
				"%s cannot be both transparent and growable", sd.Symbol.Name)
		}

		if len(st.Fields) != 1 {
			c.error(file, sd.Annotations["transparent"].NameSpan,
				"transparent struct %s must have exactly one field", sd.Symbol.Name)
		}
	}

	annot, ok := sd.Annotations["layout"]
	if !ok {
		return
	}

	if st.Transparent {
		c.error(file, annot.NameSpan,
			"%s cannot declare a layout because it is transparent", sd.Symbol.Name)
		return
	}

	if st.Growable {
		c.error(file, annot.NameSpan,
			"%s cannot declare a layout because it is growable", sd.Symbol.Name)
		return
	}

	if annot.Value == "" {
		c.error(file, annot.NameSpan, "layout annotation requires a type argument")
		return
	}

	decl := &layoutDecl{file: file, st: st, annot: annot}
	if c.resolveTarget(decl) {
		c.decls = append(c.decls, decl)
		c.declared[st] = decl
	}
}

// resolveTarget resolves the target name of a layout declaration to a struct
// type.  The target may be a plain name referring to a struct in the declaring
// package or a dotted `pkg.Name` referring to a struct in another package of
// the module.
func (c *Checker) resolveTarget(decl *layoutDecl) bool {
	targetName := decl.annot.Value
	pkg := decl.file.Parent

	if pkgName, name, ok := strings.Cut(targetName, "."); ok {
		targetPkg, ok := c.mod.LookupPackage(pkgName)
		if !ok {
			c.error(decl.file, decl.annot.ValSpan, "undefined package: %s", pkgName)
			return false
		}

		pkg = targetPkg
		targetName = name
	}

	sym, ok := pkg.SymbolTable[targetName]
	if !ok {
		c.error(decl.file, decl.annot.ValSpan, "undefined symbol: %s", targetName)
		return false
	}

	target, ok := sym.Type.(*types.StructType)
	if !ok || sym.DefKind != common.DefKindType {
		c.error(decl.file, decl.annot.ValSpan, "layout target %s is not a struct type", targetName)
		return false
	}

	if target.Growable {
		c.error(decl.file, decl.annot.ValSpan,
			"growable struct %s cannot be a layout target", targetName)
		return false
	}

	if target == decl.st {
		c.error(decl.file, decl.annot.ValSpan,
			"%s cannot declare its own layout as its layout target", decl.st.Name())
		return false
	}

	// A cross-package layout target must be fully public.
	if pkg != decl.file.Parent {
		for _, field := range target.Fields {
			if !field.Public {
				c.error(decl.file, decl.annot.ValSpan,
					"layout target %s has non-public fields and cannot be inherited across packages",
					targetName)
				return false
			}
		}
	}

	decl.target = target
	return true
}

/* -------------------------------------------------------------------------- */

// resolveDecls iteratively resolves the collected layout declarations until a
// fixpoint is reached.  A declaration can only be checked once its target's
// own layout declaration (if any) has been resolved, so chained declarations
// resolve over multiple passes.  The number of passes is bounded by the
// module's layout iteration limit: declarations still pending after the final
// pass form a dependency cycle and are reported as unresolvable.
func (c *Checker) resolveDecls() {
	pending := len(c.decls)

	for i := 0; i < c.mod.LayoutIterLimit && pending > 0; i++ {
		progressed := false

		for _, decl := range c.decls {
			if decl.resolved {
				continue
			}

			// The target must itself be resolved before this declaration can
			// be checked against it.
			if targetDecl, ok := c.declared[decl.target]; ok && !targetDecl.resolved {
				continue
			}

			c.checkCompatibility(decl)

			decl.resolved = true
			pending--
			progressed = true
		}

		if !progressed {
			break
		}
	}

	for _, decl := range c.decls {
		if !decl.resolved {
			c.error(decl.file, decl.annot.NameSpan,
				"layout of %s did not resolve within %d iterations",
				decl.st.Name(), c.mod.LayoutIterLimit)
		}
	}
}

// checkCompatibility checks that a declaring struct is layout compatible with
// its target and, if so, merges the two into one layout class.
func (c *Checker) checkCompatibility(decl *layoutDecl) {
	st, target := decl.st, decl.target

	if len(st.Fields) != len(target.Fields) {
		c.error(decl.file, decl.annot.NameSpan,
			"%s has %d fields but its layout target %s has %d",
			st.Name(), len(st.Fields), target.Name(), len(target.Fields))
		return
	}

	for i, field := range st.Fields {
		targetField := target.Fields[i]

		if !c.fieldCompatible(field.Type, targetField.Type) {
			c.error(decl.file, decl.annot.NameSpan,
				"field %s of %s has type %s which is not layout compatible with type %s of field %s of %s",
				field.Name, st.Name(), field.Type.Repr(),
				targetField.Type.Repr(), targetField.Name, target.Name())
			return
		}
	}

	c.union(st, target)
}

// fieldCompatible returns whether two field types occupy layout compatible
// storage: they are equal, they are structs of the same layout class, or they
// become one of the two after transparent wrappers are unwrapped.
func (c *Checker) fieldCompatible(a, b types.Type) bool {
	a, b = unwrapTransparent(a), unwrapTransparent(b)

	if types.Equals(a, b) {
		return true
	}

	if sa, ok := types.InnerType(a).(*types.StructType); ok {
		if sb, ok := types.InnerType(b).(*types.StructType); ok {
			return c.find(sa) == c.find(sb)
		}
	}

	return false
}

// unwrapTransparent unwraps any nesting of transparent single field wrappers
// around a type.
func unwrapTransparent(typ types.Type) types.Type {
	for {
		st, ok := types.InnerType(typ).(*types.StructType)
		if !ok || !st.Transparent || len(st.Fields) != 1 {
			return typ
		}

		typ = st.Fields[0].Type
	}
}

/* -------------------------------------------------------------------------- */

// find returns the representative of a struct's layout class.
func (c *Checker) find(st *types.StructType) *types.StructType {
	rep, ok := c.reps[st]
	if !ok || rep == st {
		return st
	}

	rep = c.find(rep)
	c.reps[st] = rep
	return rep
}

// union merges the layout classes of two structs.
func (c *Checker) union(a, b *types.StructType) {
	c.reps[c.find(a)] = c.find(b)
}

/* -------------------------------------------------------------------------- */

// error reports a compile error in the given file over the given span.
func (c *Checker) error(file *depm.SableFile, span *report.TextSpan, msg string, args ...interface{}) {
	report.ReportCompileError(file.AbsPath, file.ReprPath, span, msg, args...)
}
