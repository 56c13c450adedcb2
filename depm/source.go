package depm

import (
	"sync"

	"sablec/ast"
	"sablec/common"
	"sablec/types"
)

// SableFile represents a Sable source file.
type SableFile struct {
	// Parent is the parent package to the file.
	Parent *SablePackage

	// FileNumber identifies the file within its parent package.
	FileNumber int

	// AbsPath is the absolute path to the source file.
	AbsPath string

	// ReprPath is the representative path used to display the file to the
	// user.
	ReprPath string

	// Definitions is the list of AST definitions that make up this source
	// file.
	Definitions []ast.ASTNode

	// OpaqueRefs is the table of opaque named type references created while
	// parsing this file, organized by referenced name.  These are resolved
	// against the global symbol table once the whole package is parsed.
	OpaqueRefs map[string][]*types.OpaqueType
}

// SablePackage represents a Sable source package: a directory of source files.
type SablePackage struct {
	// ID is the unique ID of this package.
	ID uint64

	// Name is the package name.
	Name string

	// AbsPath is the absolute path to the package directory.
	AbsPath string

	// Parent is the parent module to this package.
	Parent *SableModule

	// Files is a list of all the Sable source files that belong to this
	// package.
	Files []*SableFile

	// SymbolTable is the global symbol table for this package.  The files of a
	// package are parsed concurrently, so all definition during parsing must go
	// through DefineSymbol.
	SymbolTable map[string]*common.Symbol

	// tableMu guards SymbolTable while the package's files are being parsed.
	tableMu sync.Mutex

	// Destructors maps struct names to the symbols of their `@drop` functions.
	Destructors map[string]*common.Symbol
}

// DefineSymbol declares a global symbol in the package's symbol table.  It
// returns false if a symbol with the same name is already defined.  It is safe
// to call from multiple parse goroutines.
func (pkg *SablePackage) DefineSymbol(sym *common.Symbol) bool {
	pkg.tableMu.Lock()
	defer pkg.tableMu.Unlock()

	if _, ok := pkg.SymbolTable[sym.Name]; ok {
		return false
	}

	pkg.SymbolTable[sym.Name] = sym
	return true
}

/* -------------------------------------------------------------------------- */

// SableModule represents a Sable module: a directory tree of packages rooted
// by a module manifest.
type SableModule struct {
	// ID is the unique ID of this module.
	ID uint64

	// Name is the module name.
	Name string

	// AbsPath is the absolute path to the root of the module.
	AbsPath string

	// LayoutIterLimit bounds the number of passes the layout checker makes
	// while resolving layout inheritance declarations for this module.
	LayoutIterLimit int

	// RootPackage is the package at the module root.
	RootPackage *SablePackage

	// SubPackages is the map of sub-packages of this module organized by
	// package name.
	SubPackages map[string]*SablePackage
}

// Packages gets a list of the packages of this module.
func (m *SableModule) Packages() []*SablePackage {
	pkgs := make([]*SablePackage, len(m.SubPackages)+1)
	pkgs[0] = m.RootPackage

	n := 1
	for _, pkg := range m.SubPackages {
		pkgs[n] = pkg
		n++
	}

	return pkgs
}

// LookupPackage retrieves a package of this module by name.  The module's root
// package is identified by the module name.
func (m *SableModule) LookupPackage(name string) (*SablePackage, bool) {
	if m.RootPackage != nil && name == m.RootPackage.Name {
		return m.RootPackage, true
	}

	pkg, ok := m.SubPackages[name]
	return pkg, ok
}
