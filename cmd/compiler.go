// Package cmd is the top-level "driver" package for the Sable compiler: it
// contains all the functionality for parsing command-line arguments, managing
// compiler state, and running all the various phases of the compiler.
package cmd

import (
	"sablec/depm"
	"sablec/layout"
	"sablec/report"
)

// Compiler represents the overall state and configuration of compilation.
type Compiler struct {
	// The path to the root directory of the module being checked.
	rootPath string

	// The module being checked.
	mod *depm.SableModule
}

// NewCompiler creates a new compiler rooted at the given module directory.
func NewCompiler(rootPath string) *Compiler {
	return &Compiler{rootPath: rootPath}
}

// Check is the main entry point of the compiler.  It loads the module rooted
// at the compiler's root path and runs all analysis phases over it, returning
// a non-zero exit code if any errors were reported.
func (c *Compiler) Check() int {
	// Load the module manifest.
	mod, ok := depm.LoadModule(c.rootPath)
	if !ok {
		return 1
	}
	c.mod = mod

	// Parse the module's packages.
	if !c.InitPackages() {
		return 1
	}

	// Perform symbol resolution and infinite type checking.
	if !c.ResolveSymbols() {
		return 1
	}

	// Check layout inheritance declarations.
	layout.Check(c.mod)
	if report.AnyErrors() {
		return 1
	}

	// Perform semantic analysis.
	if !c.WalkPackages() {
		return 1
	}

	return 0
}
