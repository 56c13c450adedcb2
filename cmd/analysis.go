package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sablec/common"
	"sablec/depm"
	"sablec/report"
	"sablec/syntax"
	"sablec/types"
	"sablec/walk"
)

// InitPackages initializes and parses all the packages of the module: the
// root package at the module root directory and one sub-package for each
// immediate sub-directory containing source files.
func (c *Compiler) InitPackages() bool {
	c.mod.RootPackage = c.initPackage(c.mod.AbsPath, c.mod.Name)

	entries, err := os.ReadDir(c.mod.AbsPath)
	if err != nil {
		report.ReportFatal("failed to read module directory: %s", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		subAbsPath := filepath.Join(c.mod.AbsPath, entry.Name())
		if !dirHasSourceFiles(subAbsPath) {
			continue
		}

		c.mod.SubPackages[entry.Name()] = c.initPackage(subAbsPath, entry.Name())
	}

	return !report.AnyErrors()
}

// initPackage initializes the package at the given absolute path, parsing all
// of its source files concurrently.
func (c *Compiler) initPackage(pkgAbsPath, name string) *depm.SablePackage {
	pkg := &depm.SablePackage{
		ID:          depm.GenerateIDFromPath(pkgAbsPath),
		Name:        name,
		AbsPath:     pkgAbsPath,
		Parent:      c.mod,
		SymbolTable: make(map[string]*common.Symbol),
		Destructors: make(map[string]*common.Symbol),
	}

	// Validate the package name.
	if !depm.IsValidIdentifier(pkg.Name) {
		report.ReportFatal("%s is not a valid package name", pkg.Name)
	}

	entries, err := os.ReadDir(pkg.AbsPath)
	if err != nil {
		report.ReportFatal("failed to read directory of package %s: %s", pkg.Name, err)
	}

	// Parse all the source files in the package concurrently.
	wg := &sync.WaitGroup{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != common.SableFileExt {
			continue
		}

		sbFile := &depm.SableFile{
			Parent:     pkg,
			FileNumber: len(pkg.Files),
			AbsPath:    filepath.Join(pkg.AbsPath, entry.Name()),
			ReprPath:   fmt.Sprintf("[%s] %s", pkg.Name, entry.Name()),
			OpaqueRefs: make(map[string][]*types.OpaqueType),
		}

		pkg.Files = append(pkg.Files, sbFile)

		wg.Add(1)
		go func(sbFile *depm.SableFile) {
			syntax.ParseFile(sbFile)
			wg.Done()
		}(sbFile)
	}

	wg.Wait()

	if len(pkg.Files) == 0 {
		report.ReportFatal("package %s must contain source files", pkg.Name)
	}

	return pkg
}

// dirHasSourceFiles returns whether a directory directly contains any Sable
// source files.
func dirHasSourceFiles(absPath string) bool {
	entries, err := os.ReadDir(absPath)
	if err != nil {
		return false
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == common.SableFileExt {
			return true
		}
	}

	return false
}

/* -------------------------------------------------------------------------- */

// ResolveSymbols resolves all opaque named type references against their
// packages' symbol tables and checks the module for infinite types.
func (c *Compiler) ResolveSymbols() bool {
	for _, pkg := range c.mod.Packages() {
		for _, file := range pkg.Files {
			depm.ResolveOpaques(file)
		}
	}

	if report.AnyErrors() {
		return false
	}

	return depm.CheckForInfiniteTypes(c.mod)
}

// WalkPackages performs semantic analysis on all packages of the module.
// Packages are walked concurrently.
func (c *Compiler) WalkPackages() bool {
	wg := &sync.WaitGroup{}

	for _, pkg := range c.mod.Packages() {
		wg.Add(1)

		go func(pkg *depm.SablePackage) {
			for _, file := range pkg.Files {
				walk.WalkFile(file)
			}

			wg.Done()
		}(pkg)
	}

	wg.Wait()

	return !report.AnyErrors()
}
