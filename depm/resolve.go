package depm

import (
	"sablec/common"
	"sablec/report"
	"sablec/types"
)

// ResolveOpaques resolves all opaque global symbol references in a file.  It
// returns false if not all opaque references could be resolved.
func ResolveOpaques(sbFile *SableFile) bool {
	allResolved := true

	for name, orefs := range sbFile.OpaqueRefs {
		if sym, ok := sbFile.Parent.SymbolTable[name]; ok {
			if sym.DefKind == common.DefKindType {
				for _, oref := range orefs {
					oref.Value = sym.Type.(types.NamedType)
				}
			} else {
				for _, oref := range orefs {
					report.ReportCompileError(sbFile.AbsPath, sbFile.ReprPath, oref.Span, "%s is not a type", name)
				}

				allResolved = false
			}
		} else {
			for _, oref := range orefs {
				report.ReportCompileError(sbFile.AbsPath, sbFile.ReprPath, oref.Span, "undefined symbol: %s", name)
			}

			allResolved = false
		}
	}

	return allResolved
}
