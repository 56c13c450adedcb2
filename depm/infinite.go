package depm

import (
	"sablec/ast"
	"sablec/report"
	"sablec/types"
)

/*
Infinite Type Checking
----------------------

Here follows the algorithm used to perform infinite type checking:

This algorithm is a slight modification of the Three-Color DFS algorithm.

All named types have one of three colors associated with them:

1. White
2. Grey
3. Black

All named types start with the color white.  A depth-first search of the type
dependency graph is then performed by following all opaque references contained
inside named types if the reference is not indirect.

When each node is visited, it is initially assigned the color grey.  Then, all
its child nodes are visited in a depth-first fashion.  Once this has completed,
the color of the node is then updated to black.

Before visiting a child node, the algorithm checks the node's color.  If the
node is white, the node will be visited.  If the node is grey, then a cycle has
been found: the node is marked black and false is returned.  If the node is
black, the node is not visited.

The algorithm returns false if the recursive calls on any of the child nodes
return false.  The algorithm will be run with each declared named type as the
start node provided that node is not already colored black.  If the node is
colored black, then it has already been visited and all of its children have as
well.
*/

// CheckForInfiniteTypes checks all declared types of a module to make sure none
// are infinite.  It returns false if any infinite types are detected.
func CheckForInfiniteTypes(mod *SableModule) bool {
	noInfTypes := true

	for _, pkg := range mod.Packages() {
		for _, file := range pkg.Files {
			for _, def := range file.Definitions {
				sd, ok := def.(*ast.StructDef)
				if !ok {
					continue
				}

				if !searchFrom(sd.Symbol.Type.(types.NamedType)) {
					report.ReportCompileError(
						file.AbsPath,
						file.ReprPath,
						sd.Symbol.DefSpan,
						"infinite type: %s directly contains itself",
						sd.Symbol.Name,
					)
					noInfTypes = false
				}
			}
		}
	}

	return noInfTypes
}

// searchFrom performs the main infinite type detection algorithm as described
// above starting from the node start.  This function does NOT assume that the
// node is white or grey.
func searchFrom(nt types.NamedType) bool {
	switch nt.Color() {
	case types.ColorBlack:
		return true
	case types.ColorGrey:
		nt.SetColor(types.ColorBlack)
		return false
	default: // White
		nt.SetColor(types.ColorGrey)

		result := true
		if st, ok := nt.(*types.StructType); ok {
			for _, field := range st.Fields {
				if !searchChildren(types.InnerType(field.Type)) {
					result = false
					break
				}
			}
		}

		nt.SetColor(types.ColorBlack)
		return result
	}
}

// searchChildren searches all the child named types of a type.  References and
// array views aren't searched because they only refer to their element types
// indirectly.
func searchChildren(typ types.Type) bool {
	switch v := typ.(type) {
	case *types.StructType:
		return searchFrom(v)
	case *types.TupleType:
		for _, elemType := range v.ElementTypes {
			if !searchChildren(types.InnerType(elemType)) {
				return false
			}
		}
	}

	return true
}
