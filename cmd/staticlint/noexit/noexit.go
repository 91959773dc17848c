// Package noexit provides an analyzer that forbids terminating the process
// directly from main.main.
package noexit

import (
	"go/ast"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer reports calls to os.Exit and log.Fatal* inside main.main.
// Both skip deferred calls, so buffered logs and open listeners are never cleaned up.
var Analyzer = &analysis.Analyzer{
	Name: "noexit",
	Doc:  "prohibits os.Exit and log.Fatal in main.main",
	Run:  run,
}

var forbidden = map[string]map[string]bool{
	"os": {
		"Exit": true,
	},
	"log": {
		"Fatal":   true,
		"Fatalf":  true,
		"Fatalln": true,
	},
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		filename := pass.Fset.File(file.Pos()).Name()
		if isGoBuildCacheFile(filename) {
			continue
		}

		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Name.Name != "main" || fn.Recv != nil || fn.Body == nil {
				continue
			}

			ast.Inspect(fn.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}

				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}

				ident, ok := sel.X.(*ast.Ident)
				if !ok {
					return true
				}

				// Resolve through the import so aliases are caught.
				pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
				if !ok {
					return true
				}
				path := pkgName.Imported().Path()

				if forbidden[path][sel.Sel.Name] {
					pass.Reportf(call.Pos(), "avoid using %s.%s in main.main", path, sel.Sel.Name)
				}

				return true
			})
		}
	}
	return nil, nil
}

func isGoBuildCacheFile(path string) bool {
	path = filepath.ToSlash(path)
	return strings.Contains(path, "/go-build/")
}
