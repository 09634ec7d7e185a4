// Copyright 2026 The Quarry Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package testsource

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/callgraph/static"
	"golang.org/x/tools/go/ssa"

	"github.com/quarrylint/quarry/lint"
)

// PackageSource is one package of a test program, given as a single file.
type PackageSource struct {
	Path   string
	Source string
}

// Program parses, type-checks and IR-builds the given packages into a
// [lint.Program] with a static call graph. Packages must be listed in
// dependency order; standard-library imports are resolved through the
// default importer.
func Program(tb testing.TB, pkgs ...PackageSource) *lint.Program {
	tb.Helper()

	fset := token.NewFileSet()
	prog := ssa.NewProgram(fset, ssa.SanityCheckFunctions)

	imp := &programImporter{
		local: make(map[string]*types.Package),
		def:   importer.Default(),
	}
	created := make(map[*types.Package]bool)

	var lintPkgs []*lint.Package

	for _, src := range pkgs {
		f, err := parser.ParseFile(fset, src.Path+".go", src.Source, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			tb.Fatalf("Failed to parse package %s: %v", src.Path, err)
		}

		info := &types.Info{
			Types:      make(map[ast.Expr]types.TypeAndValue),
			Defs:       make(map[*ast.Ident]types.Object),
			Uses:       make(map[*ast.Ident]types.Object),
			Implicits:  make(map[ast.Node]types.Object),
			Selections: make(map[*ast.SelectorExpr]*types.Selection),
			Scopes:     make(map[ast.Node]*types.Scope),
			Instances:  make(map[*ast.Ident]types.Instance),
		}

		conf := types.Config{Importer: imp}

		pkg, err := conf.Check(src.Path, fset, []*ast.File{f}, info)
		if err != nil {
			tb.Fatalf("Failed to type-check package %s: %v", src.Path, err)
		}

		imp.local[src.Path] = pkg

		createImports(prog, pkg, created)

		ssapkg := prog.CreatePackage(pkg, []*ast.File{f}, info, true)
		created[pkg] = true

		lintPkgs = append(lintPkgs, lint.NewPackage(ssapkg, info, fset, []*ast.File{f}))
	}

	prog.Build()

	return &lint.Program{
		SSA:       prog,
		CallGraph: static.CallGraph(prog),
		Packages:  lintPkgs,
	}
}

// createImports creates IR package stubs for the whole import closure of
// pkg, dependencies first.
func createImports(prog *ssa.Program, pkg *types.Package, created map[*types.Package]bool) {
	for _, imp := range pkg.Imports() {
		if created[imp] {
			continue
		}

		created[imp] = true
		createImports(prog, imp, created)
		prog.CreatePackage(imp, nil, nil, true)
	}
}

type programImporter struct {
	local map[string]*types.Package
	def   types.Importer
}

func (i *programImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := i.local[path]; ok {
		return pkg, nil
	}

	return i.def.Import(path)
}
