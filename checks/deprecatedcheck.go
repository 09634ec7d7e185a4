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

package checks

import (
	"go/ast"
	"go/types"

	"github.com/quarrylint/quarry/lint"
)

// CheckDeprecated flags references to deprecated symbols and packages.
// References within the declaring package are skipped, as are references
// from declarations that are themselves deprecated: deprecated code may
// call deprecated code.
func (c *Checker) CheckDeprecated(j *lint.Job) {
	for _, f := range j.Pkg.Files {
		for _, spec := range f.Imports {
			pn, ok := j.Pkg.Info.Implicits[spec].(*types.PkgName)
			if !ok {
				if spec.Name != nil {
					pn, _ = j.Pkg.Info.Defs[spec.Name].(*types.PkgName)
				}
			}

			if pn == nil {
				continue
			}

			if msg, ok := c.deprecated.Package(pn.Imported()); ok {
				j.Errorf(spec, "package %s is deprecated: %s", pn.Imported().Path(), msg)
			}
		}

		for _, decl := range f.Decls {
			if c.declDeprecated(j, decl) {
				continue
			}

			ast.Inspect(decl, func(n ast.Node) bool {
				sel, ok := n.(*ast.SelectorExpr)
				if !ok {
					return true
				}

				obj := j.Pkg.Info.Uses[sel.Sel]
				if obj == nil || obj.Pkg() == nil || obj.Pkg() == j.Pkg.Types {
					return true
				}

				if msg, ok := c.deprecated.Object(obj); ok {
					j.Errorf(sel, "%s is deprecated: %s", j.Render(sel), msg)
				}

				return true
			})
		}
	}
}

// declDeprecated reports whether the declaration's own symbols are
// deprecated.
func (c *Checker) declDeprecated(j *lint.Job, decl ast.Decl) bool {
	switch decl := decl.(type) {
	case *ast.FuncDecl:
		if obj := j.Pkg.Info.Defs[decl.Name]; obj != nil {
			if _, ok := c.deprecated.Object(obj); ok {
				return true
			}
		}

	case *ast.GenDecl:
		for _, spec := range decl.Specs {
			var names []*ast.Ident

			switch spec := spec.(type) {
			case *ast.ValueSpec:
				names = spec.Names
			case *ast.TypeSpec:
				names = []*ast.Ident{spec.Name}
			}

			for _, name := range names {
				if obj := j.Pkg.Info.Defs[name]; obj != nil {
					if _, ok := c.deprecated.Object(obj); ok {
						return true
					}
				}
			}
		}
	}

	return false
}
