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

// Package deprecated builds the program-wide deprecation index. The index
// is constructed once, before any check runs, and is read-only afterwards.
package deprecated

import (
	"go/ast"
	"go/types"
	"strings"

	"github.com/quarrylint/quarry/lint"
)

// Index maps declared symbols and whole packages to their deprecation
// guidance. The zero Index is empty and usable.
type Index struct {
	objects  map[types.Object]string
	packages map[*types.Package]string
}

// Build scans the declarations of every package for deprecation markers in
// their documentation comments.
func Build(pkgs []*lint.Package) *Index {
	ix := &Index{
		objects:  make(map[types.Object]string),
		packages: make(map[*types.Package]string),
	}

	for _, pkg := range pkgs {
		for _, f := range pkg.Files {
			if msg, ok := Message(f.Doc); ok {
				ix.packages[pkg.Types] = msg
			}

			for _, decl := range f.Decls {
				ix.addDecl(pkg.Info, decl)
			}
		}
	}

	return ix
}

func (ix *Index) addDecl(info *types.Info, decl ast.Decl) {
	switch decl := decl.(type) {
	case *ast.FuncDecl:
		if msg, ok := Message(decl.Doc); ok {
			ix.addIdent(info, decl.Name, msg)
		}

	case *ast.GenDecl:
		declMsg, declOK := Message(decl.Doc)

		for _, spec := range decl.Specs {
			switch spec := spec.(type) {
			case *ast.ValueSpec:
				msg, ok := Message(spec.Doc)
				if !ok {
					msg, ok = declMsg, declOK
				}

				if ok {
					for _, name := range spec.Names {
						ix.addIdent(info, name, msg)
					}
				}

			case *ast.TypeSpec:
				msg, ok := Message(spec.Doc)
				if !ok {
					msg, ok = declMsg, declOK
				}

				if ok {
					ix.addIdent(info, spec.Name, msg)
				}
			}
		}
	}
}

func (ix *Index) addIdent(info *types.Info, ident *ast.Ident, msg string) {
	if obj := info.Defs[ident]; obj != nil {
		ix.objects[obj] = msg
	}
}

// Object returns the deprecation guidance recorded for obj.
func (ix *Index) Object(obj types.Object) (string, bool) {
	msg, ok := ix.objects[obj]

	return msg, ok
}

// Package returns the deprecation guidance recorded for pkg.
func (ix *Index) Package(pkg *types.Package) (string, bool) {
	msg, ok := ix.packages[pkg]

	return msg, ok
}

// Message extracts deprecation guidance from a documentation comment. Only
// the final paragraph counts: a "Deprecated: " paragraph followed by more
// prose does not mark the symbol. The marker is stripped and line breaks
// are collapsed.
func Message(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}

	paras := strings.Split(doc.Text(), "\n\n")

	rest, ok := strings.CutPrefix(paras[len(paras)-1], "Deprecated: ")
	if !ok {
		return "", false
	}

	return strings.Join(strings.Fields(rest), " "), true
}
