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

// Package lint defines the analysis model shared by all checks: the
// program and package bundles handed to checks, the check table entries,
// and the diagnostic type collected from them.
package lint

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/ssa"

	"github.com/quarrylint/quarry/internal/astutil"
)

// Positioner is anything with a source position. Both AST nodes and IR
// instructions satisfy it.
type Positioner interface {
	Pos() token.Pos
}

// Diagnostic is one advisory finding. Diagnostics carry no severity and
// are never mutated after emission.
type Diagnostic struct {
	Pos      token.Pos `msgpack:"-"`
	Position token.Position
	Check    string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Position, d.Message, d.Check)
}

// Check is one entry of the check table. Identity is the ID; checks never
// share mutable state with each other.
type Check struct {
	// ID is the stable check identifier, e.g. "Q3008".
	ID string
	// FilterGenerated suppresses the check's diagnostics in generated files.
	FilterGenerated bool
	// Fn runs the check against one Job.
	Fn func(*Job)
	// Doc describes the defect the check reports.
	Doc string
}

// Checker exposes a named table of checks plus a one-time initialization
// over the whole program.
type Checker interface {
	Name() string
	Checks() []Check
	Init(prog *Program) error
}

// Program bundles the whole analyzed program: the IR, the call graph with
// statically resolved callees, and all packages under analysis.
type Program struct {
	SSA       *ssa.Program
	CallGraph *callgraph.Graph
	Packages  []*Package
}

// Package is one compilation unit's bundle of AST, type information and IR.
// It is immutable for the duration of a run.
type Package struct {
	SSA       *ssa.Package
	Types     *types.Package
	Info      *types.Info
	Fset      *token.FileSet
	Files     []*ast.File
	Inspector *inspector.Inspector

	files map[string]astutil.CurrentFile
}

// NewPackage bundles one type-checked, IR-built package for analysis.
func NewPackage(ssapkg *ssa.Package, info *types.Info, fset *token.FileSet, files []*ast.File) *Package {
	fileInfo := make(map[string]astutil.CurrentFile, len(files))

	for _, f := range files {
		cf := astutil.NewCurrentFile(fset, f)
		if !cf.Valid() {
			continue
		}

		fileInfo[fset.Position(f.FileStart).Filename] = cf
	}

	return &Package{
		SSA:       ssapkg,
		Types:     ssapkg.Pkg,
		Info:      info,
		Fset:      fset,
		Files:     files,
		Inspector: inspector.New(files),
		files:     fileInfo,
	}
}

// Generated reports whether the file containing pos is generated.
func (p *Package) Generated(pos token.Pos) bool {
	cf, ok := p.files[p.Fset.Position(pos).Filename]

	return ok && cf.Generated()
}

// Job is the borrowed view one check gets of one package. Each check
// writes only to its own job's diagnostic list, so jobs need no locking.
type Job struct {
	Program *Program
	Pkg     *Package

	check       Check
	diagnostics []Diagnostic
}

// Errorf records a diagnostic at the position of n. Diagnostics in
// generated files are dropped when the check filters them, and
// //nolint:quarry comments on the diagnostic line suppress it.
func (j *Job) Errorf(n Positioner, format string, args ...any) {
	if n == nil || !n.Pos().IsValid() {
		return
	}

	pos := j.Pkg.Fset.Position(n.Pos())

	if cf, ok := j.Pkg.files[pos.Filename]; ok {
		if j.check.FilterGenerated && cf.Generated() {
			return
		}

		if cf.NoLintComment(n.Pos()) {
			return
		}
	}

	j.diagnostics = append(j.diagnostics, Diagnostic{
		Pos:      n.Pos(),
		Position: pos,
		Check:    j.check.ID,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Render prints an AST node back to source text for use in messages and
// structural comparisons.
func (j *Job) Render(node any) string {
	return astutil.Render(j.Pkg.Fset, node)
}
