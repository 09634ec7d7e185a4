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
	"go/token"
	"go/types"

	"github.com/quarrylint/quarry/internal/astutil"
	"github.com/quarrylint/quarry/lint"
)

// CheckSpinningLoop flags empty-bodied loops that either spin forever or
// poll a side-effect-free condition.
func (c *Checker) CheckSpinningLoop(j *lint.Job) {
	j.Pkg.Inspector.Preorder([]ast.Node{(*ast.ForStmt)(nil)}, func(n ast.Node) {
		loop := n.(*ast.ForStmt)

		if len(loop.Body.List) != 0 || loop.Init != nil || loop.Post != nil {
			return
		}

		if loop.Cond == nil {
			j.Errorf(loop, "this loop will spin, using 100%% CPU")

			return
		}

		if astutil.Pure(loop.Cond) {
			j.Errorf(loop, "loop condition never changes or has no side effects; this loop will spin")
		}
	})
}

// CheckDeferInInfiniteLoop flags deferred calls inside loops that never
// terminate; the defers will never run.
func (c *Checker) CheckDeferInInfiniteLoop(j *lint.Job) {
	j.Pkg.Inspector.Preorder([]ast.Node{(*ast.ForStmt)(nil)}, func(n ast.Node) {
		loop := n.(*ast.ForStmt)
		if loop.Cond != nil {
			return
		}

		mightExit := false

		var defers []*ast.DeferStmt

		ast.Inspect(loop.Body, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.ReturnStmt, *ast.BranchStmt:
				if br, ok := n.(*ast.BranchStmt); ok && br.Tok != token.BREAK && br.Tok != token.GOTO {
					return true
				}

				mightExit = true

			case *ast.DeferStmt:
				defers = append(defers, n)

			case *ast.FuncLit:
				// Body runs in another function.
				return false
			}

			return true
		})

		if mightExit {
			return
		}

		for _, stmt := range defers {
			j.Errorf(stmt, "defers in this infinite loop will never run")
		}
	})
}

// CheckSelfAssignment flags assignments of a side-effect-free expression
// to itself.
func (c *Checker) CheckSelfAssignment(j *lint.Job) {
	j.Pkg.Inspector.Preorder([]ast.Node{(*ast.AssignStmt)(nil)}, func(n ast.Node) {
		assign := n.(*ast.AssignStmt)

		if assign.Tok != token.ASSIGN || len(assign.Lhs) != len(assign.Rhs) {
			return
		}

		for i, lhs := range assign.Lhs {
			rhs := assign.Rhs[i]

			if !astutil.Pure(rhs) {
				continue
			}

			if astutil.Equal(j.Pkg.Fset, lhs, rhs) {
				j.Errorf(assign, "self-assignment of %s to %s", j.Render(rhs), j.Render(lhs))
			}
		}
	})
}

// CheckDoubleNegation flags !!b.
func (c *Checker) CheckDoubleNegation(j *lint.Job) {
	j.Pkg.Inspector.Preorder([]ast.Node{(*ast.UnaryExpr)(nil)}, func(n ast.Node) {
		unary := n.(*ast.UnaryExpr)
		if unary.Op != token.NOT {
			return
		}

		inner, ok := unary.X.(*ast.UnaryExpr)
		if !ok || inner.Op != token.NOT {
			return
		}

		j.Errorf(unary, "negating a boolean twice has no effect; is this a typo?")
	})
}

// CheckRepeatedIfElseConditions flags conditions occurring more than once
// in one if/else-if chain.
func (c *Checker) CheckRepeatedIfElseConditions(j *lint.Job) {
	j.Pkg.Inspector.WithStack([]ast.Node{(*ast.IfStmt)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return false
		}

		// Only start from chain heads; later links are visited through
		// their parent.
		if len(stack) > 1 {
			if parent, ok := stack[len(stack)-2].(*ast.IfStmt); ok && parent.Else == n {
				return true
			}
		}

		seen := make(map[string]bool)

		for stmt := n.(*ast.IfStmt); stmt != nil; {
			if astutil.Pure(stmt.Cond) {
				cond := j.Render(stmt.Cond)

				if seen[cond] {
					j.Errorf(stmt.Cond, "this condition occurs multiple times in this if/else if chain")
				}
				seen[cond] = true
			}

			next, ok := stmt.Else.(*ast.IfStmt)
			if !ok {
				break
			}

			stmt = next
		}

		return true
	})
}

var identicalOperandOps = map[token.Token]bool{
	token.EQL:     true,
	token.NEQ:     true,
	token.LSS:     true,
	token.GTR:     true,
	token.LEQ:     true,
	token.GEQ:     true,
	token.SUB:     true,
	token.QUO:     true,
	token.REM:     true,
	token.XOR:     true,
	token.AND_NOT: true,
}

// CheckIdenticalOperands flags x op x for operators where that is a
// constant result. Expressions with side effects abstain, as do float
// comparisons, where x != x is the NaN idiom.
func (c *Checker) CheckIdenticalOperands(j *lint.Job) {
	j.Pkg.Inspector.Preorder([]ast.Node{(*ast.BinaryExpr)(nil)}, func(n ast.Node) {
		binop := n.(*ast.BinaryExpr)

		if !identicalOperandOps[binop.Op] {
			return
		}

		if !astutil.Pure(binop.X) || !astutil.Pure(binop.Y) {
			return
		}

		if !astutil.Equal(j.Pkg.Fset, binop.X, binop.Y) {
			return
		}

		if binop.Op == token.EQL || binop.Op == token.NEQ {
			if typ, ok := j.Pkg.Info.TypeOf(binop.X).Underlying().(*types.Basic); ok && typ.Info()&(types.IsFloat|types.IsComplex) != 0 {
				return
			}
		}

		j.Errorf(binop, "identical expressions on the left and right side of the '%s' operator", binop.Op)
	})
}

// CheckUnreachableTypeSwitchCase flags type-switch cases shadowed by an
// earlier case matching a superset of values. Capability comparison is
// structural; interfaces with identical method sets under different names
// get a separate message.
func (c *Checker) CheckUnreachableTypeSwitchCase(j *lint.Job) {
	j.Pkg.Inspector.Preorder([]ast.Node{(*ast.TypeSwitchStmt)(nil)}, func(n ast.Node) {
		stmt := n.(*ast.TypeSwitchStmt)

		type caseType struct {
			typ    types.Type
			iface  *types.Interface
			clause *ast.CaseClause
		}

		var cases []caseType

		for _, clause := range stmt.Body.List {
			clause := clause.(*ast.CaseClause)

			for _, expr := range clause.List {
				typ := j.Pkg.Info.TypeOf(expr)
				if typ == nil || typ == types.Typ[types.UntypedNil] {
					continue
				}

				iface, _ := typ.Underlying().(*types.Interface)
				cases = append(cases, caseType{typ: typ, iface: iface, clause: clause})
			}
		}

		for i, later := range cases {
			for _, earlier := range cases[:i] {
				if earlier.clause == later.clause || earlier.iface == nil {
					continue
				}

				if !types.Implements(later.typ, earlier.iface) {
					continue
				}

				if later.iface != nil && types.Implements(earlier.typ, later.iface) {
					j.Errorf(later.clause, "unreachable case clause: %s and %s have identical method sets; %s always matches first",
						earlier.typ, later.typ, earlier.typ)
				} else {
					j.Errorf(later.clause, "unreachable case clause: %s will always match before %s",
						earlier.typ, later.typ)
				}

				break
			}
		}
	})
}

// CheckEmptyBranch flags if and else branches with empty bodies.
func (c *Checker) CheckEmptyBranch(j *lint.Job) {
	j.Pkg.Inspector.Preorder([]ast.Node{(*ast.IfStmt)(nil)}, func(n ast.Node) {
		stmt := n.(*ast.IfStmt)

		if len(stmt.Body.List) == 0 {
			j.Errorf(stmt.Body, "empty branch")
		}

		if elseBlock, ok := stmt.Else.(*ast.BlockStmt); ok && len(elseBlock.List) == 0 {
			j.Errorf(elseBlock, "empty branch")
		}
	})
}
