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
	"go/token"

	"golang.org/x/tools/go/ssa"

	"github.com/quarrylint/quarry/internal/irutil"
	"github.com/quarrylint/quarry/lint"
)

// CheckNilMaps flags writes to maps that are provably nil.
func (c *Checker) CheckNilMaps(j *lint.Job) {
	for _, fn := range irutil.PackageFunctions(j.Program.SSA, j.Pkg.SSA) {
		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				mu, ok := instr.(*ssa.MapUpdate)
				if !ok {
					continue
				}

				if irutil.IsNilConst(mu.Map) {
					j.Errorf(mu, "assignment to nil map")
				}
			}
		}
	}
}

// CheckInfiniteRecursion flags calls that recurse unconditionally: every
// return of the function is dominated by the recursive call.
func (c *Checker) CheckInfiniteRecursion(j *lint.Job) {
	for _, fn := range irutil.PackageFunctions(j.Program.SSA, j.Pkg.SSA) {
		node := j.Program.CallGraph.Nodes[fn]
		if node == nil {
			continue
		}

		for _, edge := range node.Out {
			if edge.Callee != node {
				continue
			}

			if _, ok := edge.Site.(*ssa.Go); ok {
				// Recursing in a new goroutine does not block this call.
				continue
			}

			block := edge.Site.Block()
			canReturn := false

			for _, b := range fn.Blocks {
				if block.Dominates(b) {
					continue
				}

				if len(b.Instrs) == 0 {
					continue
				}

				if _, ok := b.Instrs[len(b.Instrs)-1].(*ssa.Return); ok {
					canReturn = true

					break
				}
			}

			if !canReturn {
				j.Errorf(edge.Site, "infinite recursive call")
			}
		}
	}
}

// CheckNaNComparison flags comparisons against math.NaN().
func (c *Checker) CheckNaNComparison(j *lint.Job) {
	isNaN := func(v ssa.Value) bool {
		call, ok := v.(*ssa.Call)

		return ok && irutil.IsCallTo(call.Common(), "math.NaN")
	}

	for _, fn := range irutil.PackageFunctions(j.Program.SSA, j.Pkg.SSA) {
		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				binop, ok := instr.(*ssa.BinOp)
				if !ok {
					continue
				}

				switch binop.Op {
				case token.EQL, token.NEQ, token.LSS, token.GTR, token.LEQ, token.GEQ:
				default:
					continue
				}

				if isNaN(binop.X) || isNaN(binop.Y) {
					j.Errorf(binop, "no value is equal to NaN, not even NaN itself")
				}
			}
		}
	}
}

// CheckLeakyTimeTick flags time.Tick in functions that return: the
// underlying ticker can never be stopped or collected.
func (c *Checker) CheckLeakyTimeTick(j *lint.Job) {
	for _, fn := range irutil.PackageFunctions(j.Program.SSA, j.Pkg.SSA) {
		if c.funcDescs.Get(fn).Infinite {
			continue
		}

		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				call, ok := instr.(*ssa.Call)
				if !ok || !irutil.IsCallTo(call.Common(), "time.Tick") {
					continue
				}

				j.Errorf(call, "using time.Tick leaks the underlying ticker, consider using it only in endless functions, tests and the main package, and use time.NewTicker here")
			}
		}
	}
}

// CheckIgnoredPureResult flags statement calls to pure functions; their
// only effect is the discarded result.
func (c *Checker) CheckIgnoredPureResult(j *lint.Job) {
	for _, fn := range irutil.PackageFunctions(j.Program.SSA, j.Pkg.SSA) {
		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				call, ok := instr.(*ssa.Call)
				if !ok || call.Common().IsInvoke() {
					continue
				}

				if refs := call.Referrers(); refs != nil && len(*refs) > 0 {
					continue
				}

				callee := call.Common().StaticCallee()
				if callee == nil || callee.Object() == nil {
					continue
				}

				desc := c.funcDescs.Get(callee)
				if !desc.Pure || desc.Stub {
					continue
				}

				j.Errorf(call, "%s is a pure function but its return value is ignored", callee.Name())
			}
		}
	}
}
