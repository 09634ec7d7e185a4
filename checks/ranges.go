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
	"github.com/quarrylint/quarry/vrp"
)

// CheckDiffSizeComparison flags string equality that can never hold
// because the operands' length intervals do not overlap. Unknown ranges
// abstain.
func (c *Checker) CheckDiffSizeComparison(j *lint.Job) {
	for _, fn := range irutil.PackageFunctions(j.Program.SSA, j.Pkg.SSA) {
		ranges := c.funcDescs.Get(fn).Ranges

		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				binop, ok := instr.(*ssa.BinOp)
				if !ok || (binop.Op != token.EQL && binop.Op != token.NEQ) {
					continue
				}

				x, ok := ranges.Get(binop.X).(vrp.StringInterval)
				if !ok || !x.IsKnown() {
					continue
				}

				y, ok := ranges.Get(binop.Y).(vrp.StringInterval)
				if !ok || !y.IsKnown() {
					continue
				}

				if !x.Length.Intersects(y.Length) {
					j.Errorf(binop, "comparing strings of different sizes for equality will always return false")
				}
			}
		}
	}
}

// CheckIndexOutOfBounds flags slice accesses whose index is provably not
// below the slice's length. Unknown ranges abstain.
func (c *Checker) CheckIndexOutOfBounds(j *lint.Job) {
	for _, fn := range irutil.PackageFunctions(j.Program.SSA, j.Pkg.SSA) {
		ranges := c.funcDescs.Get(fn).Ranges

		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				ia, ok := instr.(*ssa.IndexAddr)
				if !ok {
					continue
				}

				slice, ok := ranges.Get(ia.X).(vrp.SliceInterval)
				if !ok || !slice.IsKnown() {
					continue
				}

				index, ok := ranges.Get(ia.Index).(vrp.IntInterval)
				if !ok || !index.IsKnown() {
					continue
				}

				if index.Lower.Cmp(slice.Length.Upper) >= 0 {
					j.Errorf(ia, "index out of bounds")
				}
			}
		}
	}
}
