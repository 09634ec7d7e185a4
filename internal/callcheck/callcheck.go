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

// Package callcheck matches call-graph edges against a table of fully
// qualified callee names and invokes the matching rule with abstracted
// arguments. Indexing by name makes a call-site check an O(1) lookup per
// edge, so unrelated rules share one traversal.
package callcheck

import (
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/quarrylint/quarry/internal/functions"
	"github.com/quarrylint/quarry/internal/irutil"
	"github.com/quarrylint/quarry/lint"
	"github.com/quarrylint/quarry/vrp"
)

// Rule inspects one matched call and attaches violation messages to the
// call or its arguments.
type Rule func(*Call)

// Value pairs an IR value with its abstract range.
type Value struct {
	Value ssa.Value
	Range vrp.Range
}

// Argument is one actual argument of a matched call.
type Argument struct {
	Value Value

	invalids []string
}

// Invalid attaches a violation message to the argument.
func (a *Argument) Invalid(msg string) {
	a.invalids = append(a.invalids, msg)
}

// Call is one matched call-graph edge. The receiver argument is stripped
// when the callee is a method, so Args aligns with the declared
// parameters.
type Call struct {
	Job    *lint.Job
	Instr  ssa.CallInstruction
	Parent *ssa.Function
	Args   []*Argument

	invalids []string
}

// Invalid attaches a violation message to the call as a whole.
func (c *Call) Invalid(msg string) {
	c.invalids = append(c.invalids, msg)
}

// Run walks the package's call-graph edges, invokes matching rules, and
// flattens every attached message into a diagnostic anchored at the call
// site. Edges without a statically resolved callee are never matched.
func Run(j *lint.Job, descs *functions.Descriptions, rules map[string]Rule) {
	for _, fn := range irutil.PackageFunctions(j.Program.SSA, j.Pkg.SSA) {
		node := j.Program.CallGraph.Nodes[fn]
		if node == nil {
			continue
		}

		for _, edge := range node.Out {
			callee := edge.Callee.Func

			obj, ok := callee.Object().(*types.Func)
			if !ok {
				continue
			}

			r, ok := rules[obj.FullName()]
			if !ok {
				continue
			}

			ranges := descs.Get(fn).Ranges

			ssaargs := edge.Site.Common().Args
			if callee.Signature.Recv() != nil {
				ssaargs = ssaargs[1:]
			}

			call := &Call{Job: j, Instr: edge.Site, Parent: fn}

			for _, arg := range ssaargs {
				if iarg, ok := arg.(*ssa.MakeInterface); ok {
					arg = iarg.X
				}

				call.Args = append(call.Args, &Argument{Value: Value{Value: arg, Range: ranges.Get(arg)}})
			}

			r(call)

			for _, e := range call.invalids {
				j.Errorf(edge.Site, "%s", e)
			}

			for _, arg := range call.Args {
				for _, e := range arg.invalids {
					j.Errorf(edge.Site, "%s", e)
				}
			}
		}
	}
}
