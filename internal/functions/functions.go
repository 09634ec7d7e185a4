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

// Package functions computes per-function behavioral summaries: purity,
// stub detection, termination, loop membership and value ranges. Summaries
// are built on demand, cached, and read-only afterwards.
package functions

import (
	"sync"

	"golang.org/x/tools/go/ssa"

	"github.com/quarrylint/quarry/vrp"
)

// Loop is the set of basic blocks forming one natural loop.
type Loop map[*ssa.BasicBlock]bool

// Description summarizes the behavior of one function.
type Description struct {
	// Pure means the function has no observable side effects; equal inputs
	// produce equal outputs.
	Pure bool
	// Stub means the body does nothing but return or panic.
	Stub bool
	// Infinite means the function provably never returns normally.
	Infinite bool
	// Loops lists the function's natural loops.
	Loops []Loop
	// Ranges holds the abstract ranges of the function's values.
	Ranges vrp.Ranges
}

// Descriptions caches [Description] values per function. Safe for
// concurrent use.
type Descriptions struct {
	mu    sync.Mutex
	cache map[*ssa.Function]*Description
}

// NewDescriptions creates an empty summary cache.
func NewDescriptions() *Descriptions {
	return &Descriptions{cache: make(map[*ssa.Function]*Description)}
}

// Get returns the summary for fn, computing and caching it on first use.
func (d *Descriptions) Get(fn *ssa.Function) *Description {
	d.mu.Lock()
	defer d.mu.Unlock()

	if desc, ok := d.cache[fn]; ok {
		return desc
	}

	desc := &Description{
		Stub:     isStub(fn),
		Infinite: !terminates(fn),
		Loops:    findLoops(fn),
		Ranges:   vrp.Infer(fn),
	}
	desc.Pure = d.isPure(fn, map[*ssa.Function]bool{fn: true})

	d.cache[fn] = desc

	return desc
}

// isPure conservatively decides purity. Any store, channel operation,
// spawned goroutine, deferred call, or call to a function not itself known
// pure makes the function impure. Recursion counts as impure.
func (d *Descriptions) isPure(fn *ssa.Function, seen map[*ssa.Function]bool) bool {
	if fn.Blocks == nil || isStub(fn) {
		return false
	}

	if fn.Signature.Results().Len() == 0 {
		// Without results, purity would make the function a no-op.
		return false
	}

	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			switch instr := instr.(type) {
			case *ssa.Store, *ssa.MapUpdate, *ssa.Send, *ssa.Go, *ssa.Defer, *ssa.Panic:
				return false

			case *ssa.Call:
				callee := instr.Common().StaticCallee()
				if callee == nil {
					return false
				}

				if seen[callee] {
					return false
				}
				seen[callee] = true

				if !d.isPure(callee, seen) {
					return false
				}
			}
		}
	}

	return true
}

// isStub reports whether the function body does nothing but return a
// constant or panic.
func isStub(fn *ssa.Function) bool {
	if len(fn.Blocks) == 0 {
		return true
	}

	if len(fn.Blocks) != 1 {
		return false
	}

	for _, instr := range fn.Blocks[0].Instrs {
		switch instr := instr.(type) {
		case *ssa.Return, *ssa.DebugRef:
		case *ssa.Panic:
			if _, ok := instr.X.(*ssa.Const); !ok {
				if mi, ok := instr.X.(*ssa.MakeInterface); !ok {
					return false
				} else if _, ok := mi.X.(*ssa.Const); !ok {
					return false
				}
			}
		default:
			return false
		}
	}

	return true
}

// terminates reports whether the function has at least one reachable
// normal return.
func terminates(fn *ssa.Function) bool {
	if fn.Blocks == nil {
		// External function, assume it returns.
		return true
	}

	for _, b := range fn.Blocks {
		if len(b.Instrs) == 0 {
			continue
		}

		if _, ok := b.Instrs[len(b.Instrs)-1].(*ssa.Return); ok {
			return true
		}
	}

	return false
}

// findLoops collects the function's natural loops from dominator back
// edges.
func findLoops(fn *ssa.Function) []Loop {
	if fn.Blocks == nil {
		return nil
	}

	var loops []Loop

	for _, b := range fn.Blocks {
		for _, succ := range b.Succs {
			if !succ.Dominates(b) {
				continue
			}

			// succ is the loop header, b -> succ the back edge.
			loop := Loop{succ: true, b: true}

			work := []*ssa.BasicBlock{b}
			for len(work) > 0 {
				cur := work[len(work)-1]
				work = work[:len(work)-1]

				if cur == succ {
					continue
				}

				for _, pred := range cur.Preds {
					if loop[pred] {
						continue
					}

					loop[pred] = true
					work = append(work, pred)
				}
			}

			loops = append(loops, loop)
		}
	}

	return loops
}
