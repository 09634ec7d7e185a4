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

package vrp

import (
	"go/constant"
	"go/types"

	"fortio.org/safecast"
	"golang.org/x/tools/go/ssa"
)

// Ranges maps IR values of one function to their abstract ranges. Lookups
// of untracked values return an unknown range of the appropriate shape.
type Ranges map[ssa.Value]Range

// Get returns the range of v, or an unknown range matching v's type when
// nothing was inferred.
func (r Ranges) Get(v ssa.Value) Range {
	if rng, ok := r[v]; ok {
		return rng
	}

	switch v.Type().Underlying().(type) {
	case *types.Slice:
		return SliceInterval{}
	case *types.Chan:
		return ChannelInterval{}
	default:
		if b, ok := v.Type().Underlying().(*types.Basic); ok && b.Info()&types.IsString != 0 {
			return StringInterval{}
		}

		return IntInterval{}
	}
}

// Infer computes ranges for the values of fn. The inference is deliberately
// constant-seeded: literals, constant string lengths, and make sizes produce
// exact intervals; everything else stays unknown. Consumers must abstain on
// unknown ranges, so coarse results only suppress findings, never invent
// them.
func Infer(fn *ssa.Function) Ranges {
	rng := make(Ranges)

	seed := func(v ssa.Value) {
		if v == nil {
			return
		}

		if _, ok := rng[v]; ok {
			return
		}

		if r, ok := valueRange(v); ok {
			rng[v] = r
		}
	}

	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			for _, op := range instr.Operands(nil) {
				seed(*op)
			}

			if v, ok := instr.(ssa.Value); ok {
				seed(v)
			}
		}
	}

	return rng
}

func valueRange(v ssa.Value) (Range, bool) {
	switch v := v.(type) {
	case *ssa.Const:
		return constRange(v)

	case *ssa.MakeChan:
		if sz, ok := constInt(v.Size); ok {
			return ChannelInterval{Size: NewIntInterval(sz, sz)}, true
		}

	case *ssa.MakeSlice:
		if ln, ok := constInt(v.Len); ok {
			return SliceInterval{Length: NewIntInterval(ln, ln)}, true
		}

	case *ssa.Slice:
		// A full slice of an alloc'd array has a known length.
		if alloc, ok := v.X.(*ssa.Alloc); ok && v.Low == nil && v.High == nil {
			if arr, ok := alloc.Type().Underlying().(*types.Pointer); ok {
				if at, ok := arr.Elem().Underlying().(*types.Array); ok {
					ln := NewZ(at.Len())

					return SliceInterval{Length: NewIntInterval(ln, ln)}, true
				}
			}
		}
	}

	return nil, false
}

func constRange(c *ssa.Const) (Range, bool) {
	if c.Value == nil {
		return nil, false
	}

	switch c.Value.Kind() {
	case constant.Int:
		i, ok := constant.Int64Val(c.Value)
		if !ok {
			return nil, false
		}

		z := NewZ(i)

		return IntInterval{known: true, Lower: z, Upper: z}, true

	case constant.String:
		n, err := safecast.Conv[int64](len(constant.StringVal(c.Value)))
		if err != nil {
			return nil, false
		}

		z := NewZ(n)

		return StringInterval{Length: IntInterval{known: true, Lower: z, Upper: z}}, true

	default:
		return nil, false
	}
}

func constInt(v ssa.Value) (Z, bool) {
	c, ok := v.(*ssa.Const)
	if !ok || c.Value == nil || c.Value.Kind() != constant.Int {
		return Z{}, false
	}

	i, ok := constant.Int64Val(c.Value)
	if !ok {
		return Z{}, false
	}

	return NewZ(i), true
}
