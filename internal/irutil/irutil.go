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

// Package irutil provides small helpers over the SSA form.
package irutil

import (
	"go/constant"
	"go/types"
	"sort"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// PackageFunctions returns all functions belonging to pkg, including
// methods and anonymous functions, in a stable source order.
func PackageFunctions(prog *ssa.Program, pkg *ssa.Package) []*ssa.Function {
	var fns []*ssa.Function

	for fn := range ssautil.AllFunctions(prog) {
		if fn.Package() == pkg {
			fns = append(fns, fn)
		}
	}

	sort.Slice(fns, func(i, j int) bool {
		if fns[i].Pos() != fns[j].Pos() {
			return fns[i].Pos() < fns[j].Pos()
		}

		return fns[i].String() < fns[j].String()
	})

	return fns
}

// CallName returns the fully qualified name of the call's static callee,
// or the builtin name for builtin calls. It returns "" for dynamic calls.
func CallName(call *ssa.CallCommon) string {
	if call.IsInvoke() {
		return ""
	}

	switch v := call.Value.(type) {
	case *ssa.Function:
		fn, ok := v.Object().(*types.Func)
		if !ok {
			return ""
		}

		return fn.FullName()

	case *ssa.Builtin:
		return v.Name()
	}

	return ""
}

// IsCallTo reports whether call statically calls the function with the
// fully qualified name name.
func IsCallTo(call *ssa.CallCommon, name string) bool {
	return CallName(call) == name
}

// FilterDebug returns instrs with debug references removed.
func FilterDebug(instrs []ssa.Instruction) []ssa.Instruction {
	var out []ssa.Instruction

	for _, instr := range instrs {
		if _, ok := instr.(*ssa.DebugRef); !ok {
			out = append(out, instr)
		}
	}

	return out
}

// ConstString extracts a compile-time constant string from v. The second
// result is false when v is not a string constant.
func ConstString(v ssa.Value) (string, bool) {
	c, ok := v.(*ssa.Const)
	if !ok || c.Value == nil || c.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(c.Value), true
}

// ConstInt extracts a compile-time constant integer from v.
func ConstInt(v ssa.Value) (int64, bool) {
	c, ok := v.(*ssa.Const)
	if !ok || c.Value == nil || c.Value.Kind() != constant.Int {
		return 0, false
	}

	return constant.Int64Val(c.Value)
}

// IsNilConst reports whether v is the nil constant.
func IsNilConst(v ssa.Value) bool {
	c, ok := v.(*ssa.Const)

	return ok && c.Value == nil
}

// Vararg unpacks the elements of a variadic argument slice when it was
// built in place from literal elements. The second result is false when
// the slice was not constructed locally (e.g. a forwarded ...args).
func Vararg(v ssa.Value) ([]ssa.Value, bool) {
	if IsNilConst(v) {
		// f(...) with no variadic arguments passes a nil slice.
		return nil, true
	}

	slice, ok := v.(*ssa.Slice)
	if !ok {
		return nil, false
	}

	alloc, ok := slice.X.(*ssa.Alloc)
	if !ok {
		return nil, false
	}

	type elem struct {
		index int64
		value ssa.Value
	}

	var elems []elem

	for _, ref := range *alloc.Referrers() {
		idx, ok := ref.(*ssa.IndexAddr)
		if !ok {
			continue
		}

		if len(*idx.Referrers()) != 1 {
			return nil, false
		}

		store, ok := (*idx.Referrers())[0].(*ssa.Store)
		if !ok {
			return nil, false
		}

		i, ok := ConstInt(idx.Index)
		if !ok {
			return nil, false
		}

		elems = append(elems, elem{index: i, value: store.Val})
	}

	sort.Slice(elems, func(i, j int) bool { return elems[i].index < elems[j].index })

	args := make([]ssa.Value, 0, len(elems))
	for _, e := range elems {
		args = append(args, e.value)
	}

	return args, true
}
