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

package irutil_test

import (
	"testing"

	"golang.org/x/tools/go/ssa"

	. "github.com/quarrylint/quarry/internal/irutil"
	"github.com/quarrylint/quarry/internal/testsource"
)

const src = `package ir

import "fmt"

func report() {
	fmt.Printf("%d %s\n", 1, "x")
}

func empty() {
	fmt.Println()
}

func forward(args ...any) {
	fmt.Println(args...)
}
`

// callTo finds the first static call to name in any of the package's
// functions.
func callTo(tb testing.TB, prog *ssa.Program, pkg *ssa.Package, name string) *ssa.Call {
	tb.Helper()

	for _, fn := range PackageFunctions(prog, pkg) {
		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				if call, ok := instr.(*ssa.Call); ok && IsCallTo(call.Common(), name) {
					return call
				}
			}
		}
	}

	tb.Fatalf("no call to %s found", name)

	return nil
}

func TestVararg(t *testing.T) {
	t.Parallel()

	prog := testsource.Program(t, testsource.PackageSource{Path: "ir", Source: src})
	pkg := prog.Packages[0].SSA

	t.Run("literal_elements", func(t *testing.T) {
		t.Parallel()

		call := callTo(t, prog.SSA, pkg, "fmt.Printf")

		args, ok := Vararg(call.Common().Args[1])
		if !ok {
			t.Fatal("Vararg should unpack a locally built slice")
		}

		if len(args) != 2 {
			t.Fatalf("got %d elements, want 2", len(args))
		}

		mi, ok := args[0].(*ssa.MakeInterface)
		if !ok {
			t.Fatalf("element 0 has type %T, want *ssa.MakeInterface", args[0])
		}

		if n, ok := ConstInt(mi.X); !ok || n != 1 {
			t.Errorf("element 0 = %v, want constant 1", mi.X)
		}
	})

	t.Run("no_elements", func(t *testing.T) {
		t.Parallel()

		call := callTo(t, prog.SSA, pkg, "fmt.Println")

		args, ok := Vararg(call.Common().Args[0])
		if !ok {
			t.Fatal("Vararg should handle the nil slice of an empty call")
		}

		if len(args) != 0 {
			t.Errorf("got %d elements, want 0", len(args))
		}
	})

	t.Run("forwarded_slice", func(t *testing.T) {
		t.Parallel()

		fn := pkg.Func("forward")

		var call *ssa.Call

		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				if c, ok := instr.(*ssa.Call); ok && IsCallTo(c.Common(), "fmt.Println") {
					call = c
				}
			}
		}

		if call == nil {
			t.Fatal("no forwarded call found")
		}

		if _, ok := Vararg(call.Common().Args[0]); ok {
			t.Error("Vararg should abstain on a forwarded slice")
		}
	})
}

func TestConstString(t *testing.T) {
	t.Parallel()

	prog := testsource.Program(t, testsource.PackageSource{Path: "ir", Source: src})
	pkg := prog.Packages[0].SSA

	call := callTo(t, prog.SSA, pkg, "fmt.Printf")

	s, ok := ConstString(call.Common().Args[0])
	if !ok || s != "%d %s\n" {
		t.Errorf("ConstString = %q, %t", s, ok)
	}

	if _, ok := ConstString(call.Common().Args[1]); ok {
		t.Error("the variadic slice is not a string constant")
	}
}
