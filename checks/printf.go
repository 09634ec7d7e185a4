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
	"fmt"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/quarrylint/quarry/internal/callcheck"
	"github.com/quarrylint/quarry/internal/format"
	"github.com/quarrylint/quarry/internal/irutil"
	"github.com/quarrylint/quarry/lint"
)

// CheckPrintf validates constant printf-style templates against their
// arguments.
func (c *Checker) CheckPrintf(j *lint.Job) {
	callcheck.Run(j, c.funcDescs, map[string]callcheck.Rule{
		"fmt.Errorf":           c.printfRule(0),
		"fmt.Fprintf":          c.printfRule(1),
		"fmt.Printf":           c.printfRule(0),
		"fmt.Sprintf":          c.printfRule(0),
		"log.Fatalf":           c.printfRule(0),
		"log.Panicf":           c.printfRule(0),
		"log.Printf":           c.printfRule(0),
		"(*log.Logger).Fatalf": c.printfRule(0),
		"(*log.Logger).Panicf": c.printfRule(0),
		"(*log.Logger).Printf": c.printfRule(0),
	})
}

// printfRule checks one call whose template sits at fmtIdx, immediately
// followed by the variadic argument slice. Dynamic templates and forwarded
// argument slices abstain.
func (c *Checker) printfRule(fmtIdx int) callcheck.Rule {
	return func(call *callcheck.Call) {
		if len(call.Args) != fmtIdx+2 {
			return
		}

		template, ok := irutil.ConstString(call.Args[fmtIdx].Value.Value)
		if !ok {
			return
		}

		args, ok := irutil.Vararg(call.Args[fmtIdx+1].Value.Value)
		if !ok {
			return
		}

		for i, arg := range args {
			if mi, ok := arg.(*ssa.MakeInterface); ok {
				args[i] = mi.X
			}
		}

		name := "printf"
		if callee := call.Instr.Common().StaticCallee(); callee != nil {
			name = callee.Name()
		}

		// At most one diagnostic class fires per call: a wrong index tends
		// to cascade into many more apparent mismatches.
		if msg, bad := c.checkTemplate(name, template, args); bad {
			call.Invalid(msg)
		}
	}
}

func (c *Checker) checkTemplate(name, template string, args []ssa.Value) (string, bool) {
	parts, err := format.Parse(template)
	if err != nil {
		return fmt.Sprintf("invalid format string: %s", err), true
	}

	cursor := 0 // next implicit argument, 0-based
	explicit := false

	for _, part := range parts {
		verb, ok := part.(format.Verb)
		if !ok || verb.Letter == '%' {
			continue
		}

		for _, opt := range [...]format.Option{verb.Width, verb.Precision} {
			if opt.Kind != format.OptStar {
				continue
			}

			idx := cursor
			if opt.Value >= 0 {
				explicit = true

				if msg, bad := checkIndex(opt.Value, len(args)); bad {
					return msg, true
				}

				idx = opt.Value - 1
				cursor = opt.Value
			} else {
				cursor++
			}

			if idx < len(args) && !isIntegerArg(args[idx]) {
				return fmt.Sprintf("format reads a width or precision from arg #%d, which is not an integer", idx+1), true
			}
		}

		idx := cursor
		if verb.Index >= 0 {
			explicit = true

			if msg, bad := checkIndex(verb.Index, len(args)); bad {
				return msg, true
			}

			idx = verb.Index - 1
			cursor = verb.Index
		} else {
			cursor++
		}

		if idx < len(args) {
			typ := args[idx].Type()
			if !format.Compatible(verb.Letter, typ, &c.msCache) {
				return fmt.Sprintf("format verb %%%c has arg of wrong type %s", verb.Letter, typ), true
			}
		}
	}

	if !explicit && cursor != len(args) {
		return fmt.Sprintf("%s call needs %d args but has %d args", name, cursor, len(args)), true
	}

	return "", false
}

func checkIndex(index, argCount int) (string, bool) {
	switch {
	case index == 0:
		return "format argument index 0 is invalid (indices are 1-based)", true

	case index > argCount:
		return fmt.Sprintf("format reads arg #%d, but call has %d args", index, argCount), true

	default:
		return "", false
	}
}

func isIntegerArg(v ssa.Value) bool {
	b, ok := v.Type().Underlying().(*types.Basic)

	return ok && b.Info()&types.IsInteger != 0
}
