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

package format

import (
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// Compatible reports whether an argument of type typ can be formatted with
// the verb's kind selector. Compatibility is structural and recursive:
// self-rendering types satisfy the string-like and generic kinds
// unconditionally, and container types satisfy a kind when every element
// does, except for the pointer-address kind, which never recurses. The
// check abstains (reports true) whenever the dynamic type is unknowable.
func Compatible(letter rune, typ types.Type, ms *typeutil.MethodSetCache) bool {
	return compatible(letter, typ, ms, nil)
}

func compatible(letter rune, typ types.Type, ms *typeutil.MethodSetCache, seen []types.Type) bool {
	// The generic kind renders every value.
	if letter == 'v' {
		return true
	}

	for _, s := range seen {
		if types.Identical(s, typ) {
			return true // recursive type, abstain
		}
	}
	seen = append(seen, typ)

	// Self-rendering types satisfy the string-like kinds; the remaining
	// kinds format the underlying value.
	if SelfRendering(typ, ms) {
		switch letter {
		case 's', 'q', 'x', 'X':
			return true
		}
	}

	switch t := typ.Underlying().(type) {
	case *types.Basic:
		return basicCompatible(letter, t)

	case *types.Interface:
		// Dynamic type unknown, abstain.
		return true

	case *types.Pointer:
		if letter == 'p' {
			return true
		}

		// fmt renders the address for most verbs; pointers to aggregates
		// are dereferenced for the generic kind only. Abstain.
		return true

	case *types.Map, *types.Chan, *types.Signature:
		return letter == 'p'

	case *types.Slice:
		if letter == 'p' {
			return true
		}

		if b, ok := t.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Uint8 {
			// []byte renders like a string.
			if letter == 's' || letter == 'q' || letter == 'x' || letter == 'X' {
				return true
			}
		}

		return compatible(letter, t.Elem(), ms, seen)

	case *types.Array:
		if letter == 'p' {
			return false
		}

		return compatible(letter, t.Elem(), ms, seen)

	case *types.Struct:
		if letter == 'p' {
			return false
		}

		for i := range t.NumFields() {
			if !compatible(letter, t.Field(i).Type(), ms, seen) {
				return false
			}
		}

		return true

	default:
		return true
	}
}

func basicCompatible(letter rune, t *types.Basic) bool {
	info := t.Info()

	switch letter {
	case 'd', 'o', 'O', 'b', 'c', 'U':
		return info&types.IsInteger != 0

	case 'x', 'X':
		return info&(types.IsInteger|types.IsFloat|types.IsComplex|types.IsString) != 0

	case 'e', 'E', 'f', 'F', 'g', 'G':
		return info&(types.IsFloat|types.IsComplex) != 0

	case 't':
		return info&types.IsBoolean != 0

	case 's':
		return info&types.IsString != 0

	case 'q':
		return info&(types.IsInteger|types.IsString) != 0

	case 'p':
		return t.Kind() == types.UnsafePointer || t.Kind() == types.Uintptr

	default:
		// Unknown kind selectors are the formatter's problem, not ours.
		return true
	}
}

// SelfRendering reports whether the type renders itself: it has a
// String() string or Error() string method, or an explicit Format method.
func SelfRendering(typ types.Type, ms *typeutil.MethodSetCache) bool {
	set := ms.MethodSet(typ)

	for i := range set.Len() {
		fn, ok := set.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}

		sig := fn.Type().(*types.Signature)

		switch fn.Name() {
		case "String", "Error":
			if sig.Params().Len() == 0 && sig.Results().Len() == 1 {
				if b, ok := sig.Results().At(0).Type().Underlying().(*types.Basic); ok && b.Info()&types.IsString != 0 {
					return true
				}
			}

		case "Format":
			if sig.Params().Len() == 2 && sig.Results().Len() == 0 {
				if b, ok := sig.Params().At(1).Type().Underlying().(*types.Basic); ok && b.Kind() == types.Int32 {
					return true
				}
			}
		}
	}

	return false
}
