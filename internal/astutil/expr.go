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

package astutil

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
)

// Render prints node back to source text. It is used for structural
// equality of expressions, so the exact formatting only has to be
// deterministic, not pretty.
func Render(fset *token.FileSet, node any) string {
	var buf bytes.Buffer

	if err := printer.Fprint(&buf, fset, node); err != nil {
		return ""
	}

	return buf.String()
}

// Equal reports whether two expressions render to the same source text.
func Equal(fset *token.FileSet, x, y ast.Expr) bool {
	rx := Render(fset, x)

	return rx != "" && rx == Render(fset, y)
}

// Pure reports whether evaluating the expression cannot have observable
// side effects. Any call or channel receive anywhere in the expression
// disqualifies it; two pure expressions that render identically evaluate
// to the same value.
func Pure(expr ast.Expr) bool {
	pure := true

	ast.Inspect(expr, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.CallExpr:
			// Conversions are pure, but telling a conversion from a
			// call requires type information. Treat both as impure.
			pure = false

			return false

		case *ast.UnaryExpr:
			if n.Op == token.ARROW {
				pure = false

				return false
			}

		case *ast.FuncLit:
			// The literal itself is a value; it runs nothing.
			return false
		}

		return pure
	})

	return pure
}
