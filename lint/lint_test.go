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

package lint_test

import (
	"go/token"
	"reflect"
	"testing"

	. "github.com/quarrylint/quarry/lint"
)

func TestSort(t *testing.T) {
	t.Parallel()

	d := func(file string, line, col int, check, msg string) Diagnostic {
		return Diagnostic{
			Position: token.Position{Filename: file, Line: line, Column: col},
			Check:    check,
			Message:  msg,
		}
	}

	got := []Diagnostic{
		d("b.go", 1, 1, "Q3001", "x"),
		d("a.go", 9, 1, "Q3001", "x"),
		d("a.go", 2, 5, "Q3002", "x"),
		d("a.go", 2, 5, "Q3001", "b"),
		d("a.go", 2, 5, "Q3001", "a"),
		d("a.go", 2, 1, "Q3009", "x"),
	}

	want := []Diagnostic{
		d("a.go", 2, 1, "Q3009", "x"),
		d("a.go", 2, 5, "Q3001", "a"),
		d("a.go", 2, 5, "Q3001", "b"),
		d("a.go", 2, 5, "Q3002", "x"),
		d("a.go", 9, 1, "Q3001", "x"),
		d("b.go", 1, 1, "Q3001", "x"),
	}

	Sort(got)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort() = %v, want %v", got, want)
	}
}

func TestDiagnosticString(t *testing.T) {
	t.Parallel()

	d := Diagnostic{
		Position: token.Position{Filename: "a.go", Line: 3, Column: 7},
		Check:    "Q3004",
		Message:  "negating a boolean twice has no effect; is this a typo?",
	}

	const want = "a.go:3:7: negating a boolean twice has no effect; is this a typo? (Q3004)"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
