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

package analyzer

import (
	"golang.org/x/tools/go/analysis"
)

// Public API constants for the quarry analyzer.
const (
	name = "quarry"
	doc  = `quarry reports likely defects found in the AST and IR of analyzed packages`
	url  = "https://pkg.go.dev/github.com/quarrylint/quarry"
)

// New creates a new instance of the quarry analyzer.
// It allows for programmatic configuration using [Option], which is useful
// for integrating the analyzer into other tools. For command-line use, the
// pre-configured [Analyzer] variable is typically sufficient.
func New(opts ...Option) *analysis.Analyzer {
	r := makeRunOptions(opts)

	a := r.analyzer()
	registerFlags(a, r)

	return a
}

// Analyzer is a pre-configured *[analysis.Analyzer] running the full quarry check table.
var Analyzer = New()
