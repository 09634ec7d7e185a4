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

// registerFlags binds the run options to the analyzer's flag set, so
// drivers like go vet and golangci-lint can configure them.
func registerFlags(a *analysis.Analyzer, r *runOptions) {
	a.Flags.Var(listValue{values: &r.checks}, "checks", "comma-separated list of check ID patterns")
	a.Flags.BoolVar(&r.generated, "generated", r.generated, "report diagnostics in generated files")
}
