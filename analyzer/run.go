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
	"context"
	"errors"
	"fmt"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/callgraph/static"

	"github.com/quarrylint/quarry/checks"
	"github.com/quarrylint/quarry/internal/config"
	"github.com/quarrylint/quarry/lint"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// run executes the quarry check table against one pass. The deprecation
// index only spans the current package here; whole-program deprecation
// analysis needs the standalone driver.
func (r *runOptions) run(p *analysis.Pass) (any, error) {
	ssainfo, ok := p.ResultOf[buildssa.Analyzer].(*buildssa.SSA)
	if !ok {
		return nil, fmt.Errorf("quarry: %s %w", buildssa.Analyzer.Name, ErrResultMissing)
	}

	pkg := lint.NewPackage(ssainfo.Pkg, p.TypesInfo, p.Fset, p.Files)

	prog := &lint.Program{
		SSA:       ssainfo.Pkg.Prog,
		CallGraph: static.CallGraph(ssainfo.Pkg.Prog),
		Packages:  []*lint.Package{pkg},
	}

	filter := config.NewFilter(r.checks)
	runner := lint.NewRunner(
		lint.WithEnabled(filter.Enabled),
		lint.WithGenerated(r.generated),
	)

	diagnostics, err := runner.Run(context.Background(), prog, checks.NewChecker(), nil)
	if err != nil {
		return nil, err
	}

	for _, d := range diagnostics {
		p.Report(analysis.Diagnostic{
			Pos:      d.Pos,
			Category: d.Check,
			Message:  d.Message,
		})
	}

	return nil, nil
}
