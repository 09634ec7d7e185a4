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

// Package checks implements the quarry check table: likely-defect
// detectors over the AST and IR of analyzed packages.
package checks

import (
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/quarrylint/quarry/internal/deprecated"
	"github.com/quarrylint/quarry/internal/functions"
	"github.com/quarrylint/quarry/internal/irutil"
	"github.com/quarrylint/quarry/lint"
)

// Checker holds the shared read-only state of all checks: function
// summaries, the deprecation index and a method-set cache. Build it with
// [NewChecker]; the runner calls [Checker.Init] once per program before
// any check runs.
type Checker struct {
	funcDescs  *functions.Descriptions
	deprecated *deprecated.Index
	msCache    typeutil.MethodSetCache
}

// NewChecker creates an uninitialized [Checker].
func NewChecker() *Checker {
	return &Checker{}
}

// Name returns the linter name.
func (*Checker) Name() string { return "quarry" }

// Init builds the whole-program indexes. The function summaries and the
// deprecation index are independent and are computed concurrently; the
// barrier at the end guarantees both are complete and read-only before the
// first check runs.
func (c *Checker) Init(prog *lint.Program) error {
	var g errgroup.Group

	g.Go(func() error {
		c.funcDescs = functions.NewDescriptions()

		for _, pkg := range prog.Packages {
			for _, fn := range irutil.PackageFunctions(prog.SSA, pkg.SSA) {
				c.funcDescs.Get(fn)
			}
		}

		return nil
	})

	g.Go(func() error {
		c.deprecated = deprecated.Build(prog.Packages)

		return nil
	})

	return g.Wait()
}

// Checks returns the full check table in a stable order.
func (c *Checker) Checks() []lint.Check {
	return []lint.Check{
		{ID: "Q1001", FilterGenerated: false, Fn: c.CheckRegexps, Doc: docQ1001},
		{ID: "Q1002", FilterGenerated: false, Fn: c.CheckTimeLayouts, Doc: docQ1002},
		{ID: "Q1003", FilterGenerated: false, Fn: c.CheckURLs, Doc: docQ1003},
		{ID: "Q1004", FilterGenerated: false, Fn: c.CheckZeroCountFindAll, Doc: docQ1004},
		{ID: "Q1005", FilterGenerated: false, Fn: c.CheckZeroCountReplace, Doc: docQ1005},
		{ID: "Q1006", FilterGenerated: false, Fn: c.CheckUnbufferedSignalChan, Doc: docQ1006},
		{ID: "Q1007", FilterGenerated: false, Fn: c.CheckPrintf, Doc: docQ1007},
		{ID: "Q2001", FilterGenerated: false, Fn: c.CheckDiffSizeComparison, Doc: docQ2001},
		{ID: "Q2002", FilterGenerated: false, Fn: c.CheckIndexOutOfBounds, Doc: docQ2002},
		{ID: "Q3001", FilterGenerated: false, Fn: c.CheckSpinningLoop, Doc: docQ3001},
		{ID: "Q3002", FilterGenerated: false, Fn: c.CheckDeferInInfiniteLoop, Doc: docQ3002},
		{ID: "Q3003", FilterGenerated: true, Fn: c.CheckSelfAssignment, Doc: docQ3003},
		{ID: "Q3004", FilterGenerated: false, Fn: c.CheckDoubleNegation, Doc: docQ3004},
		{ID: "Q3005", FilterGenerated: false, Fn: c.CheckRepeatedIfElseConditions, Doc: docQ3005},
		{ID: "Q3006", FilterGenerated: false, Fn: c.CheckIdenticalOperands, Doc: docQ3006},
		{ID: "Q3007", FilterGenerated: false, Fn: c.CheckUnreachableTypeSwitchCase, Doc: docQ3007},
		{ID: "Q3008", FilterGenerated: true, Fn: c.CheckEmptyBranch, Doc: docQ3008},
		{ID: "Q3009", FilterGenerated: false, Fn: c.CheckDeprecated, Doc: docQ3009},
		{ID: "Q4001", FilterGenerated: false, Fn: c.CheckNilMaps, Doc: docQ4001},
		{ID: "Q4002", FilterGenerated: false, Fn: c.CheckInfiniteRecursion, Doc: docQ4002},
		{ID: "Q4003", FilterGenerated: false, Fn: c.CheckNaNComparison, Doc: docQ4003},
		{ID: "Q4004", FilterGenerated: false, Fn: c.CheckLeakyTimeTick, Doc: docQ4004},
		{ID: "Q4005", FilterGenerated: false, Fn: c.CheckIgnoredPureResult, Doc: docQ4005},
	}
}
