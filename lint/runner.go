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

package lint

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Runner executes a checker's full table over a program. Checks run in
// parallel across packages and across rules within a package; every check
// only reads shared indexes and writes to its private job.
type Runner struct {
	parallelism      int
	enabled          func(id string) bool
	includeGenerated bool
}

// RunnerOption configures a [Runner].
type RunnerOption interface {
	apply(r *Runner)
}

type runnerOptionFunc func(r *Runner)

func (f runnerOptionFunc) apply(r *Runner) { f(r) }

// WithParallelism limits the number of concurrently running checks.
// The default is [runtime.GOMAXPROCS].
func WithParallelism(n int) RunnerOption {
	return runnerOptionFunc(func(r *Runner) { r.parallelism = n })
}

// WithEnabled installs a check filter. Checks whose ID the filter rejects
// do not run at all.
func WithEnabled(enabled func(id string) bool) RunnerOption {
	return runnerOptionFunc(func(r *Runner) { r.enabled = enabled })
}

// WithGenerated reports diagnostics in generated files even for checks
// that normally filter them.
func WithGenerated(generated bool) RunnerOption {
	return runnerOptionFunc(func(r *Runner) { r.includeGenerated = generated })
}

// NewRunner creates a [Runner] with the given options applied.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		parallelism: runtime.GOMAXPROCS(0),
		enabled:     func(string) bool { return true },
	}

	for _, o := range opts {
		o.apply(r)
	}

	return r
}

// Run initializes the checker once for the whole program, then runs every
// enabled check against every package in pkgs (all packages when pkgs is
// nil). The returned diagnostics are sorted by position, check ID and
// message, so repeated runs over an unchanged program yield identical
// output.
func (r *Runner) Run(ctx context.Context, prog *Program, checker Checker, pkgs []*Package) ([]Diagnostic, error) {
	if pkgs == nil {
		pkgs = prog.Packages
	}

	if err := checker.Init(prog); err != nil {
		return nil, fmt.Errorf("%s: init: %w", checker.Name(), err)
	}

	var jobs []*Job

	for _, pkg := range pkgs {
		for _, chk := range checker.Checks() {
			if !r.enabled(chk.ID) {
				continue
			}

			if r.includeGenerated {
				chk.FilterGenerated = false
			}

			jobs = append(jobs, &Job{Program: prog, Pkg: pkg, check: chk})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			job.check.Fn(job)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var diagnostics []Diagnostic
	for _, job := range jobs {
		diagnostics = append(diagnostics, job.diagnostics...)
	}

	Sort(diagnostics)

	return diagnostics, nil
}

// Sort orders diagnostics by file, line, column, check ID and message.
func Sort(diagnostics []Diagnostic) {
	sort.Slice(diagnostics, func(i, j int) bool {
		di, dj := diagnostics[i], diagnostics[j]

		if di.Position.Filename != dj.Position.Filename {
			return di.Position.Filename < dj.Position.Filename
		}

		if di.Position.Line != dj.Position.Line {
			return di.Position.Line < dj.Position.Line
		}

		if di.Position.Column != dj.Position.Column {
			return di.Position.Column < dj.Position.Column
		}

		if di.Check != dj.Check {
			return di.Check < dj.Check
		}

		return di.Message < dj.Message
	})
}
