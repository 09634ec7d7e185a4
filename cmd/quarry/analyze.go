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

package main

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/tools/go/callgraph/static"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/quarrylint/quarry/checks"
	"github.com/quarrylint/quarry/internal/cache"
	"github.com/quarrylint/quarry/internal/config"
	"github.com/quarrylint/quarry/lint"
)

// analyze builds the whole-program IR, consults the diagnostic cache, and
// runs the checker over the packages whose results are not cached.
func (o *options) analyze(ctx context.Context, logger *zap.Logger, cfg *config.Config, pkgs []*packages.Package) ([]lint.Diagnostic, error) {
	prog, ssapkgs := ssautil.AllPackages(pkgs, ssa.InstantiateGenerics)
	prog.Build()

	lintpkgs := make([]*lint.Package, 0, len(pkgs))
	for i, p := range pkgs {
		if ssapkgs[i] == nil {
			continue
		}

		lintpkgs = append(lintpkgs, lint.NewPackage(ssapkgs[i], p.TypesInfo, p.Fset, p.Syntax))
	}

	lprog := &lint.Program{
		SSA:       prog,
		CallGraph: static.CallGraph(prog),
		Packages:  lintpkgs,
	}

	checker := checks.NewChecker()

	var store *cache.Cache
	if cfg.Cache {
		c, err := cache.Open(o.cacheDir, salt(checker, cfg))
		if err != nil {
			logger.Warn("cache unavailable", zap.Error(err))
		} else {
			store = c
		}
	}

	keys := make(map[*lint.Package]string, len(lintpkgs))
	fileOwner := make(map[string]*lint.Package)

	var cached []lint.Diagnostic

	fresh := make([]*lint.Package, 0, len(lintpkgs))
	for i, lp := range lintpkgs {
		if store != nil {
			key, err := cache.Key(pkgs[i].PkgPath, pkgs[i].CompiledGoFiles)
			if err == nil {
				if diagnostics, ok := store.Get(key); ok {
					logger.Debug("cache hit", zap.String("package", pkgs[i].PkgPath))
					cached = append(cached, diagnostics...)

					continue
				}

				keys[lp] = key
			}
		}

		for _, name := range pkgs[i].CompiledGoFiles {
			fileOwner[name] = lp
		}

		fresh = append(fresh, lp)
	}

	runner := lint.NewRunner(
		lint.WithEnabled(config.NewFilter(cfg.Checks).Enabled),
		lint.WithGenerated(cfg.Generated),
	)

	diagnostics, err := runner.Run(ctx, lprog, checker, fresh)
	if err != nil {
		return nil, err
	}

	if store != nil {
		o.store(logger, store, keys, fileOwner, fresh, diagnostics)
	}

	diagnostics = append(diagnostics, cached...)
	lint.Sort(diagnostics)

	return diagnostics, nil
}

// store writes the freshly computed per-package diagnostic lists back to
// the cache. Cache failures are logged, not fatal.
func (o *options) store(
	logger *zap.Logger, store *cache.Cache,
	keys map[*lint.Package]string, fileOwner map[string]*lint.Package,
	fresh []*lint.Package, diagnostics []lint.Diagnostic,
) {
	grouped := make(map[*lint.Package][]lint.Diagnostic, len(fresh))
	for _, d := range diagnostics {
		if owner, ok := fileOwner[d.Position.Filename]; ok {
			grouped[owner] = append(grouped[owner], d)
		}
	}

	for _, lp := range fresh {
		key, ok := keys[lp]
		if !ok {
			continue
		}

		if err := store.Put(key, grouped[lp]); err != nil {
			logger.Warn("cache write failed", zap.Error(err))
		}
	}
}
