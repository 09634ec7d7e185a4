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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/quarrylint/quarry/internal/config"
	"github.com/quarrylint/quarry/lint"
)

// version salts the diagnostic cache.
const version = "0.1.0"

// errFindings signals a clean run that produced diagnostics.
var errFindings = errors.New("diagnostics reported")

type options struct {
	configPath string
	checks     []string
	tests      bool
	generated  bool
	debug      bool
	noColor    bool
	cacheDir   string
	noCache    bool
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:           "quarry [packages]",
		Short:         "quarry reports likely defects in Go packages",
		Long:          "quarry inspects the AST and IR of Go packages and reports likely defects:\ninvalid arguments to standard-library calls, dead or unreachable code,\nunsafe concurrency patterns, and type-system misuse.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.configPath, "config", "", "path to quarry.toml")
	flags.StringSliceVar(&o.checks, "checks", nil, "check ID patterns, e.g. all,Q1*,-Q3009")
	flags.BoolVar(&o.tests, "tests", true, "analyze test files")
	flags.BoolVar(&o.generated, "generated", false, "report diagnostics in generated files")
	flags.BoolVar(&o.debug, "debug", false, "verbose logging")
	flags.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&o.cacheDir, "cache-dir", "", "diagnostic cache directory")
	flags.BoolVar(&o.noCache, "no-cache", false, "disable the diagnostic cache")

	return cmd
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	logger, err := o.newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedDeps | packages.NeedTypes |
			packages.NeedSyntax | packages.NeedTypesInfo,
		Tests: cfg.Tests,
	}, args...)
	if err != nil {
		return fmt.Errorf("load packages: %w", err)
	}

	if n := packages.PrintErrors(pkgs); n > 0 {
		return fmt.Errorf("%d errors while loading packages", n)
	}

	logger.Debug("packages loaded", zap.Int("count", len(pkgs)))

	diagnostics, err := o.analyze(cmd.Context(), logger, cfg, pkgs)
	if err != nil {
		return err
	}

	o.render(cmd.OutOrStdout(), diagnostics)

	logger.Debug("analysis complete", zap.Int("diagnostics", len(diagnostics)))

	if len(diagnostics) > 0 {
		return errFindings
	}

	return nil
}

func (o *options) newLogger() (*zap.Logger, error) {
	if o.debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}

		return logger, nil
	}

	return zap.NewNop(), nil
}

// loadConfig reads quarry.toml when present and lets explicitly set flags
// override it.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	path := o.configPath
	if path == "" {
		if _, err := os.Stat("quarry.toml"); err == nil {
			path = "quarry.toml"
		}
	}

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("checks") {
		cfg.Checks = o.checks
	}

	if flags.Changed("tests") {
		cfg.Tests = o.tests
	}

	if flags.Changed("generated") {
		cfg.Generated = o.generated
	}

	if o.noCache {
		cfg.Cache = false
	}

	return cfg, nil
}

func (o *options) render(w io.Writer, diagnostics []lint.Diagnostic) {
	if o.noColor {
		color.NoColor = true
	}

	position := color.New(color.Bold)
	check := color.New(color.FgHiBlack)

	for _, d := range diagnostics {
		fmt.Fprintf(w, "%s: %s %s\n",
			position.Sprint(d.Position),
			d.Message,
			check.Sprintf("(%s)", d.Check),
		)
	}
}

// salt derives the cache salt from the tool version and the enabled check
// table, so a changed table invalidates old entries.
func salt(checker lint.Checker, cfg *config.Config) string {
	ids := make([]string, 0, len(checker.Checks()))
	for _, chk := range checker.Checks() {
		ids = append(ids, chk.ID)
	}

	return version + ":" + strings.Join(ids, ",") + ":" + strings.Join(cfg.Checks, ",")
}
