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

// Package config holds the run configuration of the quarry driver: which
// checks run, how generated files are treated, and whether results are
// cached.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the driver configuration, readable from a quarry.toml file.
// Command-line flags override file values.
type Config struct {
	// Checks selects enabled checks by ID pattern, e.g. "all", "Q1*",
	// "-Q3009".
	Checks []string `toml:"checks"`
	// Generated also reports diagnostics in generated files.
	Generated bool `toml:"generated"`
	// Tests includes test files in analysis.
	Tests bool `toml:"tests"`
	// Cache reuses cached diagnostics for unchanged packages.
	Cache bool `toml:"cache"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Checks: []string{"all"},
		Tests:  true,
		Cache:  true,
	}
}

// Load reads a TOML configuration file, with defaults applied for absent
// keys.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
