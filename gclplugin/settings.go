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

package gclplugin

import quarry "github.com/quarrylint/quarry/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Checks selects enabled checks by ID pattern.
	Checks *[]string `json:"checks,omitzero"`
	// Generated also reports diagnostics in generated files.
	Generated *bool `json:"generated,omitzero"`
}

// Options converts [Settings] into a list of [quarry.Option] for the quarry analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []quarry.Option {
	var opts []quarry.Option

	opts = appendOption(opts, s.Checks, func(checks []string) quarry.Option { return quarry.WithChecks(checks...) })
	opts = appendOption(opts, s.Generated, quarry.WithGenerated)

	return opts
}

// appendOption appends a non-nil setting to a [quarry.Option] list.
func appendOption[T any](opts []quarry.Option, value *T, constructor func(T) quarry.Option) []quarry.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
