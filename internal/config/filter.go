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

package config

import "strings"

// Filter decides which check IDs are enabled. Patterns are applied in
// order; later patterns win. "all" matches everything, a trailing "*"
// matches by prefix, and a leading "-" disables the matched checks.
type Filter struct {
	patterns []string
}

// NewFilter builds a [Filter]. An empty pattern list enables everything.
func NewFilter(patterns []string) Filter {
	if len(patterns) == 0 {
		patterns = []string{"all"}
	}

	return Filter{patterns: patterns}
}

// Enabled reports whether the check with the given ID should run.
func (f Filter) Enabled(id string) bool {
	enabled := false

	for _, p := range f.patterns {
		p = strings.TrimSpace(p)

		negate := strings.HasPrefix(p, "-")
		p = strings.TrimPrefix(p, "-")

		if matchPattern(p, id) {
			enabled = !negate
		}
	}

	return enabled
}

func matchPattern(p, id string) bool {
	switch {
	case p == "all" || p == "*":
		return true

	case strings.HasSuffix(p, "*"):
		return strings.HasPrefix(id, strings.TrimSuffix(p, "*"))

	default:
		return p == id
	}
}
