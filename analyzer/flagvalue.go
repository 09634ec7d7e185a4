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

import "strings"

// listValue adapts a string slice to [flag.Value], splitting on commas.
type listValue struct {
	values *[]string
}

// Set implements [flag.Value].
func (l listValue) Set(s string) error {
	var values []string

	for v := range strings.SplitSeq(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	*l.values = values

	return nil
}

// String implements [flag.Value].
func (l listValue) String() string {
	if l.values == nil {
		return ""
	}

	return strings.Join(*l.values, ",")
}

// Get implements [flag.Getter].
func (l listValue) Get() any {
	if l.values == nil {
		return []string(nil)
	}

	return *l.values
}
