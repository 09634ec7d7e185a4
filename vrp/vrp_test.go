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

package vrp_test

import (
	"testing"

	. "github.com/quarrylint/quarry/vrp"
)

func TestZ(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		z    Z
		str  string
		sign int
	}{
		{"zero", NewZ(0), "0", 0},
		{"positive", NewZ(42), "42", 1},
		{"negative", NewZ(-7), "-7", -1},
		{"pinf", PInfinity(), "∞", 1},
		{"ninf", NInfinity(), "-∞", -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.z.String(); got != tc.str {
				t.Errorf("String() = %q, want %q", got, tc.str)
			}

			if got := tc.z.Sign(); got != tc.sign {
				t.Errorf("Sign() = %d, want %d", got, tc.sign)
			}
		})
	}
}

func TestZCmp(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		a, b Z
		want int
	}{
		{"eq", NewZ(3), NewZ(3), 0},
		{"lt", NewZ(2), NewZ(3), -1},
		{"gt", NewZ(3), NewZ(2), 1},
		{"ninf_lt_all", NInfinity(), NewZ(-1 << 62), -1},
		{"pinf_gt_all", PInfinity(), NewZ(1 << 62), 1},
		{"ninf_lt_pinf", NInfinity(), PInfinity(), -1},
		{"pinf_eq_pinf", PInfinity(), PInfinity(), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.a.Cmp(tc.b); got != tc.want {
				t.Errorf("Cmp(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestIntInterval(t *testing.T) {
	t.Parallel()

	exact := NewIntInterval(NewZ(5), NewZ(5))
	wide := NewIntInterval(NewZ(0), NewZ(10))
	high := NewIntInterval(NewZ(20), NewZ(30))

	if !exact.IsKnown() {
		t.Error("exact interval should be known")
	}

	if !exact.Exactly(5) {
		t.Error("Exactly(5) should hold for [5, 5]")
	}

	if wide.Exactly(5) {
		t.Error("Exactly(5) should not hold for [0, 10]")
	}

	if !exact.Intersects(wide) {
		t.Error("[5, 5] should intersect [0, 10]")
	}

	if wide.Intersects(high) {
		t.Error("[0, 10] should not intersect [20, 30]")
	}
}

func TestEmptyIntervalUnknown(t *testing.T) {
	t.Parallel()

	// An inverted interval carries no information.
	empty := NewIntInterval(NewZ(10), NewZ(0))
	if empty.IsKnown() {
		t.Error("inverted interval should be unknown")
	}
}

func TestCompositeIntervals(t *testing.T) {
	t.Parallel()

	s := StringInterval{Length: NewIntInterval(NewZ(3), NewZ(3))}
	if !s.IsKnown() {
		t.Error("string interval with known length should be known")
	}

	if (StringInterval{}).IsKnown() {
		t.Error("zero string interval should be unknown")
	}

	ch := ChannelInterval{Size: NewIntInterval(NewZ(0), NewZ(0))}
	if !ch.IsKnown() {
		t.Error("channel interval with known size should be known")
	}

	if !ch.Size.Exactly(0) {
		t.Error("channel size should be exactly zero")
	}

	if (SliceInterval{}).IsKnown() {
		t.Error("zero slice interval should be unknown")
	}
}
