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

// Package vrp models abstract value ranges for IR values.
//
// A [Range] describes the provable bounds of a runtime value: an integer
// interval, a string or slice length interval, or a channel capacity
// interval. Ranges are computed once per function and consumed read-only by
// checks. An unknown range is representable and every consumer must treat
// it as inconclusive.
package vrp

import (
	"fmt"
	"math/big"
)

// Range is the closed set of abstract values attached to IR values.
// Implementations are [IntInterval], [StringInterval], [SliceInterval] and
// [ChannelInterval].
type Range interface {
	IsKnown() bool
}

// Z is an integer that can additionally take the values negative and
// positive infinity, used for unbounded interval ends.
type Z struct {
	infinity int8
	integer  *big.Int
}

// NewZ returns the finite value n.
func NewZ(n int64) Z {
	return Z{integer: big.NewInt(n)}
}

// NewBigZ returns the finite value n.
func NewBigZ(n *big.Int) Z {
	return Z{integer: n}
}

// NInfinity is negative infinity.
func NInfinity() Z { return Z{infinity: -1} }

// PInfinity is positive infinity.
func PInfinity() Z { return Z{infinity: 1} }

// Infinite reports whether z is one of the two infinities.
func (z Z) Infinite() bool { return z.infinity != 0 }

// Sign returns -1, 0 or 1 depending on the sign of z.
func (z Z) Sign() int {
	if z.infinity != 0 {
		return int(z.infinity)
	}

	return z.integer.Sign()
}

// Cmp compares z and o and returns -1, 0 or 1.
func (z Z) Cmp(o Z) int {
	switch {
	case z.infinity != 0 || o.infinity != 0:
		switch {
		case int(z.infinity) < int(o.infinity):
			return -1
		case int(z.infinity) > int(o.infinity):
			return 1
		default:
			return 0
		}

	default:
		return z.integer.Cmp(o.integer)
	}
}

// Int64 returns the finite value of z. It panics when z is infinite.
func (z Z) Int64() int64 {
	if z.infinity != 0 {
		panic("vrp: Int64 of infinite value")
	}

	return z.integer.Int64()
}

func (z Z) String() string {
	switch z.infinity {
	case -1:
		return "-∞"
	case 1:
		return "∞"
	default:
		return z.integer.String()
	}
}

// IntInterval is a closed interval over the integers, possibly unbounded on
// either end. The zero value is the unknown interval.
type IntInterval struct {
	known bool
	Lower Z
	Upper Z
}

// NewIntInterval returns the known interval [l, u]. An empty interval
// (l > u) is returned as unknown.
func NewIntInterval(l, u Z) IntInterval {
	if l.Cmp(u) > 0 {
		return IntInterval{}
	}

	return IntInterval{known: true, Lower: l, Upper: u}
}

// IsKnown reports whether the interval carries any information.
func (i IntInterval) IsKnown() bool { return i.known }

// Exactly reports whether the interval pins its value to exactly n.
func (i IntInterval) Exactly(n int64) bool {
	z := NewZ(n)

	return i.known && i.Lower.Cmp(z) == 0 && i.Upper.Cmp(z) == 0
}

// Intersects reports whether the two intervals share at least one value.
// It returns true when either interval is unknown.
func (i IntInterval) Intersects(o IntInterval) bool {
	if !i.known || !o.known {
		return true
	}

	return i.Lower.Cmp(o.Upper) <= 0 && o.Lower.Cmp(i.Upper) <= 0
}

func (i IntInterval) String() string {
	if !i.known {
		return "[⊥, ⊥]"
	}

	return fmt.Sprintf("[%s, %s]", i.Lower, i.Upper)
}

// StringInterval describes the length bounds of a string value.
type StringInterval struct {
	Length IntInterval
}

// IsKnown reports whether the length bounds carry any information.
func (s StringInterval) IsKnown() bool { return s.Length.IsKnown() }

func (s StringInterval) String() string { return s.Length.String() }

// SliceInterval describes the length bounds of a slice value.
type SliceInterval struct {
	Length IntInterval
}

// IsKnown reports whether the length bounds carry any information.
func (s SliceInterval) IsKnown() bool { return s.Length.IsKnown() }

func (s SliceInterval) String() string { return s.Length.String() }

// ChannelInterval describes the capacity bounds of a channel value.
type ChannelInterval struct {
	Size IntInterval
}

// IsKnown reports whether the capacity bounds carry any information.
func (c ChannelInterval) IsKnown() bool { return c.Size.IsKnown() }

func (c ChannelInterval) String() string { return c.Size.String() }
