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

package checks

const (
	docQ1001 = `Invalid regular expression.
A constant pattern passed to a regexp compile or match function does not
compile. The diagnostic carries the regexp parser's error message.`

	docQ1002 = `Invalid time layout.
A constant layout string passed to time.Parse is not a valid reference
time layout.`

	docQ1003 = `Invalid URL.
A constant string passed to url.Parse does not parse as a URL.`

	docQ1004 = `FindAll-style call with n == 0.
A find-all or split function called with a zero count returns no results.
A negative count returns all results, which is almost always what was
meant.`

	docQ1005 = `Replace-style call with n == 0.
strings.Replace and bytes.Replace with a zero count replace nothing; use
-1 to replace all occurrences.`

	docQ1006 = `Unbuffered channel passed to signal.Notify.
signal.Notify does not block when sending; signals sent while an
unbuffered channel has no ready receiver are dropped.`

	docQ1007 = `Printf-style template and argument mismatch.
The constant template's verbs are checked against the supplied arguments:
invalid or out-of-range argument indexes, width and precision arguments
that are not integers, verbs applied to incompatible types, and argument
count mismatches.`

	docQ2001 = `Comparing strings with provably different lengths.
When the length intervals of two compared strings cannot overlap, the
equality can never hold.`

	docQ2002 = `Statically out-of-bounds slice index.
The index's lower bound is not smaller than the slice length's upper
bound, so the access always panics.`

	docQ3001 = `Spinning loop.
A loop with an empty body either has no condition or a condition built
only from side-effect-free reads; it will spin, using a full CPU, and may
never observe a change made by another goroutine.`

	docQ3002 = `Deferred call in an infinite loop.
Deferred actions only run on function return; a defer inside a loop that
never terminates will never run.`

	docQ3003 = `Self-assignment.
An expression assigned to itself has no effect unless it has side
effects.`

	docQ3004 = `Double negation.
Negating a boolean twice yields the original value; this is either
redundant or a typo.`

	docQ3005 = `Repeated condition in an if/else-if chain.
A condition occurring twice in the same chain makes the later branch
unreachable, provided the condition has no side effects.`

	docQ3006 = `Identical operands around a non-reflexive operator.
Expressions like x - x or x < x where both operands render identically
and are side-effect free always yield a constant result.`

	docQ3007 = `Unreachable type-switch case.
When an earlier case's interface demands a subset of a later case's
capabilities, every value matching the later case already matched the
earlier one. Interfaces with identical method sets under different names
get their own message, since they are easy to miss by inspection.`

	docQ3008 = `Empty branch body.
An if or else branch with an empty body is dead weight and often hides a
forgotten implementation.`

	docQ3009 = `Use of a deprecated symbol or package.
References to symbols documented as deprecated are flagged with the
recorded replacement guidance. References from deprecated code and
references within the declaring package are exempt.`

	docQ4001 = `Assignment to a nil map.
Writing to a nil map panics at runtime.`

	docQ4002 = `Unconditional infinite recursion.
A function whose every path to a return passes through a recursive call
to itself never terminates.`

	docQ4003 = `Comparison with NaN.
No value compares equal to NaN, not even NaN itself; such comparisons are
always false (or true for !=).`

	docQ4004 = `Leaking time.Tick.
time.Tick creates a ticker that is never garbage collected. Outside of
functions that never return, use time.NewTicker and stop it.`

	docQ4005 = `Ignored result of a pure function.
Calling a side-effect-free function and discarding its result does
nothing.`
)
