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

package a

import "fmt"

func doubleNegation(b bool) bool {
	return !!b // want `negating a boolean twice has no effect; is this a typo\?`
}

func selfAssignment() {
	x := 1
	x = x // want `self-assignment of x to x`
	_ = x
}

func emptyBranches(b bool) {
	if b { // want `empty branch`
	} else { // want `empty branch`
	}
}

func spin() {
	for { // want `this loop will spin, using 100% CPU`
	}
}

func identicalOperands(x int) int {
	return x - x // want `identical expressions on the left and right side of the '-' operator`
}

func nilMap() {
	var m map[string]int
	m["x"] = 1 // want `assignment to nil map`
}

func report() {
	fmt.Printf("%d") // want `Printf call needs 1 args but has 0 args`
}
