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

package checks_test

import (
	"context"
	"reflect"
	"testing"

	. "github.com/quarrylint/quarry/checks"
	"github.com/quarrylint/quarry/internal/testsource"
	"github.com/quarrylint/quarry/lint"
)

// run executes a single check over the given packages and returns the
// diagnostic messages in their reported order.
func run(tb testing.TB, checkID string, pkgs ...testsource.PackageSource) []string {
	tb.Helper()

	prog := testsource.Program(tb, pkgs...)

	runner := lint.NewRunner(lint.WithEnabled(func(id string) bool { return id == checkID }))

	diagnostics, err := runner.Run(context.Background(), prog, NewChecker(), nil)
	if err != nil {
		tb.Fatalf("Run: %v", err)
	}

	messages := make([]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		messages = append(messages, d.Message)
	}

	return messages
}

func TestChecks(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name  string
		check string
		src   string
		want  []string
	}{
		{
			name:  "regexp_invalid",
			check: "Q1001",
			src: `package pkg

import "regexp"

func find(s string) bool {
	return regexp.MustCompile("(").MatchString(s)
}
`,
			want: []string{"error parsing regexp: missing closing ): `(`"},
		},
		{
			name:  "regexp_valid",
			check: "Q1001",
			src: `package pkg

import "regexp"

func find(s string) bool {
	return regexp.MustCompile("a+b").MatchString(s)
}
`,
		},
		{
			name:  "regexp_dynamic_abstains",
			check: "Q1001",
			src: `package pkg

import "regexp"

func find(pat, s string) bool {
	ok, _ := regexp.MatchString(pat, s)
	return ok
}
`,
		},
		{
			name:  "time_layout_invalid",
			check: "Q1002",
			src: `package pkg

import "time"

func when(v string) (time.Time, error) {
	return time.Parse("2015-01-18", v)
}
`,
			want: []string{`parsing time "2015-01-18": month out of range`},
		},
		{
			name:  "time_layout_valid",
			check: "Q1002",
			src: `package pkg

import "time"

func when(v string) (time.Time, error) {
	return time.Parse("2006-01-02", v)
}
`,
		},
		{
			name:  "url_invalid",
			check: "Q1003",
			src: `package pkg

import "net/url"

func loc() (*url.URL, error) {
	return url.Parse("%gh&%ij")
}
`,
			want: []string{`parse "%gh&%ij": invalid URL escape "%gh"`},
		},
		{
			name:  "findall_zero_count",
			check: "Q1004",
			src: `package pkg

import "regexp"

var re = regexp.MustCompile("x")

func find(s string) []string {
	return re.FindAllString(s, 0)
}
`,
			want: []string{"calling a FindAll method with n == 0 will return no results, did you mean -1?"},
		},
		{
			name:  "findall_minus_one",
			check: "Q1004",
			src: `package pkg

import "regexp"

var re = regexp.MustCompile("x")

func find(s string) []string {
	return re.FindAllString(s, -1)
}
`,
		},
		{
			name:  "splitn_zero_count",
			check: "Q1004",
			src: `package pkg

import "strings"

func split(s string) []string {
	return strings.SplitN(s, ",", 0)
}
`,
			want: []string{"calling strings.SplitN with n == 0 will return no results, did you mean -1?"},
		},
		{
			name:  "replace_zero_count",
			check: "Q1005",
			src: `package pkg

import "strings"

func clean(s string) string {
	return strings.Replace(s, "a", "b", 0)
}
`,
			want: []string{"calling strings.Replace with n == 0 will return no results, did you mean -1?"},
		},
		{
			name:  "unbuffered_signal_chan",
			check: "Q1006",
			src: `package pkg

import (
	"os"
	"os/signal"
)

func wait() {
	c := make(chan os.Signal)
	signal.Notify(c, os.Interrupt)
	<-c
}
`,
			want: []string{"the channel used with signal.Notify should be buffered"},
		},
		{
			name:  "buffered_signal_chan",
			check: "Q1006",
			src: `package pkg

import (
	"os"
	"os/signal"
)

func wait() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}
`,
		},
		{
			name:  "string_size_comparison",
			check: "Q2001",
			src: `package pkg

func eq() bool {
	a := "abc"
	b := "abcd"
	return a == b
}
`,
			want: []string{"comparing strings of different sizes for equality will always return false"},
		},
		{
			name:  "string_size_comparison_same_length",
			check: "Q2001",
			src: `package pkg

func eq() bool {
	a := "abc"
	b := "def"
	return a == b
}
`,
		},
		{
			name:  "string_size_comparison_unknown",
			check: "Q2001",
			src: `package pkg

func eq(a string) bool {
	return a == "abcd"
}
`,
		},
		{
			name:  "index_out_of_bounds",
			check: "Q2002",
			src: `package pkg

func oops() int {
	xs := make([]int, 2)
	return xs[4]
}
`,
			want: []string{"index out of bounds"},
		},
		{
			name:  "index_in_bounds",
			check: "Q2002",
			src: `package pkg

func fine() int {
	xs := make([]int, 2)
	return xs[1]
}
`,
		},
		{
			name:  "spinning_loop",
			check: "Q3001",
			src: `package pkg

func spin() {
	for {
	}
}
`,
			want: []string{"this loop will spin, using 100% CPU"},
		},
		{
			name:  "polling_loop",
			check: "Q3001",
			src: `package pkg

func poll(done bool) {
	for !done {
	}
}
`,
			want: []string{"loop condition never changes or has no side effects; this loop will spin"},
		},
		{
			name:  "loop_with_call_condition",
			check: "Q3001",
			src: `package pkg

func busy() bool { return false }

func wait() {
	for busy() {
	}
}
`,
		},
		{
			name:  "defer_in_infinite_loop",
			check: "Q3002",
			src: `package pkg

func cleanup() {}

func serve() {
	for {
		defer cleanup()
	}
}
`,
			want: []string{"defers in this infinite loop will never run"},
		},
		{
			name:  "defer_in_exiting_loop",
			check: "Q3002",
			src: `package pkg

func cleanup() {}

func serve() {
	for {
		defer cleanup()
		break
	}
}
`,
		},
		{
			name:  "self_assignment",
			check: "Q3003",
			src: `package pkg

func noop() {
	x := 1
	x = x
	_ = x
}
`,
			want: []string{"self-assignment of x to x"},
		},
		{
			name:  "double_negation",
			check: "Q3004",
			src: `package pkg

func same(b bool) bool {
	return !!b
}
`,
			want: []string{"negating a boolean twice has no effect; is this a typo?"},
		},
		{
			name:  "repeated_conditions",
			check: "Q3005",
			src: `package pkg

func classify(n int) int {
	if n == 1 {
		return 1
	} else if n == 2 {
		return 2
	} else if n == 1 {
		return 3
	}
	return 0
}
`,
			want: []string{"this condition occurs multiple times in this if/else if chain"},
		},
		{
			name:  "distinct_conditions",
			check: "Q3005",
			src: `package pkg

func classify(n int) int {
	if n == 1 {
		return 1
	} else if n == 2 {
		return 2
	}
	return 0
}
`,
		},
		{
			name:  "identical_operands",
			check: "Q3006",
			src: `package pkg

func zero(x int) int {
	return x - x
}
`,
			want: []string{"identical expressions on the left and right side of the '-' operator"},
		},
		{
			name:  "identical_operands_impure",
			check: "Q3006",
			src: `package pkg

func f() int { return 0 }

func diff() int {
	return f() - f()
}
`,
		},
		{
			name:  "identical_operands_nan_idiom",
			check: "Q3006",
			src: `package pkg

func isNaN(x float64) bool {
	return x != x
}
`,
		},
		{
			name:  "unreachable_type_switch_case",
			check: "Q3007",
			src: `package pkg

type I interface{ M() }

type T struct{}

func (T) M() {}

func kind(x any) int {
	switch x.(type) {
	case I:
		return 1
	case T:
		return 2
	}
	return 0
}
`,
			want: []string{"unreachable case clause: pkg.I will always match before pkg.T"},
		},
		{
			name:  "type_switch_specific_first",
			check: "Q3007",
			src: `package pkg

type I interface{ M() }

type T struct{}

func (T) M() {}

func kind(x any) int {
	switch x.(type) {
	case T:
		return 1
	case I:
		return 2
	}
	return 0
}
`,
		},
		{
			name:  "type_switch_interface_subset",
			check: "Q3007",
			src: `package pkg

type I interface{ M() }

type K interface {
	M()
	N()
}

func kind(x any) int {
	switch x.(type) {
	case I:
		return 1
	case K:
		return 2
	}
	return 0
}
`,
			want: []string{"unreachable case clause: pkg.I will always match before pkg.K"},
		},
		{
			name:  "type_switch_identical_method_sets",
			check: "Q3007",
			src: `package pkg

type I interface{ M() }

type J interface{ M() }

func kind(x any) int {
	switch x.(type) {
	case I:
		return 1
	case J:
		return 2
	}
	return 0
}
`,
			want: []string{"unreachable case clause: pkg.I and pkg.J have identical method sets; pkg.I always matches first"},
		},
		{
			name:  "empty_branches",
			check: "Q3008",
			src: `package pkg

func branches(b bool) {
	if b {
	} else {
	}
}
`,
			want: []string{"empty branch", "empty branch"},
		},
		{
			name:  "nil_map_write",
			check: "Q4001",
			src: `package pkg

func bad() {
	var m map[string]int
	m["x"] = 1
}
`,
			want: []string{"assignment to nil map"},
		},
		{
			name:  "initialized_map_write",
			check: "Q4001",
			src: `package pkg

func good() {
	m := make(map[string]int)
	m["x"] = 1
	_ = m
}
`,
		},
		{
			name:  "infinite_recursion",
			check: "Q4002",
			src: `package pkg

func forever() {
	forever()
}
`,
			want: []string{"infinite recursive call"},
		},
		{
			name:  "conditional_recursion",
			check: "Q4002",
			src: `package pkg

func down(n int) {
	if n > 0 {
		down(n - 1)
	}
}
`,
		},
		{
			name:  "nan_comparison",
			check: "Q4003",
			src: `package pkg

import "math"

func check(x float64) bool {
	return x == math.NaN()
}
`,
			want: []string{"no value is equal to NaN, not even NaN itself"},
		},
		{
			name:  "leaky_time_tick",
			check: "Q4004",
			src: `package pkg

import "time"

func poll() {
	for range time.Tick(time.Second) {
	}
}
`,
			want: []string{"using time.Tick leaks the underlying ticker, consider using it only in endless functions, tests and the main package, and use time.NewTicker here"},
		},
		{
			name:  "time_tick_in_endless_function",
			check: "Q4004",
			src: `package pkg

import "time"

func daemon() {
	t := time.Tick(time.Second)
	for {
		<-t
	}
}
`,
		},
		{
			name:  "ignored_pure_result",
			check: "Q4005",
			src: `package pkg

func add(a, b int) int { return a + b }

func use() {
	add(1, 2)
}
`,
			want: []string{"add is a pure function but its return value is ignored"},
		},
		{
			name:  "used_pure_result",
			check: "Q4005",
			src: `package pkg

func add(a, b int) int { return a + b }

func use() int {
	return add(1, 2)
}
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := run(t, tc.check, testsource.PackageSource{Path: "pkg", Source: tc.src})

			if !equalMessages(got, tc.want) {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func equalMessages(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}

	return len(got) == 0 || reflect.DeepEqual(got, want)
}
