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

package analyzer_test

import (
	"flag"
	"reflect"
	"testing"

	. "github.com/quarrylint/quarry/analyzer"
)

func TestChecksFlag(t *testing.T) {
	t.Parallel()

	a := New()

	if err := a.Flags.Set("checks", "Q1*, -Q1007, "); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	f := a.Flags.Lookup("checks")
	if f == nil {
		t.Fatal("checks flag not registered")
	}

	got, ok := f.Value.(flag.Getter).Get().([]string)
	if !ok {
		t.Fatalf("checks flag value has type %T", f.Value.(flag.Getter).Get())
	}

	if want := []string{"Q1*", "-Q1007"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Got %q, want %q", got, want)
	}

	if f.Value.String() != "Q1*,-Q1007" {
		t.Errorf("String() = %q", f.Value.String())
	}
}

func TestGeneratedFlag(t *testing.T) {
	t.Parallel()

	a := New()

	if f := a.Flags.Lookup("generated"); f == nil {
		t.Error("generated flag not registered")
	}

	if err := a.Flags.Set("generated", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}
