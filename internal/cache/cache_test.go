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

package cache_test

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/quarrylint/quarry/internal/cache"
	"github.com/quarrylint/quarry/lint"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := Open(t.TempDir(), "salt-1")
	require.NoError(t, err)

	diagnostics := []lint.Diagnostic{{
		Position: token.Position{Filename: "a.go", Line: 3, Column: 1},
		Check:    "Q1001",
		Message:  "error parsing regexp: missing closing ): `(`",
	}}

	require.NoError(t, c.Put("key", diagnostics))

	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, diagnostics, got)
}

func TestEmptyEntry(t *testing.T) {
	t.Parallel()

	// A clean package caches as an empty list, still a hit.
	c, err := Open(t.TempDir(), "salt-1")
	require.NoError(t, err)

	require.NoError(t, c.Put("key", nil))

	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestMiss(t *testing.T) {
	t.Parallel()

	c, err := Open(t.TempDir(), "salt-1")
	require.NoError(t, err)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestSaltMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	c1, err := Open(dir, "salt-1")
	require.NoError(t, err)
	require.NoError(t, c1.Put("key", nil))

	c2, err := Open(dir, "salt-2")
	require.NoError(t, err)

	_, ok := c2.Get("key")
	assert.False(t, ok, "a different salt invalidates old entries")
}

func TestCorruptEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	c, err := Open(dir, "salt-1")
	require.NoError(t, err)
	require.NoError(t, c.Put("key", nil))

	entries, err := filepath.Glob(filepath.Join(dir, "*.qc"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(entries[0], []byte("garbage"), 0o644))

	_, ok := c.Get("key")
	assert.False(t, ok, "a corrupt entry is a miss, not an error")
}

func TestKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	name := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(name, []byte("package a\n"), 0o644))

	k1, err := Key("example.com/a", []string{name})
	require.NoError(t, err)

	k2, err := Key("example.com/a", []string{name})
	require.NoError(t, err)
	assert.Equal(t, k1, k2, "keys are deterministic")

	k3, err := Key("example.com/b", []string{name})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3, "the package path is part of the key")

	require.NoError(t, os.WriteFile(name, []byte("package a // changed\n"), 0o644))

	k4, err := Key("example.com/a", []string{name})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k4, "file contents are part of the key")

	_, err = Key("example.com/a", []string{filepath.Join(dir, "absent.go")})
	assert.Error(t, err)
}
