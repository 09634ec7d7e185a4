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

// Package cache stores per-package diagnostic lists on disk, keyed by a
// hash of the package's file contents. A stale or unreadable entry is
// treated as a miss, never as an error.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/quarrylint/quarry/lint"
)

// schemaVersion invalidates all entries when the on-disk layout changes.
const schemaVersion = 1

type entry struct {
	Version     int               `msgpack:"version"`
	Salt        string            `msgpack:"salt"`
	Diagnostics []lint.Diagnostic `msgpack:"diagnostics"`
}

// Cache is a directory of msgpack-encoded diagnostic lists. The salt
// should encode the check-table version, so changed checks invalidate old
// results.
type Cache struct {
	dir  string
	salt string
}

// Open prepares the cache directory. An empty dir places the cache under
// the user cache directory.
func Open(dir, salt string) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cache: locate cache dir: %w", err)
		}

		dir = filepath.Join(base, "quarry")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", dir, err)
	}

	return &Cache{dir: dir, salt: salt}, nil
}

// Get returns the cached diagnostics for key. The second result is false
// on a miss or a stale entry.
func (c *Cache) Get(key string) ([]lint.Diagnostic, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, false
	}

	if e.Version != schemaVersion || e.Salt != c.salt {
		return nil, false
	}

	return e.Diagnostics, true
}

// Put stores diagnostics under key, atomically replacing any previous
// entry.
func (c *Cache) Put(key string, diagnostics []lint.Diagnostic) error {
	data, err := msgpack.Marshal(entry{
		Version:     schemaVersion,
		Salt:        c.salt,
		Diagnostics: diagnostics,
	})
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("cache: temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("cache: write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("cache: close: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("cache: rename: %w", err)
	}

	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".qc")
}

// Key hashes a package path and the contents of its files into a cache
// key. Unreadable files make the package uncacheable.
func Key(pkgPath string, filenames []string) (string, error) {
	h := sha256.New()

	fmt.Fprintf(h, "%s\x00", pkgPath)

	for _, name := range filenames {
		f, err := os.Open(name)
		if err != nil {
			return "", fmt.Errorf("cache: key %s: %w", pkgPath, err)
		}

		fmt.Fprintf(h, "%s\x00", name)

		_, err = io.Copy(h, f)
		f.Close()

		if err != nil {
			return "", fmt.Errorf("cache: key %s: %w", pkgPath, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
