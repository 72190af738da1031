// Copyright 2011 Google Inc. All Rights Reserved.
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

package bmisim

import (
	"path/filepath"
)

// Canonicalize implements §4.A: normalize a header or TU path to a single
// key space. An empty path canonicalizes to empty, matching events with no
// associated file. A relative path is joined against rootDir; the result is
// symlink-resolved and lexically normalized.
//
// When the path doesn't exist on disk (e.g. in tests that exercise the
// trace-reconstruction core against synthetic paths with no backing files),
// symlink resolution is skipped rather than treated as an error: the
// operation stays pure and total, at the cost of not collapsing symlinks
// that can't be stat'd. Real builds run against real, existing headers, so
// this only affects synthetic test fixtures.
func Canonicalize(path, rootDir string) string {
	if path == "" {
		return ""
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.Clean(path)
}
