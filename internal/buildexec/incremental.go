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

package buildexec

import "os"

// upToDate reports whether an edge's output already exists and is newer
// than its input and implicit deps, the mtime comparison the teacher's
// Node.StatIfNecessary/Edge.AllInputsReady (disk_interface.go, graph.go —
// both nobuild pseudocode in this port) use to skip clean outputs. Every
// run here starts from a freshly recreated output tree (§4.H step 1), so
// this only ever matters for outputs outside that tree, such as the object
// files the compilation database names, which survive across repeated
// pipeline invocations.
func upToDate(n *node) bool {
	outInfo, err := os.Stat(n.edge.Output)
	if err != nil {
		return false
	}
	newest := outInfo.ModTime()

	check := func(path string) bool {
		info, err := os.Stat(path)
		if err != nil {
			return false // missing input: not up to date, let the command fail loudly.
		}
		return !info.ModTime().After(newest)
	}

	if !check(n.edge.Input) {
		return false
	}
	for _, d := range n.edge.ImplicitDeps {
		if !check(d) {
			return false
		}
	}
	return true
}
