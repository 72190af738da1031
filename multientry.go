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

// MultiEntrySet implements §4.C: a single pass over enter events marking
// every canonical path entered more than once within one TU's cleaned event
// stream. Such headers either lack include guards or are intentionally
// re-evaluated (X-macros); the Trace Reducer (§4.D) excludes them from the
// forest and charges their time to whichever caller is open when they run.
func MultiEntrySet(events []Event, rootDir string) map[string]bool {
	seen := make(map[string]bool)
	multi := make(map[string]bool)
	for _, e := range events {
		if e.Type != Enter {
			continue
		}
		name := Canonicalize(e.File, rootDir)
		if name == "" {
			continue
		}
		if seen[name] {
			multi[name] = true
		} else {
			seen[name] = true
		}
	}
	return multi
}

func cloneSet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
