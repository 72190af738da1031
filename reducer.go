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

import "fmt"

// ReducerResult holds one TU's intermediate tables, the direct input to the
// Forest Builder (§4.D output feeding §4.E).
type ReducerResult struct {
	TUName       string
	Dependencies map[string]map[string]bool
	EnterTimes   map[string]int64
	ExitTimes    map[string]int64
	InChildren   map[string]int64
	MultiEntry   map[string]bool
}

// Reduce walks one translation unit's cleaned event stream (§4.B's output),
// producing enter/exit times, in-children time, and immediate-dependency
// sets (§4.D). multiEntry is the classifier's (§4.C) pre-scan result; it is
// copied and may grow during the walk when a header is first seen while
// already nested inside another multi-entry header's region — the
// region-tracking variant that §9's Design Notes calls out as authoritative.
func Reduce(events []Event, rootDir, tuName string, totalTimeUS int64, multiEntry map[string]bool) (*ReducerResult, error) {
	r := &ReducerResult{
		TUName:       tuName,
		Dependencies: map[string]map[string]bool{tuName: {}},
		EnterTimes:   map[string]int64{tuName: 0},
		ExitTimes:    map[string]int64{tuName: totalTimeUS},
		InChildren:   map[string]int64{tuName: 0},
		MultiEntry:   cloneSet(multiEntry),
	}

	stack := []string{tuName}
	regionDepth := 0
	inRegion := false

	for idx := range events {
		e := events[idx]
		name := Canonicalize(e.File, rootDir)
		if name == "" {
			continue
		}
		top := stack[len(stack)-1]

		if e.Type == Enter && r.MultiEntry[name] {
			inRegion = true
		}
		if inRegion {
			switch e.Type {
			case Enter:
				regionDepth++
				if _, known := r.Dependencies[name]; !known {
					r.MultiEntry[name] = true
				}
			case Exit:
				regionDepth--
			}
			if regionDepth <= 0 {
				regionDepth = 0
				inRegion = false
			}
		}

		switch e.Type {
		case Enter:
			r.Dependencies[name] = map[string]bool{}
			r.EnterTimes[name] = e.TimestampUS
			r.InChildren[name] = 0
			if !r.MultiEntry[name] {
				r.Dependencies[top][name] = true
			}
			stack = append(stack, name)

		case Exit:
			if top != name {
				return nil, fmt.Errorf("stack mismatch! enter: %s, exit: %s, tu: %s", top, name, tuName)
			}
			r.ExitTimes[name] = e.TimestampUS
			stack = stack[:len(stack)-1]
			if !r.MultiEntry[name] {
				newTop := stack[len(stack)-1]
				r.InChildren[newTop] += r.ExitTimes[name] - r.EnterTimes[name]
			}

		case Skip:
			if _, entered := r.EnterTimes[name]; !entered {
				return nil, fmt.Errorf("skipping unknown header %s in tu %s", name, tuName)
			}
			if _, exited := r.ExitTimes[name]; !exited {
				warningf("recursive include of %s in tu %s, ignoring", name, tuName)
				continue
			}
			if !inRegion && !r.MultiEntry[name] {
				r.Dependencies[top][name] = true
			}
		}
	}

	return r, nil
}
