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

// EventType is one of the compiler time-trace event kinds (§3).
type EventType string

const (
	Enter  EventType = "enter"
	Exit   EventType = "exit"
	Skip   EventType = "skip"
	IncDir EventType = "inc-dir"
	Other  EventType = "other"
)

// Event is a single item from a compiler time trace (§3).
type Event struct {
	Type        EventType
	File        string
	TimestampUS int64
}

// Trace is one translation unit's raw time-trace document (§6).
type Trace struct {
	TotalTimeUS int64
	Events      []Event
}

// Clean implements §4.B: drop the TU-itself first event, keep only
// enter/exit/skip events, discard events with an empty canonical path, and
// collapse pathological self-include pairs (an enter of a file already on
// the shadow stack, bracketed by its matching exit).
func Clean(events []Event, rootDir string) ([]Event, error) {
	if len(events) == 0 {
		return nil, nil
	}
	events = events[1:] // the TU itself has no matching exit.

	kept := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Type == Enter || e.Type == Exit || e.Type == Skip {
			kept = append(kept, e)
		}
	}

	filtered := make([]Event, 0, len(kept))
	for _, e := range kept {
		if Canonicalize(e.File, rootDir) != "" {
			filtered = append(filtered, e)
		}
	}

	drop := make(map[int]bool)
	stack := make([]string, 0, 16)
	for i := 0; i < len(filtered); i++ {
		e := filtered[i]
		name := Canonicalize(e.File, rootDir)
		switch e.Type {
		case Enter:
			if len(stack) > 0 && containsString(stack, name) {
				if i+1 >= len(filtered) {
					return nil, fmt.Errorf("self-include of %q not bracketed by a matching exit", name)
				}
				next := filtered[i+1]
				if next.Type != Exit || Canonicalize(next.File, rootDir) != name {
					return nil, fmt.Errorf("self-include of %q not bracketed by a matching exit", name)
				}
				drop[i] = true
				drop[i+1] = true
				i++ // consume the bracketed exit too; stack is unaffected by either.
				continue
			}
			stack = append(stack, name)
		case Exit:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	out := make([]Event, 0, len(filtered))
	for i, e := range filtered {
		if !drop[i] {
			out = append(out, e)
		}
	}
	return out, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
