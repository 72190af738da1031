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

import "sort"

// MeasuringResults is the project-wide aggregate (§3).
type MeasuringResults struct {
	BuildTimes    map[string]int64
	ImmediateDeps map[string]map[string]bool
	ObjectFiles   map[string]string
}

// TraceObservation is one (root, all_nodes, time_trace_path) tuple, the unit
// Aggregate consumes (§4.F). Object is the TU's already-known object-file
// path (from the CDB translation's ObjectMapping), carried through rather
// than re-derived from TimeTracePath, since the trace-file naming convention
// is not guaranteed to make that derivation reversible.
type TraceObservation struct {
	Root          *Node
	AllNodes      map[string]*Node
	TimeTracePath string
	Object        string
}

// Aggregate implements §4.F: merge per-TU forests into one MeasuringResults.
// immediate_deps uses last-writer semantics across TUs (documented choice,
// §4.F/§9): callers that parallelize per-trace processing (§5) must feed
// observations already sorted by TimeTracePath for the result to be
// deterministic.
func Aggregate(observations []TraceObservation) *MeasuringResults {
	tuTimes := make(map[string][]int64)
	immediateDeps := make(map[string]map[string]bool)
	objectFiles := make(map[string]string)

	for _, obs := range observations {
		if obs.Root == nil {
			continue
		}
		for name, n := range obs.AllNodes {
			tuTimes[name] = append(tuTimes[name], n.SelfTimeUS)
			children := make(map[string]bool, len(n.Children))
			for _, c := range n.Children {
				children[c.Name] = true
			}
			immediateDeps[name] = children
		}
		objectFiles[obs.Root.Name] = obs.Object
	}

	buildTimes := make(map[string]int64, len(tuTimes))
	for name, times := range tuTimes {
		buildTimes[name] = medianInt64(times)
	}

	return &MeasuringResults{BuildTimes: buildTimes, ImmediateDeps: immediateDeps, ObjectFiles: objectFiles}
}

func medianInt64(values []int64) int64 {
	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
