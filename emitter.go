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
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ccbuild/bmisim/internal/script"
)

// minTimeToSpawnCompiler models the irreducible cost of launching one
// compile invocation under a modular build (§4.G, §9 "unit of time": this
// constant is in seconds, while everything else here is microseconds until
// this boundary).
const minTimeToSpawnCompiler = 0.015

const (
	moduleRuleName  = "fake_module"
	objfileRuleName = "fake_objfile"
	catTimes        = 5
)

// EmitFakeBuild implements §4.G: synthesize a build graph where every
// header and TU becomes one node with a sleep duration and the correct
// dependency edges, grounded on
// original_source/fake-modular-build/createFakeBuild.py. Headers become
// module nodes producing a BMI artifact at fakeRoot/BMI/<mangled>.bmi; TUs
// become object nodes producing their recorded .o path.
func EmitFakeBuild(m *MeasuringResults, fakeRoot string) (*script.Script, error) {
	s := &script.Script{
		Rules: []script.Rule{
			{
				Name:    moduleRuleName,
				Command: "sleep $wait_time && truncate -s 0 $out && seq 1 $cat_times | xargs -Inone cat $in >> $out",
			},
			{
				Name:    objfileRuleName,
				Command: "sleep $wait_time && touch $out",
			},
		},
	}

	names := make([]string, 0, len(m.BuildTimes))
	for name := range m.BuildTimes {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic emission order, independent of map iteration.

	for _, name := range names {
		selfTimeUS := m.BuildTimes[name]
		deps, ok := m.ImmediateDeps[name]
		if !ok {
			return nil, fmt.Errorf("build_times has %q but immediate_deps does not (§3 invariant violated)", name)
		}

		bmiDeps := make([]string, 0, len(deps))
		for dep := range deps {
			bmiDeps = append(bmiDeps, bmiPath(fakeRoot, dep))
		}

		waitTime := fmt.Sprintf("%.6f", float64(selfTimeUS)/1e6+minTimeToSpawnCompiler)

		if objectFile, isSource := m.ObjectFiles[name]; isSource {
			s.Edges = append(s.Edges, script.Edge{
				Output:       objectFile,
				Rule:         objfileRuleName,
				Input:        name,
				ImplicitDeps: bmiDeps,
				Variables:    map[string]string{"wait_time": waitTime},
			})
			continue
		}

		s.Edges = append(s.Edges, script.Edge{
			Output:       bmiPath(fakeRoot, name),
			Rule:         moduleRuleName,
			Input:        name,
			ImplicitDeps: bmiDeps,
			Variables: map[string]string{
				"wait_time": waitTime,
				"cat_times": fmt.Sprintf("%d", catTimes),
			},
		})
	}

	return s, nil
}

// bmiPath computes a header's synthesized BMI artifact path (§4.G).
func bmiPath(fakeRoot, canonicalPath string) string {
	mangled := strings.ReplaceAll(canonicalPath, "/", "_")
	return filepath.Join(fakeRoot, "BMI", mangled+".bmi")
}
