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
	"encoding/json"
	"sort"
)

// measuringResultsJSON is the stable on-disk shape from §6: immediate_deps
// values are sorted arrays, build_times values are integer medians.
type measuringResultsJSON struct {
	BuildTimes    map[string]int64    `json:"build_times"`
	ImmediateDeps map[string][]string `json:"immediate_deps"`
	ObjectFiles   map[string]string   `json:"object_files"`
}

// MarshalJSON renders MeasuringResults in the §6 stable on-disk form.
func (m *MeasuringResults) MarshalJSON() ([]byte, error) {
	deps := make(map[string][]string, len(m.ImmediateDeps))
	for k, set := range m.ImmediateDeps {
		list := make([]string, 0, len(set))
		for v := range set {
			list = append(list, v)
		}
		sort.Strings(list)
		deps[k] = list
	}
	return json.Marshal(measuringResultsJSON{
		BuildTimes:    m.BuildTimes,
		ImmediateDeps: deps,
		ObjectFiles:   m.ObjectFiles,
	})
}

// UnmarshalJSON parses the §6 on-disk form back into a MeasuringResults.
func (m *MeasuringResults) UnmarshalJSON(data []byte) error {
	var raw measuringResultsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	deps := make(map[string]map[string]bool, len(raw.ImmediateDeps))
	for k, list := range raw.ImmediateDeps {
		set := make(map[string]bool, len(list))
		for _, v := range list {
			set[v] = true
		}
		deps[k] = set
	}
	m.BuildTimes = raw.BuildTimes
	m.ImmediateDeps = deps
	m.ObjectFiles = raw.ObjectFiles
	return nil
}
