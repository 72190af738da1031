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

// Package script models the directed build-graph text format (§6) shared by
// the CDB-to-build-script translator and the Fake-Build Emitter: one rule
// per distinct command template, one build edge per node, in the same
// rule/build grammar the teacher's own .ninja files use (see
// manifest_parser_serial.go, which parses this grammar in reverse).
package script

import (
	"fmt"
	"sort"
	"strings"
)

// Rule is a named command template. Command may reference $in, $out, and
// any custom edge variable (e.g. $wait_time), exactly like a ninja rule.
type Rule struct {
	Name    string
	Command string
}

// Edge is one build statement: a primary output (plus any implicit/extra
// outputs), the rule that produces it, a primary input, and implicit
// dependencies.
type Edge struct {
	Output          string
	ImplicitOutputs []string
	Rule            string
	Input           string
	ImplicitDeps    []string
	Variables       map[string]string
}

// Script is a full build description: rules plus edges.
type Script struct {
	Rules []Rule
	Edges []Edge
}

// Render serializes the script to the §6 build-script text form.
func (s *Script) Render() string {
	var b strings.Builder

	seen := make(map[string]bool, len(s.Rules))
	for _, r := range s.Rules {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		fmt.Fprintf(&b, "rule %s\n    command = %s\n\n", r.Name, r.Command)
	}

	for _, e := range s.Edges {
		out := e.Output
		if len(e.ImplicitOutputs) > 0 {
			out += " | " + strings.Join(e.ImplicitOutputs, " ")
		}
		depsPart := ""
		if len(e.ImplicitDeps) > 0 {
			sorted := append([]string(nil), e.ImplicitDeps...)
			sort.Strings(sorted)
			depsPart = " | " + strings.Join(sorted, " ")
		}
		fmt.Fprintf(&b, "build %s: %s %s%s\n", out, e.Rule, e.Input, depsPart)

		keys := make([]string, 0, len(e.Variables))
		for k := range e.Variables {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "    %s = %s\n", k, e.Variables[k])
		}
		b.WriteString("\n")
	}

	return b.String()
}
