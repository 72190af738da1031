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

package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDedupsRules(t *testing.T) {
	s := &Script{
		Rules: []Rule{
			{Name: "cc", Command: "clang $in -o $out"},
			{Name: "cc", Command: "clang $in -o $out"},
		},
		Edges: []Edge{
			{Output: "a.o", Rule: "cc", Input: "a.c"},
		},
	}
	out := s.Render()
	require.Equal(t, 1, countOccurrences(out, "rule cc"))
	assert.Contains(t, out, "build a.o: cc a.c")
}

func TestRenderSortsImplicitDepsAndVariables(t *testing.T) {
	s := &Script{
		Rules: []Rule{{Name: "compile", Command: "$cc $in -o $out"}},
		Edges: []Edge{
			{
				Output:       "a.o",
				Rule:         "compile",
				Input:        "a.c",
				ImplicitDeps: []string{"z.h", "a.h"},
				Variables:    map[string]string{"wait": "1", "cc": "clang"},
			},
		},
	}
	out := s.Render()
	assert.Contains(t, out, "build a.o: compile a.c | a.h z.h")
	assert.Contains(t, out, "cc = clang")
	assert.Contains(t, out, "wait = 1")
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}
