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
	"sort"
)

// Node is a single header or TU within one trace (§3). Per §9's Design
// Notes, this intentionally carries no parent pointer: the forest is a DAG,
// not a tree, and a header shared by several parents is one Node reachable
// through several child lists.
type Node struct {
	Name        string
	Children    []*Node
	SelfTimeUS  int64
	TotalTimeUS int64
}

// Forest is §4.E's output: one TU's root node plus every canonical path
// visited, mapped to its unique Node.
type Forest struct {
	Root     *Node
	AllNodes map[string]*Node
}

// BuildForest implements §4.E: assemble nodes from the reducer's tables,
// computing self-time = total-time - in-children. Child references that
// fall in r.MultiEntry are silently dropped (property already charged to a
// parent's self-time by Reduce). When strict is true, the conservation
// invariant (§3, property 2) is checked: the sum of every node's self-time
// must equal the root's total time.
func BuildForest(r *ReducerResult, traceTotalTimeUS int64, strict bool) (*Forest, error) {
	all := make(map[string]*Node, len(r.EnterTimes))
	building := make(map[string]bool, 8)

	var build func(name string) (*Node, error)
	build = func(name string) (*Node, error) {
		if n, ok := all[name]; ok {
			return n, nil
		}
		if building[name] {
			return nil, fmt.Errorf("dependency cycle detected at %s", name)
		}
		building[name] = true
		defer delete(building, name)

		depNames := make([]string, 0, len(r.Dependencies[name]))
		for dep := range r.Dependencies[name] {
			if r.MultiEntry[dep] {
				continue
			}
			depNames = append(depNames, dep)
		}
		sort.Strings(depNames)

		children := make([]*Node, 0, len(depNames))
		for _, dep := range depNames {
			child, err := build(dep)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}

		total := r.ExitTimes[name] - r.EnterTimes[name]
		self := total - r.InChildren[name]
		node := &Node{Name: name, Children: children, SelfTimeUS: self, TotalTimeUS: total}
		all[name] = node
		return node, nil
	}

	root, err := build(r.TUName)
	if err != nil {
		return nil, err
	}
	if root.TotalTimeUS != traceTotalTimeUS {
		return nil, fmt.Errorf("root total time %d != trace TotalTime %d", root.TotalTimeUS, traceTotalTimeUS)
	}

	if strict {
		var sum int64
		for _, n := range all {
			sum += n.SelfTimeUS
		}
		if sum != root.TotalTimeUS {
			return nil, fmt.Errorf("conservation invariant violated: sum(self_time)=%d != root.total_time=%d", sum, root.TotalTimeUS)
		}
	}

	return &Forest{Root: root, AllNodes: all}, nil
}
