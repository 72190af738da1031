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

// Package cdb translates a compile_commands.json compilation database into
// a measuring build script (§4.H step 2), grounded on
// original_source/fake-modular-build/cdbToNinja.py. Every compile command is
// rewritten to add -ftime-trace pointing at a trace file in the builder's
// trace directory, named after the object file's base name; a single compile
// rule covers every
// entry since the commands already carry their own full argument lists.
package cdb

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ccbuild/bmisim/internal/script"
)

// Entry is one compilation database record.
type Entry struct {
	Directory string
	Command   string
	File      string
	Output    string
}

// ObjectMapping records, for one translation unit, where its object file,
// source file, and time-trace file ended up, plus the working directory its
// compile command ran from (headers recorded in that TU's trace are
// canonicalized against this directory, not a single global root).
type ObjectMapping struct {
	Source        string
	Object        string
	Directory     string
	TimeTracePath string
}

const compileRuleName = "measure_compile"

// Parse reads a compile_commands.json document into a slice of Entry.
func Parse(data []byte) ([]Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid compilation database JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("compilation database root is not an array")
	}

	var entries []Entry
	var parseErr error
	root.ForEach(func(_, value gjson.Result) bool {
		command := value.Get("command").String()
		if command == "" {
			if args := value.Get("arguments"); args.IsArray() {
				var parts []string
				args.ForEach(func(_, a gjson.Result) bool {
					parts = append(parts, a.String())
					return true
				})
				command = strings.Join(parts, " ")
			}
		}
		if command == "" {
			parseErr = fmt.Errorf("compilation database entry for %q has neither command nor arguments", value.Get("file").String())
			return false
		}
		entries = append(entries, Entry{
			Directory: value.Get("directory").String(),
			Command:   command,
			File:      value.Get("file").String(),
			Output:    value.Get("output").String(),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return entries, nil
}

// Builder accumulates compilation database entries into a measuring build
// script plus the object-file mapping consumed by the orchestrator's trace
// collection step.
type Builder struct {
	traceDir string
	script   script.Script
	mappings []ObjectMapping
}

// NewBuilder creates a Builder. traceDir is the directory that receives one
// .time.json file per translation unit.
func NewBuilder(traceDir string) *Builder {
	return &Builder{
		traceDir: traceDir,
		script: script.Script{
			Rules: []script.Rule{{
				Name:    compileRuleName,
				Command: "cd $cwd && $command",
			}},
		},
	}
}

// Add appends one compilation database entry as a build edge, rewriting its
// command to request a time-trace document and returning the ObjectMapping
// that locates the resulting trace, object file, and working directory.
func (b *Builder) Add(e Entry) (ObjectMapping, error) {
	tokens, err := Split(e.Command)
	if err != nil {
		return ObjectMapping{}, fmt.Errorf("splitting command for %q: %w", e.File, err)
	}
	if len(tokens) == 0 {
		return ObjectMapping{}, fmt.Errorf("empty command for %q", e.File)
	}

	object := e.Output
	if object == "" {
		object = findOutputArg(tokens)
	}
	if object == "" {
		return ObjectMapping{}, fmt.Errorf("cannot determine object output for %q", e.File)
	}

	traceName := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(object), filepath.Ext(object)), string(filepath.Separator), "_")
	tracePath := filepath.Join(b.traceDir, fmt.Sprintf("%s.time.json", traceName))

	tokens = append(tokens, "-ftime-trace="+tracePath)

	mapping := ObjectMapping{
		Source:        e.File,
		Object:        object,
		Directory:     e.Directory,
		TimeTracePath: tracePath,
	}

	b.script.Edges = append(b.script.Edges, script.Edge{
		Output: object,
		Rule:   compileRuleName,
		Input:  e.File,
		Variables: map[string]string{
			"cwd":     e.Directory,
			"command": strings.Join(tokens, " "),
		},
	})
	b.mappings = append(b.mappings, mapping)

	return mapping, nil
}

// Build returns the accumulated measuring build script and object mappings.
func (b *Builder) Build() (*script.Script, []ObjectMapping) {
	out := b.script
	return &out, b.mappings
}

// findOutputArg recovers the -o argument from a tokenized compile command,
// for compilation databases that omit the separate "output" field.
func findOutputArg(tokens []string) string {
	for i, t := range tokens {
		if t == "-o" && i+1 < len(tokens) {
			return tokens[i+1]
		}
		if strings.HasPrefix(t, "-o") && len(t) > 2 {
			return t[2:]
		}
	}
	return ""
}

// MarshalMappings renders the object mapping table to JSON, the
// obj_mapping.json artifact from §12.
func MarshalMappings(mappings []ObjectMapping) ([]byte, error) {
	return json.MarshalIndent(mappings, "", "  ")
}
