// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package orchestrator sequences the full measuring-then-modular pipeline
// (§4.H): clear the output tree, translate the compilation database, run
// the measuring build, reduce its traces, emit and run the fake build, and
// report both wall-clock durations. Grounded on the teacher's cmd/nin/main.go
// Main(), which sequences parse-manifest → build in the same fatal-on-error
// style, adapted here to return errors instead of calling os.Exit directly.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ccbuild/bmisim"
	"github.com/ccbuild/bmisim/internal/buildexec"
	"github.com/ccbuild/bmisim/internal/cdb"
	"github.com/ccbuild/bmisim/internal/script"
)

// PreconditionError marks a failure in pipeline setup (bad CDB path, dirty
// output directory without --force, unparsable or empty compilation
// database) as
// distinct from a failure during the build/measure/emit stages, so cmd/bmisim
// can map it to a distinct exit code.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

// Config holds the orchestrator's inputs, one field per CLI flag (§6).
type Config struct {
	CDBPath               string
	OutputPath            string
	MeasuringCompilerPath string
	Force                 bool
	Parallelism           int
	Logger                *log.Logger
}

// Result reports the two wall-clock durations the pipeline exists to
// compare (§4.H step 7).
type Result struct {
	NormalTime  time.Duration
	ModularTime time.Duration
}

const (
	measuringDir = "measuring"
	fakeDir      = "fake"
	fakeBMIDir   = "fake/BMI"
)

// Run executes the full §4.H sequence.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}

	if err := prepareOutputTree(cfg.OutputPath, cfg.Force); err != nil {
		return nil, err
	}

	cdbData, err := os.ReadFile(cfg.CDBPath)
	if err != nil {
		return nil, &PreconditionError{Msg: fmt.Sprintf("reading compilation database: %v", err)}
	}
	entries, err := cdb.Parse(cdbData)
	if err != nil {
		return nil, &PreconditionError{Msg: fmt.Sprintf("parsing compilation database: %v", err)}
	}
	if len(entries) == 0 {
		return nil, &PreconditionError{Msg: "compilation database has no entries"}
	}

	measuringPath := filepath.Join(cfg.OutputPath, measuringDir)
	builder := cdb.NewBuilder(measuringPath)
	for _, e := range entries {
		e.Command = rewriteCompilerPath(e.Command, cfg.MeasuringCompilerPath)
		if _, err := builder.Add(e); err != nil {
			return nil, fmt.Errorf("translating compilation database: %w", err)
		}
	}
	measuringScript, mappings := builder.Build()
	if err := writeMappings(cfg.OutputPath, mappings); err != nil {
		return nil, err
	}

	logger.Info("running measuring build", "edges", len(measuringScript.Edges))
	normalTime, err := runScript(ctx, measuringScript, parallelism, buildexec.NewLogStatus(logger, "measuring"))
	if err != nil {
		return nil, fmt.Errorf("measuring build failed: %w", err)
	}

	results, err := collectAndReduce(ctx, mappings, parallelism)
	if err != nil {
		return nil, fmt.Errorf("reducing traces: %w", err)
	}
	if err := writeResultsJSON(cfg.OutputPath, results); err != nil {
		return nil, err
	}

	fakeRoot := filepath.Join(cfg.OutputPath, fakeDir)
	fakeScript, err := bmisim.EmitFakeBuild(results, fakeRoot)
	if err != nil {
		return nil, fmt.Errorf("emitting fake build: %w", err)
	}

	logger.Info("running fake build", "edges", len(fakeScript.Edges))
	modularTime, err := runScript(ctx, fakeScript, parallelism, buildexec.NewLogStatus(logger, "fake"))
	if err != nil {
		return nil, fmt.Errorf("fake build failed: %w", err)
	}

	return &Result{NormalTime: normalTime, ModularTime: modularTime}, nil
}

// prepareOutputTree implements §4.H step 1.
func prepareOutputTree(root string, force bool) error {
	entries, err := os.ReadDir(root)
	if err == nil && len(entries) > 0 {
		if !force {
			return &PreconditionError{Msg: fmt.Sprintf("output path %q is not empty (use --force to erase it)", root)}
		}
		if err := os.RemoveAll(root); err != nil {
			return &PreconditionError{Msg: fmt.Sprintf("clearing output path %q: %v", root, err)}
		}
	} else if err != nil && !os.IsNotExist(err) {
		return &PreconditionError{Msg: fmt.Sprintf("inspecting output path %q: %v", root, err)}
	}

	for _, sub := range []string{"", measuringDir, fakeDir, fakeBMIDir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return &PreconditionError{Msg: fmt.Sprintf("creating output tree: %v", err)}
		}
	}
	return nil
}

// rewriteCompilerPath substitutes the measuring compiler's directory for
// whatever front-end the compilation database originally named, so the
// measuring build runs through a time-tracing front-end while the rest of
// the original invocation (flags, defines, include paths) is preserved.
func rewriteCompilerPath(command, compilerDir string) string {
	tokens, err := cdb.Split(command)
	if err != nil || len(tokens) == 0 {
		return command
	}
	tokens[0] = filepath.Join(compilerDir, filepath.Base(tokens[0]))
	out := tokens[0]
	for _, t := range tokens[1:] {
		out += " " + shellQuote(t)
	}
	return out
}

func shellQuote(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '$' || c == '"' || c == '\'' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	return "'" + s + "'"
}

// runScript builds and executes a script end to end, timing only the
// executor invocation (§5: a single wall-clock delta, no per-task
// accounting inside the core).
func runScript(ctx context.Context, s *script.Script, parallelism int, status buildexec.Status) (time.Duration, error) {
	g, err := buildexec.Build(s)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	if err := buildexec.Run(ctx, g, parallelism, status); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// collectAndReduce implements §4.H step 4 and §5's parallel-per-trace
// fan-out: traces are read and reduced to (root, all_nodes) concurrently
// under a bounded errgroup, then merged via §4.F in a fixed, path-sorted
// order so the aggregator's last-writer semantics are deterministic
// regardless of which trace finishes reducing first.
func collectAndReduce(ctx context.Context, mappings []cdb.ObjectMapping, parallelism int) (*bmisim.MeasuringResults, error) {
	sorted := append([]cdb.ObjectMapping(nil), mappings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TimeTracePath < sorted[j].TimeTracePath })

	observations := make([]bmisim.TraceObservation, len(sorted))

	grp, _ := errgroup.WithContext(ctx)
	grp.SetLimit(parallelism)
	for i, m := range sorted {
		i, m := i, m
		grp.Go(func() error {
			obs, err := processTrace(m)
			if err != nil {
				return fmt.Errorf("processing trace for %q: %w", m.Source, err)
			}
			observations[i] = obs
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return bmisim.Aggregate(observations), nil
}

// processTrace runs §4.A-E for a single translation unit's trace, returning
// the observation §4.H step 4 and §4.F expect. Each TU's headers are
// canonicalized against that TU's own compile working directory, not a
// single global root, since a CDB commonly mixes TUs built from different
// subdirectories.
func processTrace(m cdb.ObjectMapping) (bmisim.TraceObservation, error) {
	data, err := os.ReadFile(m.TimeTracePath)
	if err != nil {
		return bmisim.TraceObservation{}, fmt.Errorf("reading trace: %w", err)
	}
	trace, err := bmisim.ParseTrace(data)
	if err != nil {
		return bmisim.TraceObservation{}, err
	}

	cleaned, err := bmisim.Clean(trace.Events, m.Directory)
	if err != nil {
		return bmisim.TraceObservation{}, err
	}

	multiEntry := bmisim.MultiEntrySet(cleaned, m.Directory)

	tuName := bmisim.Canonicalize(m.Source, m.Directory)
	reduced, err := bmisim.Reduce(cleaned, m.Directory, tuName, trace.TotalTimeUS, multiEntry)
	if err != nil {
		return bmisim.TraceObservation{}, err
	}

	forest, err := bmisim.BuildForest(reduced, trace.TotalTimeUS, true)
	if err != nil {
		return bmisim.TraceObservation{}, err
	}

	return bmisim.TraceObservation{
		Root:          forest.Root,
		AllNodes:      forest.AllNodes,
		TimeTracePath: m.TimeTracePath,
		Object:        m.Object,
	}, nil
}

func writeMappings(outputPath string, mappings []cdb.ObjectMapping) error {
	data, err := cdb.MarshalMappings(mappings)
	if err != nil {
		return fmt.Errorf("marshaling object mapping: %w", err)
	}
	return os.WriteFile(filepath.Join(outputPath, "obj_mapping.json"), data, 0o644)
}

func writeResultsJSON(outputPath string, results *bmisim.MeasuringResults) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling measuring results: %w", err)
	}
	return os.WriteFile(filepath.Join(outputPath, "results.json"), data, 0o644)
}
