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

package buildexec

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Run schedules and executes every edge in g, honoring dependency order and
// bounding concurrency to parallelism. Edges whose dependencies have all
// finished form a "batch"; each batch runs fully concurrently (up to
// parallelism) before the next batch is computed, a generation-at-a-time
// (Kahn's algorithm) scheduler rather than a continuously-fed channel
// pipeline: the teacher's own live scheduler (build.go, non-compiling in
// this port) threads a single Plan through a pool of worker goroutines via
// channels, which risks a send on a closed channel once the last edge
// finishes — the batch form sidesteps that by never closing anything
// mid-run.
//
// Any edge failure aborts the remaining batches; Run returns the first
// error encountered.
func Run(ctx context.Context, g *Graph, parallelism int, status Status) error {
	if parallelism < 1 {
		parallelism = 1
	}
	status.BuildStarted(len(g.nodes))

	frontier := append([]*node(nil), g.roots...)
	for len(frontier) > 0 {
		grp, gctx := errgroup.WithContext(ctx)
		grp.SetLimit(parallelism)

		var nextMu nextFrontier
		for _, n := range frontier {
			n := n
			grp.Go(func() error {
				if upToDate(n) {
					status.EdgeFinished(n.edge.Output, nil)
					nextMu.release(n)
					return nil
				}
				status.EdgeStarted(n.edge.Output)
				err := runEdge(gctx, n.command)
				status.EdgeFinished(n.edge.Output, err)
				if err != nil {
					return fmt.Errorf("building %q: %w", n.edge.Output, err)
				}
				nextMu.release(n)
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			status.BuildFinished()
			return err
		}
		frontier = nextMu.ready
	}

	status.BuildFinished()
	return nil
}

// nextFrontier collects the next batch's ready nodes as the current batch's
// edges finish. A dependent node can have more than one producer in the
// same batch (a diamond in the graph), so both the remaining-count
// decrement and the ready-list append are serialized under one mutex rather
// than assuming each dependent belongs to a single producer.
type nextFrontier struct {
	mu    sync.Mutex
	ready []*node
}

func (f *nextFrontier) release(n *node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.done = true
	for _, dep := range n.dependents {
		dep.remaining--
		if dep.remaining == 0 {
			f.ready = append(f.ready, dep)
		}
	}
}

// runEdge executes one edge's shell command and returns an error including
// captured stderr/stdout on non-zero exit.
func runEdge(ctx context.Context, command string) error {
	cmd := createCmd(ctx, command)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, out.String())
	}
	return nil
}
