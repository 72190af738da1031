// Copyright 2016 Google Inc. All Rights Reserved.
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

import "github.com/charmbracelet/log"

// Status tracks build progress the way the teacher's status.go Status
// interface does, trimmed to what a non-interactive batch run needs: no
// terminal-width progress bar, just leveled log lines through
// charmbracelet/log.
type Status interface {
	BuildStarted(totalEdges int)
	EdgeStarted(output string)
	EdgeFinished(output string, err error)
	BuildFinished()
}

// logStatus is the default Status, logging one line per edge transition.
type logStatus struct {
	logger *log.Logger
	label  string
}

// NewLogStatus returns a Status that narrates progress through logger,
// prefixing every line with label (e.g. "measuring" or "fake").
func NewLogStatus(logger *log.Logger, label string) Status {
	return &logStatus{logger: logger, label: label}
}

func (s *logStatus) BuildStarted(totalEdges int) {
	s.logger.Info("build started", "phase", s.label, "edges", totalEdges)
}

func (s *logStatus) EdgeStarted(output string) {
	s.logger.Debug("edge started", "phase", s.label, "output", output)
}

func (s *logStatus) EdgeFinished(output string, err error) {
	if err != nil {
		s.logger.Error("edge failed", "phase", s.label, "output", output, "err", err)
		return
	}
	s.logger.Debug("edge finished", "phase", s.label, "output", output)
}

func (s *logStatus) BuildFinished() {
	s.logger.Info("build finished", "phase", s.label)
}
