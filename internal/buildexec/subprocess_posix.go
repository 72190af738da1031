// Copyright 2012 Google Inc. All Rights Reserved.
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

//go:build !windows

package buildexec

import (
	"context"
	"os/exec"
	"syscall"
)

// createCmd builds the subprocess for one edge's command, adapted from the
// teacher's subprocess_posix.go createCmd: commands are shell snippets (they
// use "&&" and shell redirection), so they run through /bin/sh -c rather
// than being exec'd directly, each in its own process group so a cancelled
// build doesn't leave orphans behind.
func createCmd(ctx context.Context, command string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}
