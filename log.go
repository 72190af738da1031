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

package bmisim

import (
	"fmt"
	"os"
)

// warningf mirrors cmd/nin's leveled stderr helpers (fatalf/warningf/
// errorf/infof in the teacher's cmd/nin/main.go), trimmed to the one level
// this package's core logic needs: §7's "recursive include reported as
// skip" case is logged and ignored, never fatal.
func warningf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "bmisim: warning: ")
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintf(os.Stderr, "\n")
}
