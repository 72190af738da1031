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

import "testing"

func TestCanonicalizeEmpty(t *testing.T) {
	if got := Canonicalize("", "/root"); got != "" {
		t.Fatalf("Canonicalize(\"\", ...) = %q, want empty", got)
	}
}

func TestCanonicalizeAbsolute(t *testing.T) {
	if got := Canonicalize("/a/b/../c.h", "/root"); got != "/a/c.h" {
		t.Fatalf("got %q, want /a/c.h", got)
	}
}

func TestCanonicalizeRelative(t *testing.T) {
	if got := Canonicalize("foo/./bar.h", "/root"); got != "/root/foo/bar.h" {
		t.Fatalf("got %q, want /root/foo/bar.h", got)
	}
}

func TestCanonicalizeDotDot(t *testing.T) {
	if got := Canonicalize("foo/../bar.h", "/root"); got != "/root/bar.h" {
		t.Fatalf("got %q, want /root/bar.h", got)
	}
}
