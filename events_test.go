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

func TestCleanDropsFirstEvent(t *testing.T) {
	events := []Event{
		{Type: Enter, File: "/root/tu.cc"},
		{Type: Enter, File: "/root/a.h"},
		{Type: Exit, File: "/root/a.h"},
	}
	out, err := Clean(events, "/root")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(out), out)
	}
}

func TestCleanDropsOtherTypes(t *testing.T) {
	events := []Event{
		{Type: Enter, File: "/root/tu.cc"},
		{Type: IncDir, File: "/root"},
		{Type: Enter, File: "/root/a.h"},
		{Type: Exit, File: "/root/a.h"},
	}
	out, err := Clean(events, "/root")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(out), out)
	}
}

func TestCleanDropsEmptyPath(t *testing.T) {
	events := []Event{
		{Type: Enter, File: "/root/tu.cc"},
		{Type: Skip, File: ""},
		{Type: Enter, File: "/root/a.h"},
		{Type: Exit, File: "/root/a.h"},
	}
	out, err := Clean(events, "/root")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(out), out)
	}
}

func TestCleanCollapsesBracketedSelfInclude(t *testing.T) {
	events := []Event{
		{Type: Enter, File: "/root/tu.cc"},
		{Type: Enter, File: "/root/a.h"},
		{Type: Enter, File: "/root/a.h"}, // re-entering the same file while already open.
		{Type: Exit, File: "/root/a.h"},
		{Type: Exit, File: "/root/a.h"},
	}
	out, err := Clean(events, "/root")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d events, want 2 (the bracketed pair collapsed): %+v", len(out), out)
	}
}

func TestCleanUnbracketedSelfIncludeIsFatal(t *testing.T) {
	events := []Event{
		{Type: Enter, File: "/root/tu.cc"},
		{Type: Enter, File: "/root/a.h"},
		{Type: Enter, File: "/root/a.h"},
		{Type: Skip, File: "/root/b.h"}, // not the matching exit.
		{Type: Exit, File: "/root/a.h"},
		{Type: Exit, File: "/root/a.h"},
	}
	if _, err := Clean(events, "/root"); err == nil {
		t.Fatal("expected an error for an unbracketed self-include")
	}
}
