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

const testTU = "/root/tu.cc"

func TestReduceSingleHeader(t *testing.T) {
	events := []Event{
		{Type: Enter, File: "/root/a.h", TimestampUS: 5},
		{Type: Exit, File: "/root/a.h", TimestampUS: 15},
	}
	r, err := Reduce(events, "/root", testTU, 20, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.InChildren[testTU]; got != 10 {
		t.Fatalf("InChildren[tu] = %d, want 10", got)
	}
	if !r.Dependencies[testTU]["/root/a.h"] {
		t.Fatalf("tu does not depend on a.h: %+v", r.Dependencies[testTU])
	}
}

func TestReduceStackMismatchIsFatal(t *testing.T) {
	events := []Event{
		{Type: Enter, File: "/root/a.h", TimestampUS: 5},
		{Type: Exit, File: "/root/b.h", TimestampUS: 15},
	}
	if _, err := Reduce(events, "/root", testTU, 20, nil); err == nil {
		t.Fatal("expected a stack-mismatch error")
	}
}

func TestReduceSkipOfUnenteredHeaderIsFatal(t *testing.T) {
	events := []Event{
		{Type: Skip, File: "/root/a.h", TimestampUS: 5},
	}
	if _, err := Reduce(events, "/root", testTU, 20, nil); err == nil {
		t.Fatal("expected a fatal error for skipping a header never entered")
	}
}

func TestReduceRecursiveIncludeViaSkipIsIgnored(t *testing.T) {
	// a.h is entered but not yet exited (we're still inside it) when a skip
	// for the same file arrives: an include guard tripping on itself during
	// its own first expansion. This is logged and ignored, not fatal.
	events := []Event{
		{Type: Enter, File: "/root/a.h", TimestampUS: 1},
		{Type: Skip, File: "/root/a.h", TimestampUS: 2},
		{Type: Exit, File: "/root/a.h", TimestampUS: 10},
	}
	r, err := Reduce(events, "/root", testTU, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.InChildren[testTU]; got != 9 {
		t.Fatalf("InChildren[tu] = %d, want 9", got)
	}
}

func TestReduceSkipOfUnenteredHeaderInsideRegionIsStillFatal(t *testing.T) {
	// m.h is multi-entry, which puts the reducer into region mode for its
	// extent; a skip of a header never entered anywhere must still abort,
	// since the region gate only suppresses dependency-edge bookkeeping, not
	// the unknown-skip-target validation.
	events := []Event{
		{Type: Enter, File: "/root/m.h", TimestampUS: 0},
		{Type: Skip, File: "/root/never-entered.h", TimestampUS: 1},
		{Type: Exit, File: "/root/m.h", TimestampUS: 5},
	}
	multiEntry := map[string]bool{"/root/m.h": true}
	if _, err := Reduce(events, "/root", testTU, 10, multiEntry); err == nil {
		t.Fatal("expected a fatal error for skipping a never-entered header inside a multi-entry region")
	}
}

func TestReduceMultiEntryHeaderChargesParentNotForest(t *testing.T) {
	// b.h is entered twice (no include guard); both entries are marked
	// multi-entry by the pre-scan classifier. Its time is folded into
	// whichever caller is open, never exposed as its own forest node.
	events := []Event{
		{Type: Enter, File: "/root/b.h", TimestampUS: 0},
		{Type: Exit, File: "/root/b.h", TimestampUS: 5},
		{Type: Enter, File: "/root/b.h", TimestampUS: 5},
		{Type: Exit, File: "/root/b.h", TimestampUS: 10},
	}
	multiEntry := map[string]bool{"/root/b.h": true}
	r, err := Reduce(events, "/root", testTU, 10, multiEntry)
	if err != nil {
		t.Fatal(err)
	}
	if r.Dependencies[testTU]["/root/b.h"] {
		t.Fatal("multi-entry header must not be registered as a forest dependency")
	}
	if got := r.InChildren[testTU]; got != 0 {
		t.Fatalf("InChildren[tu] = %d, want 0: a multi-entry header's interval is never added to InChildren, "+
			"so its time surfaces as the caller's own self-time instead of a separate forest node", got)
	}
}
