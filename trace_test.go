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

func TestParseTraceBasic(t *testing.T) {
	data := []byte(`{
		"TotalTime": 100,
		"Events": [
			{"Type": "enter", "File": "/root/tu.cc", "TimestampMS": 0},
			{"Type": "enter", "File": "/root/a.h", "TimestampMS": 5},
			{"Type": "exit", "File": "/root/a.h", "TimestampMS": 15},
			{"Type": "exit", "File": "/root/tu.cc", "TimestampMS": 100}
		]
	}`)

	trace, err := ParseTrace(data)
	if err != nil {
		t.Fatal(err)
	}
	if trace.TotalTimeUS != 100 {
		t.Fatalf("TotalTimeUS = %d, want 100", trace.TotalTimeUS)
	}
	if len(trace.Events) != 4 {
		t.Fatalf("got %d events, want 4", len(trace.Events))
	}
	if trace.Events[1].Type != Enter || trace.Events[1].File != "/root/a.h" || trace.Events[1].TimestampUS != 5 {
		t.Fatalf("unexpected event: %+v", trace.Events[1])
	}
}

func TestParseTraceUnknownTypeBecomesOther(t *testing.T) {
	data := []byte(`{"TotalTime": 10, "Events": [{"Type": "something-new", "File": "", "TimestampMS": 0}]}`)
	trace, err := ParseTrace(data)
	if err != nil {
		t.Fatal(err)
	}
	if trace.Events[0].Type != Other {
		t.Fatalf("Type = %q, want Other", trace.Events[0].Type)
	}
}

func TestParseTraceInvalidJSON(t *testing.T) {
	if _, err := ParseTrace([]byte("not json")); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestParseTraceMissingEvents(t *testing.T) {
	if _, err := ParseTrace([]byte(`{"TotalTime": 10}`)); err == nil {
		t.Fatal("expected an error for a missing Events array")
	}
}
