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

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseTrace parses one compiler time-trace document (§6):
// {TotalTime, Events: [{Type, File, TimestampMS}, ...]}. It uses gjson's
// path-based extraction rather than unmarshalling into a generic
// map[string]interface{}: a heavily-included TU's Events array can run into
// the tens of thousands of entries, and gjson walks the document once
// without allocating an intermediate tree for fields this parser never
// touches. The field named TimestampMS carries microseconds despite its
// name, so it is read into Event.TimestampUS.
func ParseTrace(data []byte) (*Trace, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid trace JSON")
	}
	root := gjson.ParseBytes(data)

	totalTime := root.Get("TotalTime")
	if !totalTime.Exists() {
		return nil, fmt.Errorf("trace missing TotalTime")
	}

	eventsResult := root.Get("Events")
	if !eventsResult.IsArray() {
		return nil, fmt.Errorf("trace missing Events array")
	}

	events := make([]Event, 0, 64)
	eventsResult.ForEach(func(_, value gjson.Result) bool {
		typ, ok := parseEventType(value.Get("Type").String())
		if !ok {
			typ = Other
		}
		events = append(events, Event{
			Type:        typ,
			File:        value.Get("File").String(),
			TimestampUS: value.Get("TimestampMS").Int(),
		})
		return true
	})

	return &Trace{TotalTimeUS: totalTime.Int(), Events: events}, nil
}

func parseEventType(s string) (EventType, bool) {
	switch EventType(s) {
	case Enter, Exit, Skip, IncDir:
		return EventType(s), true
	default:
		return Other, false
	}
}
