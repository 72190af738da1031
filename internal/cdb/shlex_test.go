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

package cdb

import "testing"

func TestSplitBasic(t *testing.T) {
	got, err := Split("clang -c a.cc -o a.o")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"clang", "-c", "a.cc", "-o", "a.o"}
	if !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitQuotedArgument(t *testing.T) {
	got, err := Split(`clang -DNAME="hello world" a.cc`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"clang", "-DNAME=hello world", "a.cc"}
	if !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitEscapedSpace(t *testing.T) {
	got, err := Split(`clang a\ file.cc`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"clang", "a file.cc"}
	if !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitUnterminatedQuoteIsError(t *testing.T) {
	if _, err := Split(`clang "unterminated`); err == nil {
		t.Fatal("expected an error for an unterminated quote")
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
