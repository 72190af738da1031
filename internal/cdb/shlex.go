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

import (
	"fmt"
	"strings"
)

// Split tokenizes a compile-command string the way Python's shlex.split
// does (original_source/cdb-to-ninja.py leans on shlex.split for exactly
// this). Neither the standard library nor any pack example carries a
// shell-tokenizer dependency, so this is hand-rolled, modeled on the
// teacher's own rune-at-a-time scanning style (lexer.go's Lexer.ReadToken).
func Split(command string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		haveCur bool
		quote   rune
	)

	runes := []rune(command)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteRune(c)
			}
		case c == '\'' || c == '"':
			quote = c
			haveCur = true
		case c == ' ' || c == '\t':
			if haveCur {
				tokens = append(tokens, cur.String())
				cur.Reset()
				haveCur = false
			}
		case c == '\\' && i+1 < len(runes):
			i++
			cur.WriteRune(runes[i])
			haveCur = true
		default:
			cur.WriteRune(c)
			haveCur = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in command: %s", command)
	}
	if haveCur {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
