// Copyright 2025 The Rivaas Authors
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

package compiler

import "strings"

// nonCapturing rewrites every plain capturing group "(" in re into a
// non-capturing group "(?:", so that the assembled route expression holds
// exactly one capture per variable.
//
// Escaped characters are copied unchanged. A "(" directly followed by '?' or
// '*' already carries a group modifier and is left alone, as is a "(" with
// fewer than two bytes after it. Parentheses inside bracket expressions are
// literals.
func nonCapturing(re string) string {
	if strings.IndexByte(re, '(') < 0 {
		return re
	}

	var b strings.Builder
	b.Grow(len(re) + 8)

	inClass := false
	for i := 0; i < len(re); i++ {
		c := re[i]
		b.WriteByte(c)

		switch {
		case c == '\\':
			if i+1 < len(re) {
				i++
				b.WriteByte(re[i])
			}

		case inClass:
			switch {
			case c == ']':
				inClass = false
			case c == '[' && i+1 < len(re) && re[i+1] == ':':
				// [:alpha:] inside a class
				if end := strings.Index(re[i+2:], ":]"); end >= 0 {
					b.WriteString(re[i+1 : i+2+end+2])
					i += 2 + end + 1
				}
			}

		case c == '[':
			inClass = true
			// A leading '^' and a leading ']' belong to the class.
			if i+1 < len(re) && re[i+1] == '^' {
				i++
				b.WriteByte(re[i])
			}
			if i+1 < len(re) && re[i+1] == ']' {
				i++
				b.WriteByte(re[i])
			}

		case c == '(':
			if i+2 >= len(re) {
				continue
			}
			if next := re[i+1]; next == '?' || next == '*' {
				i++
				b.WriteByte(next)
				continue
			}
			b.WriteString("?:")
		}
	}

	return b.String()
}
