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

import (
	"strings"
	"unicode/utf8"
)

// placeholder is a {name} or {!name} span found in a pattern.
// Start and End are byte offsets; End is exclusive.
type placeholder struct {
	Name      string
	Important bool
	Start     int
	End       int
}

// isNameByte reports whether c may appear in a placeholder name:
// ASCII letters, digits, underscore, or any byte of a multi-byte sequence.
func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9') ||
		c >= 0x80
}

// scanPlaceholders returns every placeholder in pattern in source order.
// A '{' that does not open a well-formed placeholder is literal text and
// scanning resumes at the next byte, so "{{id}}" yields one placeholder
// at offset 1.
func scanPlaceholders(pattern string) []placeholder {
	var found []placeholder

	for i := 0; i < len(pattern); {
		if pattern[i] != '{' {
			i++
			continue
		}

		p, ok := parsePlaceholder(pattern, i)
		if !ok {
			i++
			continue
		}
		found = append(found, p)
		i = p.End
	}

	return found
}

// parsePlaceholder parses a placeholder starting at the '{' at offset start.
func parsePlaceholder(pattern string, start int) (placeholder, bool) {
	i := start + 1
	important := false
	if i < len(pattern) && pattern[i] == '!' {
		important = true
		i++
	}

	nameStart := i
	for i < len(pattern) && isNameByte(pattern[i]) {
		i++
	}
	if i == nameStart || i >= len(pattern) || pattern[i] != '}' {
		return placeholder{}, false
	}

	return placeholder{
		Name:      pattern[nameStart:i],
		Important: important,
		Start:     start,
		End:       i + 1,
	}, true
}

// stripPlaceholders removes every placeholder from s.
func stripPlaceholders(s string) string {
	found := scanPlaceholders(s)
	if len(found) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	pos := 0
	for _, p := range found {
		b.WriteString(s[pos:p.Start])
		pos = p.End
	}
	b.WriteString(s[pos:])

	return b.String()
}

// hasHighByte reports whether s contains a byte >= 0x80.
func hasHighByte(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

// lastChar returns the last character of s: the last rune when useUTF8 is
// set, otherwise the last byte.
func lastChar(s string, useUTF8 bool) string {
	if s == "" {
		return ""
	}
	if useUTF8 {
		_, size := utf8.DecodeLastRuneInString(s)
		return s[len(s)-size:]
	}
	return s[len(s)-1:]
}

// firstChar returns the first character of s: the first rune when useUTF8 is
// set, otherwise the first byte.
func firstChar(s string, useUTF8 bool) string {
	if s == "" {
		return ""
	}
	if useUTF8 {
		_, size := utf8.DecodeRuneInString(s)
		return s[:size]
	}
	return s[:1]
}
