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
	"regexp"
	"strings"
)

// Separators lists the characters recognized as separators when they
// immediately precede a placeholder.
const Separators = "/,;.:-_~+*=@"

const (
	// pathSeparator is the default separator of path patterns.
	pathSeparator = "/"
	// hostSeparator is the default separator of host patterns.
	hostSeparator = "."
)

// isSeparator reports whether char is one of [Separators].
// The empty string is never a separator.
func isSeparator(char string) bool {
	return len(char) == 1 && strings.Contains(Separators, char)
}

// findNextSeparator returns the first character of following, once its
// placeholders are removed, if that character is a separator. Otherwise it
// returns "".
func findNextSeparator(following string, useUTF8 bool) string {
	if following == "" {
		return ""
	}

	stripped := stripPlaceholders(following)
	if stripped == "" {
		return ""
	}

	char := firstChar(stripped, useUTF8)
	if isSeparator(char) {
		return char
	}
	return ""
}

// defaultRequirement builds the regex used for a placeholder with no
// explicit requirement: one or more characters other than the pattern's
// default separator and the next static separator.
func defaultRequirement(defaultSeparator, following string, useUTF8 bool) string {
	next := findNextSeparator(following, useUTF8)

	var b strings.Builder
	b.WriteString("[^")
	b.WriteString(quoteClass(defaultSeparator))
	if next != "" && next != defaultSeparator {
		b.WriteString(quoteClass(next))
	}
	b.WriteString("]+")

	return b.String()
}

// quoteClass escapes s for use inside a bracket expression.
func quoteClass(s string) string {
	if s == "-" {
		return `\-`
	}
	return regexp.QuoteMeta(s)
}
