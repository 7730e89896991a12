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
	"math"
	"regexp"
	"strings"
)

// noOptional is the first-optional index of a pattern without optional tokens.
const noOptional = math.MaxInt

// assemble folds tokens, in order of appearance, into one expression.
// Tokens at or after firstOptional are nested optional groups.
func assemble(tokens []Token, firstOptional int) string {
	var b strings.Builder
	for i := range tokens {
		writeTokenRegex(&b, tokens, i, firstOptional)
	}
	return b.String()
}

func writeTokenRegex(b *strings.Builder, tokens []Token, index, firstOptional int) {
	var v VariableToken
	switch tok := tokens[index].(type) {
	case TextToken:
		b.WriteString(regexp.QuoteMeta(tok.Literal))
		return
	case VariableToken:
		v = tok
	}

	// A lone leading optional variable keeps its separator mandatory.
	if index == 0 && firstOptional == 0 {
		writeGroup(b, v)
		b.WriteByte('?')
		return
	}

	optional := index >= firstOptional
	if optional {
		b.WriteString("(?:")
	}
	writeGroup(b, v)

	if optional && index == len(tokens)-1 {
		n := len(tokens) - firstOptional
		if firstOptional == 0 {
			n--
		}
		b.WriteString(strings.Repeat(")?", n))
	}
}

// writeGroup writes <separator>(?P<name>pattern).
func writeGroup(b *strings.Builder, v VariableToken) {
	b.WriteString(regexp.QuoteMeta(v.Separator))
	b.WriteString("(?P<")
	b.WriteString(v.Name)
	b.WriteByte('>')
	b.WriteString(v.Pattern)
	b.WriteByte(')')
}

// anchor wraps an assembled expression for full-string matching.
// Host expressions are case-insensitive; in path expressions '.' also
// matches a newline.
func anchor(expr string, isHost bool) string {
	if isHost {
		return "(?i)^" + expr + "$"
	}
	return "(?s)^" + expr + "$"
}
