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

// Token is one element of a compiled pattern.
// The only implementations are [TextToken] and [VariableToken]; a type switch
// over those two covers every token.
type Token interface {
	isToken()
}

// TextToken is a literal portion of a pattern, matched verbatim.
type TextToken struct {
	Literal string
}

// VariableToken is a named placeholder.
type VariableToken struct {
	Separator string // Separator character preceding the placeholder, or ""
	Pattern   string // Regular expression the value must match
	Name      string // Variable name
	Primary   bool   // First placeholder of a host pattern
	Important bool   // Declared as {!name}: never optional
}

func (TextToken) isToken()     {}
func (VariableToken) isToken() {}

// reverseTokens returns a new slice with tokens in reverse order.
func reverseTokens(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		out[len(tokens)-1-i] = tok
	}
	return out
}
