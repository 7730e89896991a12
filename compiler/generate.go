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
	"fmt"
	"net/url"
	"strings"

	"github.com/coregx/coregex"
)

// Generate builds a path from the route's tokens, substituting params for
// the variables.
//
// Example:
//
//	cr := compiler.MustCompile(route.New("/users/{id}/posts/{slug}"))
//	path, err := cr.Generate(map[string]string{"id": "42", "slug": "hello"})
//	// path == "/users/42/posts/hello"
func (r *CompiledRoute) Generate(params map[string]string) (string, error) {
	return r.GenerateWithDefaults(params, nil)
}

// GenerateWithDefaults is like Generate but falls back to defaults for
// variables absent from params. Variables of the optional trailing run of
// the path whose value equals their default are left out of the path.
func (r *CompiledRoute) GenerateWithDefaults(params, defaults map[string]string) (string, error) {
	path, err := generate(r.path, r.tokens, r.checkers, params, defaults, r.firstOptional, escapePathValue)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = "/"
	}
	return path, nil
}

// GenerateHost builds a host name from the route's host tokens.
// It returns "" when the route has no host pattern.
func (r *CompiledRoute) GenerateHost(params map[string]string) (string, error) {
	return generate(r.host, r.hostTokens, r.hostCheckers, params, nil, noOptional, func(s string) string { return s })
}

// generate walks tokens, stored in reverse order, prepending each piece.
// Tokens at or after firstOptional, in order of appearance, are skipped
// while they are variables equal to their default.
func generate(pattern string, tokens []Token, checkers map[string]*coregex.Regex, params, defaults map[string]string, firstOptional int, escape func(string) string) (string, error) {
	if err := checkMissing(pattern, tokens, params, defaults); err != nil {
		return "", err
	}

	var b []string
	optional := true
	for i, tok := range tokens {
		if len(tokens)-1-i < firstOptional {
			optional = false
		}
		switch t := tok.(type) {
		case TextToken:
			b = append(b, t.Literal)
			optional = false
		case VariableToken:
			value, given := params[t.Name]
			def, hasDefault := defaults[t.Name]
			if !given {
				value = def
			}
			if optional && hasDefault && value == def {
				continue
			}
			if !checkers[t.Name].MatchString(value) {
				return "", &Error{
					Pattern:  pattern,
					Variable: t.Name,
					Err:      fmt.Errorf("%w: value %q, expected %q", ErrParameterMismatch, value, t.Pattern),
				}
			}
			b = append(b, escape(value), t.Separator)
			optional = false
		}
	}

	// Pieces were collected from the end of the pattern.
	var out strings.Builder
	for i := len(b) - 1; i >= 0; i-- {
		out.WriteString(b[i])
	}
	return out.String(), nil
}

// checkMissing reports the first variable, in declaration order, that has
// neither a parameter nor a default.
func checkMissing(pattern string, tokens []Token, params, defaults map[string]string) error {
	for i := len(tokens) - 1; i >= 0; i-- {
		v, ok := tokens[i].(VariableToken)
		if !ok {
			continue
		}
		if _, ok := params[v.Name]; ok {
			continue
		}
		if _, ok := defaults[v.Name]; ok {
			continue
		}
		return &Error{Pattern: pattern, Variable: v.Name, Err: ErrMissingParameter}
	}
	return nil
}

// escapePathValue percent-encodes a path value, keeping '/' literal.
func escapePathValue(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), "%2F", "/")
}
