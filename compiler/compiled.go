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
	"regexp"
	"slices"

	"github.com/coregx/coregex"
)

// CompiledRoute is the immutable result of compiling a route.
// It holds no reference to the route it was compiled from and is safe for
// concurrent use.
type CompiledRoute struct {
	path string
	host string

	staticPrefix  string
	regex         string
	tokens        []Token
	pathVariables []string

	// Index, in order of appearance, of the first optional path token.
	firstOptional int

	hostRegex     string
	hostTokens    []Token
	hostVariables []string

	variables []string

	matcher     *matcher
	hostMatcher *matcher

	// Anchored per-variable requirements, used by URL generation.
	checkers     map[string]*coregex.Regex
	hostCheckers map[string]*coregex.Regex
}

// StaticPrefix returns the literal text every matching path starts with.
func (r *CompiledRoute) StaticPrefix() string {
	return r.staticPrefix
}

// Regex returns the anchored path expression.
func (r *CompiledRoute) Regex() string {
	return r.regex
}

// Tokens returns the path tokens in reverse order of appearance.
func (r *CompiledRoute) Tokens() []Token {
	return slices.Clone(r.tokens)
}

// PathVariables returns the path variable names in declaration order.
func (r *CompiledRoute) PathVariables() []string {
	return slices.Clone(r.pathVariables)
}

// HostRegex returns the anchored host expression, or "" when the route has
// no host pattern.
func (r *CompiledRoute) HostRegex() string {
	return r.hostRegex
}

// HostTokens returns the host tokens in reverse order of appearance.
func (r *CompiledRoute) HostTokens() []Token {
	return slices.Clone(r.hostTokens)
}

// HostVariables returns the host variable names in declaration order.
func (r *CompiledRoute) HostVariables() []string {
	return slices.Clone(r.hostVariables)
}

// Variables returns every variable name, host variables first, without duplicates.
func (r *CompiledRoute) Variables() []string {
	return slices.Clone(r.variables)
}

// Match matches path against the path expression and returns the captured
// variables. Optional variables that did not participate in the match are
// absent from the map.
func (r *CompiledRoute) Match(path string) (map[string]string, bool) {
	return match(r.matcher, path)
}

// MatchHost matches host against the host expression. A route without a
// host pattern matches every host with no variables.
func (r *CompiledRoute) MatchHost(host string) (map[string]string, bool) {
	if r.hostMatcher == nil {
		return map[string]string{}, true
	}
	return match(r.hostMatcher, host)
}

// matcher pairs a coregex expression, used to accept or reject input, with
// a regexp expression used to extract leftmost-first submatches.
type matcher struct {
	accept   *coregex.Regex
	captures *regexp.Regexp
}

func newMatcher(expr string) (*matcher, error) {
	accept, err := coregex.Compile(expr)
	if err != nil {
		return nil, err
	}
	captures, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &matcher{accept: accept, captures: captures}, nil
}

func match(m *matcher, s string) (map[string]string, bool) {
	if !m.accept.MatchString(s) {
		return nil, false
	}
	loc := m.captures.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil, false
	}

	params := make(map[string]string, m.captures.NumSubexp())
	for i, name := range m.captures.SubexpNames() {
		if i == 0 || name == "" || loc[2*i] < 0 {
			continue
		}
		params[name] = s[loc[2*i]:loc[2*i+1]]
	}

	return params, true
}

// buildCheckers compiles the anchored requirement of every variable.
func (r *CompiledRoute) buildCheckers() error {
	var err error
	if r.checkers, err = compileCheckers(r.tokens, false); err != nil {
		return err
	}
	r.hostCheckers, err = compileCheckers(r.hostTokens, true)
	return err
}

func compileCheckers(tokens []Token, isHost bool) (map[string]*coregex.Regex, error) {
	checkers := make(map[string]*coregex.Regex)
	for _, tok := range tokens {
		v, ok := tok.(VariableToken)
		if !ok {
			continue
		}
		re, err := coregex.Compile(anchor("(?:"+v.Pattern+")", isHost))
		if err != nil {
			return nil, newError(v.Pattern, v.Name, fmt.Errorf("%w: %w", ErrInvalidRegex, err))
		}
		checkers[v.Name] = re
	}
	return checkers, nil
}
