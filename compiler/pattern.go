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
	"slices"
	"unicode/utf8"
)

const (
	// MaxVariableNameLength is the maximum length of a variable name in bytes.
	MaxVariableNameLength = 32

	// ReservedVariableName may not be used as a path variable.
	ReservedVariableName = "_fragment"
)

// patternResult is the outcome of compiling one path or host pattern.
type patternResult struct {
	staticPrefix  string
	regex         string
	matcher       *matcher
	tokens        []Token // reverse order of appearance
	variables     []string
	firstOptional int
}

// compilePattern compiles pattern, the path or host of r.
func compilePattern(r Route, pattern string, isHost bool) (*patternResult, error) {
	defaultSeparator := pathSeparator
	if isHost {
		defaultSeparator = hostSeparator
	}

	useUTF8 := utf8.ValidString(pattern)
	needsUTF8 := routeUTF8(r)

	// A valid UTF-8 pattern with non-ASCII bytes is only accepted when the
	// route opted in; an opted-in route must have a valid UTF-8 pattern.
	if !needsUTF8 && useUTF8 && hasHighByte(pattern) {
		return nil, newError(pattern, "", fmt.Errorf("%w: non-ASCII pattern requires the utf8 option", ErrPatternEncoding))
	}
	if !useUTF8 && needsUTF8 {
		return nil, newError(pattern, "", fmt.Errorf("%w: utf8 option set on a pattern that is not valid UTF-8", ErrPatternEncoding))
	}

	var (
		tokens    []Token
		variables []string
		pos       int
	)

	for i, p := range scanPlaceholders(pattern) {
		name := p.Name
		precedingText := pattern[pos:p.Start]
		pos = p.End

		precedingChar := lastChar(precedingText, useUTF8)
		separated := isSeparator(precedingChar)

		if name[0] >= '0' && name[0] <= '9' {
			return nil, newError(pattern, name, ErrInvalidVariableName)
		}
		if slices.Contains(variables, name) {
			return nil, newError(pattern, name, ErrDuplicateVariable)
		}
		if len(name) > MaxVariableNameLength {
			return nil, newError(pattern, name, fmt.Errorf("%w: %d bytes, at most %d allowed", ErrVariableNameTooLong, len(name), MaxVariableNameLength))
		}

		if separated && precedingText != precedingChar {
			tokens = append(tokens, TextToken{Literal: precedingText[:len(precedingText)-len(precedingChar)]})
		} else if !separated && precedingText != "" {
			tokens = append(tokens, TextToken{Literal: precedingText})
		}

		requirement, ok := r.Requirement(name)
		if !ok {
			requirement = defaultRequirement(defaultSeparator, pattern[pos:], useUTF8)
		} else {
			if !utf8.ValidString(requirement) {
				useUTF8 = false
			} else if !needsUTF8 && needsUnicode(requirement) {
				return nil, newError(pattern, name, fmt.Errorf("%w: requirement %q requires the utf8 option", ErrPatternEncoding, requirement))
			}
			requirement = nonCapturing(requirement)
		}

		tok := VariableToken{
			Pattern:   requirement,
			Name:      name,
			Primary:   isHost && i == 0,
			Important: p.Important,
		}
		if separated {
			tok.Separator = precedingChar
		}

		tokens = append(tokens, tok)
		variables = append(variables, name)
	}

	if pos < len(pattern) {
		tokens = append(tokens, TextToken{Literal: pattern[pos:]})
	}

	hasDefault := routeDefaults(r)

	firstOptional := noOptional
	if !isHost {
		firstOptional = findFirstOptional(tokens, hasDefault)
	}

	regex := anchor(assemble(tokens, firstOptional), isHost)
	m, err := newMatcher(regex)
	if err != nil {
		return nil, newError(pattern, "", fmt.Errorf("%w: %w", ErrInvalidRegex, err))
	}

	return &patternResult{
		staticPrefix:  staticPrefix(tokens, hasDefault),
		regex:         regex,
		matcher:       m,
		tokens:        reverseTokens(tokens),
		variables:     variables,
		firstOptional: firstOptional,
	}, nil
}

// findFirstOptional returns the index of the first token of the trailing run
// of variables that are not important and have a default value, or
// noOptional when there is none.
func findFirstOptional(tokens []Token, hasDefault func(string) bool) int {
	first := noOptional
	for i := len(tokens) - 1; i >= 0; i-- {
		v, ok := tokens[i].(VariableToken)
		if !ok || v.Important || !hasDefault(v.Name) {
			break
		}
		first = i
	}
	return first
}

// staticPrefix returns the literal text every match of the pattern starts with.
func staticPrefix(tokens []Token, hasDefault func(string) bool) string {
	if len(tokens) == 0 {
		return ""
	}

	switch first := tokens[0].(type) {
	case VariableToken:
		if hasDefault(first.Name) || first.Separator == pathSeparator {
			return ""
		}
		return first.Separator
	case TextToken:
		prefix := first.Literal
		if len(tokens) > 1 {
			if next, ok := tokens[1].(VariableToken); ok && next.Separator != pathSeparator && !hasDefault(next.Name) {
				prefix += next.Separator
			}
		}
		return prefix
	}

	return ""
}

// needsUnicode reports whether requirement only makes sense in UTF-8 mode:
// it holds a non-ASCII byte, or an unescaped \p, \P or \X class.
func needsUnicode(requirement string) bool {
	if hasHighByte(requirement) {
		return true
	}

	for i := 0; i < len(requirement)-1; i++ {
		if requirement[i] != '\\' {
			continue
		}
		i++
		switch requirement[i] {
		case 'X':
			return true
		case 'p', 'P':
			if i+1 < len(requirement) && isUnicodeClassStart(requirement[i+1]) {
				return true
			}
		}
	}

	return false
}

func isUnicodeClassStart(c byte) bool {
	return c == '{' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
