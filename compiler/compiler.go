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
	"log/slog"
	"slices"
	"time"
)

// Route is the route definition read by the compiler.
type Route interface {
	// Host returns the host pattern, or "" when the route has no host constraint.
	Host() string

	// Path returns the path pattern.
	Path() string

	// Requirement returns the explicit regular expression bound to a
	// variable. When ok is false the compiler derives one from the pattern.
	Requirement(name string) (pattern string, ok bool)
}

// DefaultsProvider is implemented by routes that declare default values.
// Trailing path variables with a default become optional.
type DefaultsProvider interface {
	HasDefault(name string) bool
}

// UTF8Option is implemented by routes that can opt in to non-ASCII patterns.
type UTF8Option interface {
	UTF8() bool
}

func routeDefaults(r Route) func(string) bool {
	if dp, ok := r.(DefaultsProvider); ok {
		return dp.HasDefault
	}
	return func(string) bool { return false }
}

func routeUTF8(r Route) bool {
	if u, ok := r.(UTF8Option); ok {
		return u.UTF8()
	}
	return false
}

// Compiler compiles route definitions.
// A Compiler is immutable once built and safe for concurrent use.
type Compiler struct {
	logger   *slog.Logger
	observer Observer
}

// New creates a Compiler with the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

var defaultCompiler = New()

// Compile compiles r with a Compiler that has no logger or observer.
func Compile(r Route) (*CompiledRoute, error) {
	return defaultCompiler.Compile(r)
}

// MustCompile is like Compile but panics if r cannot be compiled.
// It is meant for routes fixed at program start-up.
func MustCompile(r Route) *CompiledRoute {
	cr, err := Compile(r)
	if err != nil {
		panic(err.Error())
	}
	return cr
}

// Compile compiles the host pattern of r, when it has one, then its path
// pattern, and packages both into a CompiledRoute.
// Either the whole route compiles or an error is returned.
func (c *Compiler) Compile(r Route) (*CompiledRoute, error) {
	start := time.Now()

	cr, err := c.compile(r)

	event := Event{
		Path:     r.Path(),
		Host:     r.Host(),
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		c.logger.Warn("route compilation failed",
			"path", event.Path,
			"host", event.Host,
			"code", ErrorCode(err),
			"error", err,
		)
	} else {
		event.Variables = len(cr.variables)
		c.logger.Debug("route compiled",
			"path", event.Path,
			"host", event.Host,
			"regex", cr.regex,
			"variables", cr.variables,
		)
	}
	if c.observer != nil {
		c.observer.OnCompile(event)
	}

	return cr, err
}

func (c *Compiler) compile(r Route) (*CompiledRoute, error) {
	cr := &CompiledRoute{path: r.Path(), host: r.Host()}

	var variables []string
	if cr.host != "" {
		result, err := compilePattern(r, cr.host, true)
		if err != nil {
			return nil, err
		}
		cr.hostRegex = result.regex
		cr.hostMatcher = result.matcher
		cr.hostTokens = result.tokens
		cr.hostVariables = result.variables
		variables = append(variables, result.variables...)
	}

	result, err := compilePattern(r, cr.path, false)
	if err != nil {
		return nil, err
	}
	if slices.Contains(result.variables, ReservedVariableName) {
		return nil, newError(cr.path, ReservedVariableName, ErrReservedVariableName)
	}

	cr.staticPrefix = result.staticPrefix
	cr.regex = result.regex
	cr.matcher = result.matcher
	cr.tokens = result.tokens
	cr.pathVariables = result.variables
	cr.firstOptional = result.firstOptional

	for _, name := range result.variables {
		if !slices.Contains(variables, name) {
			variables = append(variables, name)
		}
	}
	cr.variables = variables

	if err := cr.buildCheckers(); err != nil {
		return nil, err
	}

	return cr, nil
}
