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

package route

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/coregx/coregex"

	"rivaas.dev/routing/compiler"
)

// Route is a route definition: a path pattern, an optional host pattern,
// variable requirements and default values.
//
// Route implements compiler.Route, compiler.DefaultsProvider and
// compiler.UTF8Option. Its setters return the route for chaining and are
// safe to call concurrently with the readers.
type Route struct {
	name         string
	path         string
	host         string
	requirements map[string]string          // variable -> regex
	constraints  map[string]ParamConstraint // typed constraints, also stored in requirements
	defaults     map[string]string
	utf8         bool

	mu sync.RWMutex
}

// Option configures a Route created with New.
type Option func(*Route)

// WithHost sets the host pattern.
func WithHost(host string) Option {
	return func(r *Route) {
		r.host = host
	}
}

// WithName sets the route name.
func WithName(name string) Option {
	return func(r *Route) {
		r.name = name
	}
}

// WithRequirements sets variable requirements. Unlike Where it does not
// validate the expressions; invalid ones are reported by Compile.
func WithRequirements(requirements map[string]string) Option {
	return func(r *Route) {
		for name, pattern := range requirements {
			r.requirements[name] = sanitizeRequirement(pattern)
		}
	}
}

// WithDefaults sets variable default values.
func WithDefaults(defaults map[string]string) Option {
	return func(r *Route) {
		maps.Copy(r.defaults, defaults)
	}
}

// WithUTF8 enables non-ASCII patterns and requirements.
func WithUTF8() Option {
	return func(r *Route) {
		r.utf8 = true
	}
}

// New creates a route for the path pattern. A leading '/' is added to the
// path when it is missing.
//
// Example:
//
//	r := route.New("/users/{id}", route.WithHost("{tenant}.example.com")).WhereInt("id")
func New(path string, opts ...Option) *Route {
	r := &Route{
		path:         normalizePath(path),
		requirements: make(map[string]string),
		constraints:  make(map[string]ParamConstraint),
		defaults:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the route name.
func (r *Route) Name() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.name
}

// Path returns the path pattern.
func (r *Route) Path() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.path
}

// Host returns the host pattern, or "" when the route matches any host.
func (r *Route) Host() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.host
}

// Requirement returns the regular expression bound to a variable.
func (r *Route) Requirement(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pattern, ok := r.requirements[name]
	return pattern, ok
}

// Requirements returns a copy of every variable requirement.
func (r *Route) Requirements() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.requirements)
}

// Constraint returns the typed constraint of a variable, if one was set
// through a Where* method.
func (r *Route) Constraint(name string) (ParamConstraint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pc, ok := r.constraints[name]
	return pc, ok
}

// HasDefault reports whether a variable has a default value.
func (r *Route) HasDefault(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defaults[name]
	return ok
}

// Default returns the default value of a variable.
func (r *Route) Default(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.defaults[name]
	return value, ok
}

// Defaults returns a copy of every default value.
func (r *Route) Defaults() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.defaults)
}

// UTF8 reports whether the route accepts non-ASCII patterns.
func (r *Route) UTF8() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.utf8
}

// SetName sets the route name.
func (r *Route) SetName(name string) *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
	return r
}

// SetPath replaces the path pattern. A leading '/' is added when missing.
func (r *Route) SetPath(path string) *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = normalizePath(path)
	return r
}

// SetHost sets the host pattern. An empty host removes the constraint.
func (r *Route) SetHost(host string) *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.host = host
	return r
}

// SetDefault sets the default value of a variable. A trailing path variable
// with a default becomes optional.
func (r *Route) SetDefault(name, value string) *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[name] = value
	return r
}

// SetUTF8 enables or disables non-ASCII patterns.
func (r *Route) SetUTF8(enabled bool) *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.utf8 = enabled
	return r
}

// Where binds a regular expression to a variable.
// Leading '^' and trailing '$' anchors are removed.
//
// IMPORTANT: This method panics if the pattern is not a valid regular
// expression, so that broken routes fail at start-up.
//
// Example:
//
//	route.New("/users/{id}").Where("id", `\d+`)
//	route.New("/files/{filename}").Where("filename", `[a-zA-Z0-9.-]+`)
func (r *Route) Where(name, pattern string) *Route {
	pattern = sanitizeRequirement(pattern)
	if _, err := coregex.Compile(pattern); err != nil {
		panic(fmt.Sprintf("route %q: invalid requirement for %q: %v", r.Path(), name, err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.requirements[name] = pattern
	delete(r.constraints, name)
	return r
}

// WhereInt requires the variable to be an integer.
//
// Example:
//
//	route.New("/users/{id}").WhereInt("id")
func (r *Route) WhereInt(name string) *Route {
	return r.setConstraint(name, ParamConstraint{Kind: ConstraintInt})
}

// WhereFloat requires the variable to be a floating-point number.
func (r *Route) WhereFloat(name string) *Route {
	return r.setConstraint(name, ParamConstraint{Kind: ConstraintFloat})
}

// WhereUUID requires the variable to be a UUID.
//
// Example:
//
//	route.New("/entities/{uuid}").WhereUUID("uuid")
func (r *Route) WhereUUID(name string) *Route {
	return r.setConstraint(name, ParamConstraint{Kind: ConstraintUUID})
}

// WhereRegex is like Where but records the constraint as typed.
// It does not validate the pattern; invalid ones are reported by Compile.
func (r *Route) WhereRegex(name, pattern string) *Route {
	return r.setConstraint(name, ParamConstraint{Kind: ConstraintRegex, Pattern: sanitizeRequirement(pattern)})
}

// WhereEnum requires the variable to be one of values.
//
// Example:
//
//	route.New("/status/{state}").WhereEnum("state", "active", "pending", "deleted")
func (r *Route) WhereEnum(name string, values ...string) *Route {
	return r.setConstraint(name, ParamConstraint{Kind: ConstraintEnum, Enum: slices.Clone(values)})
}

// WhereDate requires the variable to be an RFC3339 full-date.
func (r *Route) WhereDate(name string) *Route {
	return r.setConstraint(name, ParamConstraint{Kind: ConstraintDate})
}

// WhereDateTime requires the variable to be an RFC3339 date-time.
func (r *Route) WhereDateTime(name string) *Route {
	return r.setConstraint(name, ParamConstraint{Kind: ConstraintDateTime})
}

func (r *Route) setConstraint(name string, pc ParamConstraint) *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constraints[name] = pc
	r.requirements[name] = pc.Requirement()
	return r
}

// Compile compiles the route with a compiler built from opts.
func (r *Route) Compile(opts ...compiler.Option) (*compiler.CompiledRoute, error) {
	return compiler.New(opts...).Compile(r)
}

// String returns the host and path of the route.
func (r *Route) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.host == "" {
		return r.path
	}
	return r.host + r.path
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	return "/" + strings.TrimLeft(path, "/")
}

// sanitizeRequirement strips a leading '^' and an unescaped trailing '$'.
func sanitizeRequirement(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "^")
	if strings.HasSuffix(pattern, "$") && !strings.HasSuffix(pattern, `\$`) {
		pattern = pattern[:len(pattern)-1]
	}
	return pattern
}
