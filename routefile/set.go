// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
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

package routefile

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/routing/compiler"
	"rivaas.dev/routing/route"
)

// Set is the ordered collection of routes read from one route file.
type Set struct {
	source          string
	routes          []*route.Route
	byName          map[string]*route.Route
	logger          *slog.Logger
	tracer          trace.Tracer
	compilerOptions []compiler.Option
}

// Result is the outcome of compiling one route of a Set.
type Result struct {
	Name     string
	Route    *route.Route
	Compiled *compiler.CompiledRoute // nil when Err is set
	Err      error
}

// Source returns the file path the set was loaded from.
func (s *Set) Source() string {
	return s.source
}

// Len returns the number of routes.
func (s *Set) Len() int {
	return len(s.routes)
}

// Routes returns the routes in file order.
func (s *Set) Routes() []*route.Route {
	return slices.Clone(s.routes)
}

// Get returns the route with the given name.
func (s *Set) Get(name string) (*route.Route, bool) {
	r, ok := s.byName[name]
	return r, ok
}

// Compile compiles every route of the set, in file order. A failing route
// does not stop the others; see Errors.
func (s *Set) Compile(ctx context.Context) []Result {
	_, span := s.tracer.Start(ctx, "routefile.Compile", trace.WithAttributes(
		attribute.String("routefile.source", s.source),
		attribute.Int("routefile.routes", len(s.routes)),
	))
	defer span.End()

	c := compiler.New(append([]compiler.Option{compiler.WithLogger(s.logger)}, s.compilerOptions...)...)

	results := make([]Result, 0, len(s.routes))
	failed := 0
	for _, r := range s.routes {
		cr, err := c.Compile(r)
		if err != nil {
			failed++
			err = newRouteError(s.source, r.Name(), "compile", err)
		}
		results = append(results, Result{Name: r.Name(), Route: r, Compiled: cr, Err: err})
	}

	span.SetAttributes(attribute.Int("routefile.failed", failed))
	if failed > 0 {
		span.SetStatus(codes.Error, "route compilation failed")
		s.logger.Warn("route file has invalid routes", "source", s.source, "failed", failed, "total", len(s.routes))
	}

	return results
}

// Errors joins the errors of results, or returns nil when every route compiled.
func Errors(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
