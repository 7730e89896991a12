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
	"fmt"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/routing/codec"
	"rivaas.dev/routing/compiler"
	"rivaas.dev/routing/route"
)

const (
	tracerName = "rivaas.dev/routing/routefile"

	// inputSource names data decoded from memory in errors and logs.
	inputSource = "<input>"
)

// Option configures loading.
type Option func(*loader)

type loader struct {
	logger          *slog.Logger
	tracerProvider  trace.TracerProvider
	compilerOptions []compiler.Option
	validate        *validator.Validate
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithTracerProvider sets the provider of the spans recorded while loading
// and compiling. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(l *loader) {
		l.tracerProvider = tp
	}
}

// WithCompilerOptions sets the options of the compiler used by Set.Compile.
//
// Example:
//
//	set, err := routefile.Load(ctx, "routes.yaml",
//	    routefile.WithCompilerOptions(compiler.WithObserver(recorder)),
//	)
func WithCompilerOptions(opts ...compiler.Option) Option {
	return func(l *loader) {
		l.compilerOptions = append(l.compilerOptions, opts...)
	}
}

func newLoader(opts []Option) *loader {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.tracerProvider == nil {
		l.tracerProvider = otel.GetTracerProvider()
	}
	l.validate = validator.New(validator.WithRequiredStructEnabled())
	return l
}

func (l *loader) tracer() trace.Tracer {
	return l.tracerProvider.Tracer(tracerName)
}

// Load reads the route file at path and builds its routes. The format is
// chosen from the file extension: .json, .yaml, .yml or .toml.
func Load(ctx context.Context, path string, opts ...Option) (*Set, error) {
	l := newLoader(opts)

	ctx, span := l.tracer().Start(ctx, "routefile.Load", trace.WithAttributes(attribute.String("routefile.source", path)))
	defer span.End()

	set, err := l.load(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("routefile.routes", set.Len()))

	return set, nil
}

func (l *loader) load(ctx context.Context, path string) (*Set, error) {
	typ, decoder, err := codec.DecoderForPath(path)
	if err != nil {
		return nil, newError(path, "read", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err))
	}

	if err := ctx.Err(); err != nil {
		return nil, newError(path, "read", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(path, "read", err)
	}

	return l.decode(ctx, path, data, typ, decoder)
}

// Decode builds routes from route file data encoded with the given codec.
func Decode(ctx context.Context, data []byte, typ codec.Type, opts ...Option) (*Set, error) {
	l := newLoader(opts)

	ctx, span := l.tracer().Start(ctx, "routefile.Decode", trace.WithAttributes(attribute.String("routefile.format", string(typ))))
	defer span.End()

	decoder, err := codec.GetDecoder(typ)
	if err != nil {
		err = newError(inputSource, "decode", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	set, err := l.decode(ctx, inputSource, data, typ, decoder)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("routefile.routes", set.Len()))

	return set, nil
}

func (l *loader) decode(ctx context.Context, source string, data []byte, typ codec.Type, decoder codec.Decoder) (*Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(source, "decode", err)
	}

	var raw map[string]any
	if err := decoder.Decode(data, &raw); err != nil {
		return nil, newError(source, "decode", err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, newError(source, "decode", err)
	}

	if err := l.validate.Struct(doc); err != nil {
		return nil, newError(source, "validate", fmt.Errorf("%w: %w", ErrInvalidDefinition, describeValidation(err)))
	}

	set := &Set{
		source:          source,
		logger:          l.logger,
		tracer:          l.tracer(),
		compilerOptions: l.compilerOptions,
		byName:          make(map[string]*route.Route, len(doc.Routes)),
	}

	for _, def := range doc.Routes {
		if _, exists := set.byName[def.Name]; exists {
			return nil, newRouteError(source, def.Name, "validate", ErrDuplicateName)
		}

		if err := applyShared(&def, doc.Defaults); err != nil {
			return nil, newRouteError(source, def.Name, "merge", err)
		}

		r, err := def.build()
		if err != nil {
			return nil, newRouteError(source, def.Name, "validate", err)
		}

		set.routes = append(set.routes, r)
		set.byName[def.Name] = r
	}

	l.logger.Debug("route file loaded", "source", source, "format", string(typ), "routes", len(set.routes))

	return set, nil
}

// applyShared merges the file-level values into def. A variable bound by
// def, through a requirement or a constraint, keeps def's binding.
func applyShared(def *Definition, shared Shared) error {
	base := shared.base()
	for name := range def.Requirements {
		delete(base.Constraints, name)
	}
	for name := range def.Constraints {
		delete(base.Requirements, name)
	}

	return mergo.Merge(def, base)
}

// describeValidation flattens validator errors into one error per field.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Errorf("%s: failed %q check", fe.Namespace(), fe.Tag()))
	}
	return errors.Join(msgs...)
}
