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
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"rivaas.dev/routing/route"
)

// Definition is one route entry of a route file.
type Definition struct {
	Name         string            `mapstructure:"name" validate:"required"`
	Path         string            `mapstructure:"path" validate:"required,startswith=/"`
	Host         string            `mapstructure:"host"`
	Requirements map[string]string `mapstructure:"requirements"`
	Constraints  map[string]string `mapstructure:"constraints"`
	Defaults     map[string]string `mapstructure:"defaults"`
	UTF8         bool              `mapstructure:"utf8"`
}

// Shared holds the file-level values merged into every definition.
// Values set on a definition take precedence.
type Shared struct {
	Host         string            `mapstructure:"host"`
	Requirements map[string]string `mapstructure:"requirements"`
	Constraints  map[string]string `mapstructure:"constraints"`
	Defaults     map[string]string `mapstructure:"defaults"`
	UTF8         bool              `mapstructure:"utf8"`
}

// document is the decoded form of a route file.
type document struct {
	Defaults Shared       `mapstructure:"defaults"`
	Routes   []Definition `mapstructure:"routes" validate:"dive"`
}

// base returns a definition holding copies of the shared values.
func (s Shared) base() Definition {
	return Definition{
		Host:         s.Host,
		Requirements: maps.Clone(s.Requirements),
		Constraints:  maps.Clone(s.Constraints),
		Defaults:     maps.Clone(s.Defaults),
		UTF8:         s.UTF8,
	}
}

// decodeDocument binds raw decoded data to a document.
func decodeDocument(raw map[string]any) (*document, error) {
	doc := &document{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "mapstructure",
		ErrorUnused: true,
		DecodeHook:  scalarToStringHook,
		Result:      doc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode route file: %w", err)
	}

	return doc, nil
}

// scalarToStringHook turns numbers and booleans into their textual form
// when the target is a string, so that "defaults: {page: 1}" yields "1".
func scalarToStringHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() == reflect.String {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return cast.ToStringE(data)
	}
	return data, nil
}

// parseConstraint parses a typed constraint: a kind name such as "int" or
// "uuid", or "enum:" followed by comma-separated values.
func parseConstraint(value string) (route.ParamConstraint, error) {
	kindName, args, _ := strings.Cut(value, ":")

	kind, ok := route.ParseConstraintKind(strings.TrimSpace(kindName))
	if !ok || kind == route.ConstraintNone {
		return route.ParamConstraint{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidConstraint, kindName)
	}

	pc := route.ParamConstraint{Kind: kind}
	switch kind {
	case route.ConstraintEnum:
		for _, v := range strings.Split(args, ",") {
			if v = strings.TrimSpace(v); v != "" {
				pc.Enum = append(pc.Enum, v)
			}
		}
		if len(pc.Enum) == 0 {
			return route.ParamConstraint{}, fmt.Errorf("%w: enum %q has no values", ErrInvalidConstraint, value)
		}
	case route.ConstraintRegex:
		if args == "" {
			return route.ParamConstraint{}, fmt.Errorf("%w: regex %q has no pattern", ErrInvalidConstraint, value)
		}
		pc.Pattern = args
	}

	return pc, nil
}

// build creates the route described by d.
func (d Definition) build() (*route.Route, error) {
	r := route.New(d.Path,
		route.WithName(d.Name),
		route.WithHost(d.Host),
		route.WithRequirements(d.Requirements),
		route.WithDefaults(d.Defaults),
	)
	if d.UTF8 {
		r.SetUTF8(true)
	}

	for name, value := range d.Constraints {
		pc, err := parseConstraint(value)
		if err != nil {
			return nil, err
		}
		switch pc.Kind {
		case route.ConstraintInt:
			r.WhereInt(name)
		case route.ConstraintFloat:
			r.WhereFloat(name)
		case route.ConstraintUUID:
			r.WhereUUID(name)
		case route.ConstraintEnum:
			r.WhereEnum(name, pc.Enum...)
		case route.ConstraintDate:
			r.WhereDate(name)
		case route.ConstraintDateTime:
			r.WhereDateTime(name)
		case route.ConstraintRegex:
			r.WhereRegex(name, pc.Pattern)
		}
	}

	return r, nil
}
