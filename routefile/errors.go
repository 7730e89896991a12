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
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates that no codec is registered for the file format.
	ErrUnsupportedFormat = errors.New("unsupported route file format")

	// ErrInvalidDefinition indicates that a route definition failed validation.
	ErrInvalidDefinition = errors.New("invalid route definition")

	// ErrDuplicateName indicates that two routes of a file share a name.
	ErrDuplicateName = errors.New("duplicate route name")

	// ErrInvalidConstraint indicates that a typed constraint is unknown or malformed.
	ErrInvalidConstraint = errors.New("invalid route constraint")
)

// Error describes a route file failure with the source, the route involved
// and the operation being performed.
type Error struct {
	Source    string // File path, or "<input>" for in-memory data
	Route     string // Route name (optional)
	Operation string // "read", "decode", "validate", "merge" or "compile"
	Err       error  // Underlying error
}

// Error returns a formatted error message with context information.
func (e *Error) Error() string {
	if e.Route != "" {
		return fmt.Sprintf("route file %s, route %q, during %s: %v", e.Source, e.Route, e.Operation, e.Err)
	}
	return fmt.Sprintf("route file %s during %s: %v", e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(source, operation string, err error) *Error {
	return &Error{Source: source, Operation: operation, Err: err}
}

func newRouteError(source, routeName, operation string, err error) *Error {
	return &Error{Source: source, Route: routeName, Operation: operation, Err: err}
}
