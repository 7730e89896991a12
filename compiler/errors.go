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
	"errors"
	"fmt"
)

var (
	// ErrPatternEncoding indicates that the UTF-8 option of a route does not
	// agree with the bytes of its pattern or of one of its requirements.
	ErrPatternEncoding = errors.New("pattern encoding mismatch")

	// ErrReservedVariableName indicates that a path pattern declares the reserved "_fragment" variable.
	ErrReservedVariableName = errors.New("reserved variable name")

	// ErrInvalidVariableName indicates that a variable name starts with a digit.
	ErrInvalidVariableName = errors.New("variable name must not start with a digit")

	// ErrDuplicateVariable indicates that a pattern references the same variable more than once.
	ErrDuplicateVariable = errors.New("variable referenced more than once")

	// ErrVariableNameTooLong indicates that a variable name exceeds MaxVariableNameLength bytes.
	ErrVariableNameTooLong = errors.New("variable name too long")

	// ErrInvalidRegex indicates that the assembled expression is not a valid regular expression.
	ErrInvalidRegex = errors.New("invalid route expression")

	// ErrMissingParameter indicates that URL generation lacks a value for a variable.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrParameterMismatch indicates that a value given to URL generation does not match its variable's requirement.
	ErrParameterMismatch = errors.New("parameter does not match requirement")
)

// errorCodes maps each sentinel to a stable machine-readable code.
var errorCodes = map[error]string{
	ErrPatternEncoding:      "pattern_encoding",
	ErrReservedVariableName: "reserved_variable_name",
	ErrInvalidVariableName:  "invalid_variable_name",
	ErrDuplicateVariable:    "duplicate_variable",
	ErrVariableNameTooLong:  "variable_name_too_long",
	ErrInvalidRegex:         "invalid_regex",
	ErrMissingParameter:     "missing_parameter",
	ErrParameterMismatch:    "parameter_mismatch",
}

// Error describes a compilation or generation failure with the offending
// pattern and, when relevant, variable name.
// It wraps one of the package's sentinel errors.
type Error struct {
	Pattern  string // Pattern being processed
	Variable string // Variable involved (optional)
	Err      error  // Underlying sentinel, possibly wrapping a cause
}

// Error returns a message naming the pattern and variable.
func (e *Error) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("route pattern %q, variable %q: %v", e.Pattern, e.Variable, e.Err)
	}
	return fmt.Sprintf("route pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns a machine-readable code for the failure, or "unknown".
func (e *Error) Code() string {
	for sentinel, code := range errorCodes {
		if errors.Is(e.Err, sentinel) {
			return code
		}
	}
	return "unknown"
}

// Details returns the structured context of the failure.
func (e *Error) Details() any {
	details := map[string]string{"pattern": e.Pattern}
	if e.Variable != "" {
		details["variable"] = e.Variable
	}
	return details
}

func newError(pattern, variable string, err error) *Error {
	return &Error{Pattern: pattern, Variable: variable, Err: err}
}

// ErrorCode returns the machine-readable code of err when it is, or wraps,
// an [*Error]. Otherwise it returns "".
func ErrorCode(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
