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
	"regexp"
	"strings"
)

// ConstraintKind represents the type of constraint applied to a route variable.
type ConstraintKind uint8

const (
	ConstraintNone ConstraintKind = iota
	ConstraintInt
	ConstraintFloat
	ConstraintUUID
	ConstraintRegex
	ConstraintEnum
	ConstraintDate     // RFC3339 full-date
	ConstraintDateTime // RFC3339 date-time
)

var constraintKindNames = [...]string{
	ConstraintNone:     "none",
	ConstraintInt:      "int",
	ConstraintFloat:    "float",
	ConstraintUUID:     "uuid",
	ConstraintRegex:    "regex",
	ConstraintEnum:     "enum",
	ConstraintDate:     "date",
	ConstraintDateTime: "datetime",
}

// String returns the lower-case name of the kind.
func (k ConstraintKind) String() string {
	if int(k) < len(constraintKindNames) {
		return constraintKindNames[k]
	}
	return "unknown"
}

// ParamConstraint is a typed constraint on a route variable.
type ParamConstraint struct {
	Kind    ConstraintKind
	Pattern string   // for ConstraintRegex
	Enum    []string // for ConstraintEnum
}

// Requirement returns the regular expression a variable must match to
// satisfy the constraint, or "" for ConstraintNone.
func (pc ParamConstraint) Requirement() string {
	switch pc.Kind {
	case ConstraintInt:
		return `\d+`
	case ConstraintFloat:
		return `-?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`
	case ConstraintUUID:
		return `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}`
	case ConstraintRegex:
		return pc.Pattern
	case ConstraintEnum:
		// (value1|value2|value3); the compiler turns the group non-capturing.
		escaped := make([]string, 0, len(pc.Enum))
		for _, v := range pc.Enum {
			escaped = append(escaped, regexp.QuoteMeta(v))
		}
		return "(" + strings.Join(escaped, "|") + ")"
	case ConstraintDate:
		return `\d{4}-\d{2}-\d{2}`
	case ConstraintDateTime:
		return `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})`
	default:
		return ""
	}
}

// ParseConstraintKind returns the kind named s, as produced by
// ConstraintKind.String.
func ParseConstraintKind(s string) (ConstraintKind, bool) {
	for k, name := range constraintKindNames {
		if name == strings.ToLower(s) {
			return ConstraintKind(k), true
		}
	}
	return ConstraintNone, false
}
