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

// Package route provides the concrete route definition used by the compiler.
//
// A Route holds a path pattern, an optional host pattern, variable
// requirements, default values and a UTF-8 switch. Requirements are set
// with Where or with one of the typed helpers, which map to well-known
// expressions:
//
//	r := route.New("/orders/{id}/{date}").
//	    WhereInt("id").
//	    WhereDate("date").
//	    SetDefault("date", "2024-01-01")
//
//	cr, err := r.Compile()
//
// The helpers and the expressions they require:
//
//   - WhereInt: \d+
//   - WhereFloat: signed decimal or exponent notation
//   - WhereUUID: RFC 4122 UUID, versions 1 to 5
//   - WhereEnum: one of the given values, quoted
//   - WhereDate: RFC3339 full-date
//   - WhereDateTime: RFC3339 date-time
//   - WhereRegex: any expression
package route
