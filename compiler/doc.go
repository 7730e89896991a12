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

// Package compiler compiles route patterns into regular expressions.
//
// A pattern is literal text interleaved with placeholders:
//
//	/user/{id}/posts/{!slug}
//
// A placeholder is "{" followed by an optional "!" (important marker), a
// name made of ASCII letters, digits, underscores or non-ASCII bytes, and
// "}". Compiling a route produces a [CompiledRoute] holding:
//
//   - an anchored expression with one named group per placeholder
//   - the token sequence, in reverse order, used to generate URLs
//   - the static prefix of the path
//   - the variable names of the path and of the host
//
// # Compilation
//
// The host pattern, when present, is compiled first with "." as default
// separator and a case-insensitive expression. The path pattern is then
// compiled with "/" as default separator.
//
// For each placeholder the compiler looks at the character just before it.
// When that character is one of [Separators], it becomes the variable's
// separator and is matched outside of the named group. A placeholder without
// an explicit requirement matches one or more characters other than the
// default separator and the next static separator of the pattern:
//
//	/files/{name}.{ext}   =>   (?s)^/files/(?P<name>[^/\.]+)\.(?P<ext>[^/]+)$
//
// Capturing groups inside explicit requirements are rewritten to
// non-capturing groups, so the expression has exactly one capture per
// variable.
//
// # Defaults and optional segments
//
// Routes implementing [DefaultsProvider] make their trailing path variables
// optional when those variables have a default and are not marked important:
//
//	/blog/{page}   with a default for page   =>   (?s)^/blog(?:/(?P<page>[^/]+))?$
//
// # Errors
//
// Compilation fails with an [*Error] wrapping one of [ErrPatternEncoding],
// [ErrReservedVariableName], [ErrInvalidVariableName], [ErrDuplicateVariable],
// [ErrVariableNameTooLong] or [ErrInvalidRegex]. No partial result is
// returned.
//
// # Thread Safety
//
// Compilation is a pure function of the route. A [Compiler] and every
// [CompiledRoute] are safe for concurrent use.
package compiler
