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

// testRoute is a minimal Route used by the package tests.
// It implements DefaultsProvider and UTF8Option.
type testRoute struct {
	host         string
	path         string
	requirements map[string]string
	defaults     map[string]string
	utf8         bool
}

func (r *testRoute) Host() string { return r.host }
func (r *testRoute) Path() string { return r.path }

func (r *testRoute) Requirement(name string) (string, bool) {
	re, ok := r.requirements[name]
	return re, ok
}

func (r *testRoute) HasDefault(name string) bool {
	_, ok := r.defaults[name]
	return ok
}

func (r *testRoute) UTF8() bool { return r.utf8 }

// pathRoute returns a testRoute with only a path.
func pathRoute(path string) *testRoute {
	return &testRoute{path: path}
}
