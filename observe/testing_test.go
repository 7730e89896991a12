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

package observe

// testRoute is a minimal compiler.Route used by the package tests.
type testRoute struct {
	host string
	path string
}

func (r testRoute) Host() string { return r.host }
func (r testRoute) Path() string { return r.path }
func (r testRoute) Requirement(string) (string, bool) { return "", false }
