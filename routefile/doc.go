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

// Package routefile loads route definitions from JSON, YAML or TOML files.
//
// A route file lists named routes and, optionally, values shared by all of
// them:
//
//	defaults:
//	  requirements:
//	    id: '\d+'
//	routes:
//	  - name: user.show
//	    path: /user/{id}
//	    host: '{tenant}.example.com'
//	    requirements:
//	      tenant: '[a-z]+'
//	  - name: blog
//	    path: /blog/{page}
//	    constraints:
//	      page: int
//	    defaults:
//	      page: 1
//
// Shared values fill in what a route leaves unset. Constraints name a typed
// constraint of package route: int, float, uuid, date, datetime,
// "enum:a,b,c" or "regex:<expression>".
//
// Every route needs a unique name and a path starting with '/'.
//
//	set, err := routefile.Load(ctx, "routes.yaml")
//	if err != nil {
//	    return err
//	}
//	results := set.Compile(ctx)
//	if err := routefile.Errors(results); err != nil {
//	    return err
//	}
package routefile
