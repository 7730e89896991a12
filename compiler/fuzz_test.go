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
	"regexp"
	"strings"
	"testing"
)

func FuzzCompile(f *testing.F) {
	for _, seed := range []string{
		"/",
		"/user/{id}",
		"/files/{name}.{ext}",
		"/{a}{b}-{c}",
		"/{{x}}",
		"/{!slug}/{page}",
		"/a|b/{1x}",
		"/{id}/{id}",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, pattern string) {
		cr, err := Compile(pathRoute(pattern))
		if err != nil {
			return
		}

		re, err := regexp.Compile(cr.Regex())
		if err != nil {
			t.Fatalf("compiled expression %q is not valid: %v", cr.Regex(), err)
		}
		names := re.SubexpNames()[1:]
		vars := cr.PathVariables()
		if len(names) != len(vars) {
			t.Fatalf("%q: %d captures for %d variables", pattern, len(names), len(vars))
		}
		for i := range names {
			if names[i] != vars[i] {
				t.Fatalf("%q: capture %d is %q, want %q", pattern, i, names[i], vars[i])
			}
		}
		if !strings.HasPrefix(pattern, cr.StaticPrefix()) {
			t.Fatalf("%q: static prefix %q is not a prefix of the pattern", pattern, cr.StaticPrefix())
		}
	})
}

func FuzzNonCapturing(f *testing.F) {
	for _, seed := range []string{`(a|b)`, `[(](x)`, `\((y)`, `(?:z)`, `((a)(b))`} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, in string) {
		out := nonCapturing(in)
		if len(out) < len(in) {
			t.Fatalf("rewrite of %q shrank to %q", in, out)
		}
		re, err := regexp.Compile(in)
		if err != nil {
			return
		}
		rewritten, err := regexp.Compile(out)
		if err != nil {
			return
		}
		named := 0
		for _, name := range re.SubexpNames()[1:] {
			if name != "" {
				named++
			}
		}
		if rewritten.NumSubexp() != named {
			t.Fatalf("rewrite of %q kept %d captures, want %d", in, rewritten.NumSubexp(), named)
		}
	})
}
