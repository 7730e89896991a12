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

//go:build !integration

package routefile

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"rivaas.dev/routing/codec"
	"rivaas.dev/routing/compiler"
	"rivaas.dev/routing/route"
)

const yamlRoutes = `
defaults:
  requirements:
    id: '\d+'
routes:
  - name: user.show
    path: '/user/{id}'
    host: '{tenant}.example.com'
    requirements:
      tenant: '[a-z]+'
  - name: blog
    path: '/blog/{page}'
    constraints:
      page: int
    defaults:
      page: 1
      draft: true
`

const tomlRoutes = `
[defaults.requirements]
id = '\d+'

[[routes]]
name = "user.show"
path = "/user/{id}"
host = "{tenant}.example.com"
requirements = { tenant = "[a-z]+" }

[[routes]]
name = "blog"
path = "/blog/{page}"
constraints = { page = "int" }
defaults = { page = 1, draft = true }
`

const jsonRoutes = `{
  "defaults": {"requirements": {"id": "\\d+"}},
  "routes": [
    {"name": "user.show", "path": "/user/{id}", "host": "{tenant}.example.com", "requirements": {"tenant": "[a-z]+"}},
    {"name": "blog", "path": "/blog/{page}", "constraints": {"page": "int"}, "defaults": {"page": 1, "draft": true}}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func assertSampleSet(t *testing.T, set *Set) {
	t.Helper()

	require.Equal(t, 2, set.Len())
	routes := set.Routes()
	assert.Equal(t, "user.show", routes[0].Name())
	assert.Equal(t, "blog", routes[1].Name())

	user, ok := set.Get("user.show")
	require.True(t, ok)
	assert.Equal(t, "{tenant}.example.com", user.Host())
	assert.Equal(t, map[string]string{"id": `\d+`, "tenant": "[a-z]+"}, user.Requirements())

	blog, ok := set.Get("blog")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"page": "1", "draft": "true"}, blog.Defaults())
	pc, ok := blog.Constraint("page")
	require.True(t, ok)
	assert.Equal(t, route.ConstraintInt, pc.Kind)

	_, ok = set.Get("missing")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file    string
		content string
	}{
		{"routes.yaml", yamlRoutes},
		{"routes.yml", yamlRoutes},
		{"routes.toml", tomlRoutes},
		{"routes.json", jsonRoutes},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, tt.file, tt.content)
			set, err := Load(t.Context(), path)
			require.NoError(t, err)

			assert.Equal(t, path, set.Source())
			assertSampleSet(t, set)
		})
	}
}

func TestSet_Compile(t *testing.T) {
	t.Parallel()

	set, err := Decode(t.Context(), []byte(yamlRoutes), codec.TypeYAML)
	require.NoError(t, err)

	results := set.Compile(t.Context())
	require.Len(t, results, 2)
	require.NoError(t, Errors(results))

	user := results[0]
	assert.Equal(t, "user.show", user.Name)
	assert.Equal(t, `(?s)^/user/(?P<id>\d+)$`, user.Compiled.Regex())
	assert.Equal(t, `(?i)^(?P<tenant>[a-z]+)\.example\.com$`, user.Compiled.HostRegex())

	blog := results[1]
	assert.Equal(t, `(?s)^/blog(?:/(?P<page>\d+))?$`, blog.Compiled.Regex())
}

func TestSet_CompileFailures(t *testing.T) {
	t.Parallel()

	data := `
routes:
  - name: ok
    path: '/ok/{id}'
  - name: dup
    path: '/a/{id}/b/{id}'
  - name: lookahead
    path: '/x/{id}'
    requirements:
      id: '(?=a)a'
`
	set, err := Decode(t.Context(), []byte(data), codec.TypeYAML)
	require.NoError(t, err)

	results := set.Compile(t.Context())
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Compiled)

	assert.Nil(t, results[1].Compiled)
	require.ErrorIs(t, results[1].Err, compiler.ErrDuplicateVariable)
	var fileErr *Error
	require.ErrorAs(t, results[1].Err, &fileErr)
	assert.Equal(t, "dup", fileErr.Route)
	assert.Equal(t, "compile", fileErr.Operation)
	assert.Equal(t, inputSource, fileErr.Source)

	require.ErrorIs(t, results[2].Err, compiler.ErrInvalidRegex)

	err = Errors(results)
	require.ErrorIs(t, err, compiler.ErrDuplicateVariable)
	require.ErrorIs(t, err, compiler.ErrInvalidRegex)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
		wantOp  string
		route   string
	}{
		{
			name:    "missing name",
			data:    "routes:\n  - path: /x\n",
			wantErr: ErrInvalidDefinition,
			wantOp:  "validate",
		},
		{
			name:    "missing path",
			data:    "routes:\n  - name: x\n",
			wantErr: ErrInvalidDefinition,
			wantOp:  "validate",
		},
		{
			name:    "relative path",
			data:    "routes:\n  - name: x\n    path: 'x/{id}'\n",
			wantErr: ErrInvalidDefinition,
			wantOp:  "validate",
		},
		{
			name:    "duplicate name",
			data:    "routes:\n  - name: x\n    path: /a\n  - name: x\n    path: /b\n",
			wantErr: ErrDuplicateName,
			wantOp:  "validate",
			route:   "x",
		},
		{
			name:    "unknown constraint",
			data:    "routes:\n  - name: x\n    path: '/{id}'\n    constraints: {id: hex}\n",
			wantErr: ErrInvalidConstraint,
			wantOp:  "validate",
			route:   "x",
		},
		{
			name:    "empty enum",
			data:    "routes:\n  - name: x\n    path: '/{id}'\n    constraints: {id: 'enum:'}\n",
			wantErr: ErrInvalidConstraint,
			wantOp:  "validate",
			route:   "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set, err := Decode(t.Context(), []byte(tt.data), codec.TypeYAML)
			require.Error(t, err)
			assert.Nil(t, set)
			require.ErrorIs(t, err, tt.wantErr)

			var fileErr *Error
			require.ErrorAs(t, err, &fileErr)
			assert.Equal(t, tt.wantOp, fileErr.Operation)
			assert.Equal(t, tt.route, fileErr.Route)
		})
	}
}

func TestDecode_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := Decode(t.Context(), []byte("routes:\n  - name: x\n    path: /x\n    method: GET\n"), codec.TypeYAML)
	require.Error(t, err)

	var fileErr *Error
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "decode", fileErr.Operation)
	assert.Contains(t, err.Error(), "method")
}

func TestDecode_MalformedData(t *testing.T) {
	t.Parallel()

	_, err := Decode(t.Context(), []byte("routes: ["), codec.TypeYAML)
	require.Error(t, err)

	_, err = Decode(t.Context(), []byte("{}"), codec.Type("ini"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(t.Context(), filepath.Join(t.TempDir(), "routes.ini"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.ErrorIs(t, err, codec.ErrDecoderNotFound)

	_, err = Load(t.Context(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	var fileErr *Error
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "read", fileErr.Operation)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = Load(ctx, writeFile(t, "routes.yaml", yamlRoutes))
	require.ErrorIs(t, err, context.Canceled)
}

func TestApplyShared(t *testing.T) {
	t.Parallel()

	shared := Shared{
		Host:         "{tenant}.example.com",
		Requirements: map[string]string{"id": `\d+`, "slug": "[a-z-]+"},
		Constraints:  map[string]string{"lang": "enum:en,fr"},
		Defaults:     map[string]string{"lang": "en"},
		UTF8:         true,
	}

	def := Definition{
		Name:         "post",
		Path:         "/{lang}/{id}/{slug}",
		Host:         "blog.example.com",
		Requirements: map[string]string{"lang": "[a-z]{2}"},
		Constraints:  map[string]string{"id": "uuid"},
	}
	require.NoError(t, applyShared(&def, shared))

	assert.Equal(t, "blog.example.com", def.Host)
	assert.Equal(t, map[string]string{"lang": "[a-z]{2}", "slug": "[a-z-]+"}, def.Requirements)
	assert.Equal(t, map[string]string{"id": "uuid"}, def.Constraints)
	assert.Equal(t, map[string]string{"lang": "en"}, def.Defaults)
	assert.True(t, def.UTF8)

	// The shared maps are not modified.
	assert.Len(t, shared.Requirements, 2)
	assert.Len(t, shared.Constraints, 1)
}

func TestParseConstraint(t *testing.T) {
	t.Parallel()

	pc, err := parseConstraint("enum: active , pending,")
	require.NoError(t, err)
	assert.Equal(t, route.ParamConstraint{Kind: route.ConstraintEnum, Enum: []string{"active", "pending"}}, pc)

	pc, err = parseConstraint("regex:[a-z]{2}")
	require.NoError(t, err)
	assert.Equal(t, "[a-z]{2}", pc.Pattern)

	pc, err = parseConstraint("DateTime")
	require.NoError(t, err)
	assert.Equal(t, route.ConstraintDateTime, pc.Kind)

	_, err = parseConstraint("regex")
	require.ErrorIs(t, err, ErrInvalidConstraint)
	_, err = parseConstraint("none")
	require.ErrorIs(t, err, ErrInvalidConstraint)
}

func TestTracing(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	path := writeFile(t, "routes.yaml", yamlRoutes+"  - name: bad\n    path: '/{x}/{x}'\n")
	set, err := Load(t.Context(), path, WithTracerProvider(tp))
	require.NoError(t, err)
	_ = set.Compile(t.Context())

	_, err = Load(t.Context(), filepath.Join(t.TempDir(), "missing.toml"), WithTracerProvider(tp))
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	load := spans[0]
	assert.Equal(t, "routefile.Load", load.Name())
	assert.Contains(t, load.Attributes(), attribute.Int("routefile.routes", 3))
	assert.Equal(t, codes.Unset, load.Status().Code)

	compile := spans[1]
	assert.Equal(t, "routefile.Compile", compile.Name())
	assert.Contains(t, compile.Attributes(), attribute.Int("routefile.failed", 1))
	assert.Equal(t, codes.Error, compile.Status().Code)

	failed := spans[2]
	assert.Equal(t, "routefile.Load", failed.Name())
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.NotEmpty(t, failed.Events())
}
