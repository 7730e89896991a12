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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes routec with args and returns its standard output and error output.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestCompile_JSON(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "compile", "/files/{name}.{ext}", "--require", "ext=pdf|txt")
	require.NoError(t, err)

	var view compiledView
	require.NoError(t, json.Unmarshal([]byte(out), &view))

	assert.Equal(t, "/files/{name}.{ext}", view.Path)
	assert.Equal(t, `(?s)^/files/(?P<name>[^/\.]+)\.(?P<ext>pdf|txt)$`, view.Regex)
	assert.Equal(t, "/files", view.StaticPrefix)
	assert.Equal(t, []string{"name", "ext"}, view.PathVariables)
	assert.Equal(t, []tokenView{
		{Type: "text", Text: "/files"},
		{Type: "variable", Separator: "/", Pattern: `[^/\.]+`, Name: "name"},
		{Type: "variable", Separator: ".", Pattern: "pdf|txt", Name: "ext"},
	}, view.Tokens)
	assert.Empty(t, view.HostTokens)
}

func TestCompile_YAMLWithHostAndDefault(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "compile", "/blog/{page}", "--host", "{lang}.example.com", "-d", "page=1", "-o", "yaml")
	require.NoError(t, err)

	var view compiledView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))

	assert.Equal(t, `(?s)^/blog(?:/(?P<page>[^/]+))?$`, view.Regex)
	assert.Equal(t, `(?i)^(?P<lang>[^\.]+)\.example\.com$`, view.HostRegex)
	assert.Equal(t, []string{"lang", "page"}, view.Variables)
	assert.Equal(t, []string{"lang"}, view.HostVariables)
}

func TestCompile_TOML(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "compile", "/user/{id}", "-o", "toml")
	require.NoError(t, err)

	var view compiledView
	_, err = toml.Decode(out, &view)
	require.NoError(t, err)
	assert.Equal(t, `(?s)^/user/(?P<id>[^/]+)$`, view.Regex)
	assert.Equal(t, []string{"id"}, view.Variables)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "compile", "/{id}/{id}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variable referenced more than once")

	_, _, err = run(t, "compile", "/café")
	require.Error(t, err)

	_, _, err = run(t, "compile", "/café", "--utf8")
	require.NoError(t, err)

	_, _, err = run(t, "compile", "/{id}", "--require", "id")
	require.ErrorContains(t, err, "expected name=value")

	_, _, err = run(t, "compile", "/{id}", "-o", "xml")
	require.ErrorContains(t, err, "unsupported output format")

	_, _, err = run(t, "compile")
	require.Error(t, err)

	_, _, err = run(t, "compile", "/", "--log-format", "xml")
	require.Error(t, err)
}

func TestCompile_Logging(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, "compile", "/user/{id}", "--log-format", "json", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"route compiled"`)
}

const routesYAML = `
defaults:
  requirements:
    id: '\d+'
routes:
  - name: user.show
    path: '/user/{id}'
  - name: blog
    path: '/blog/{page}'
    constraints:
      page: int
    defaults:
      page: 1
`

func writeRoutes(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCheck_Text(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "check", writeRoutes(t, "routes.yaml", routesYAML))
	require.NoError(t, err)

	assert.Contains(t, out, "user.show")
	assert.Contains(t, out, `(?s)^/user/(?P<id>\d+)$`)
	assert.Contains(t, out, "2 routes, 0 failed")
}

func TestCheck_Failure(t *testing.T) {
	t.Parallel()

	path := writeRoutes(t, "routes.yaml", routesYAML+"  - name: bad\n    path: '/{x}/{x}'\n")
	metrics := filepath.Join(t.TempDir(), "routes.prom")

	out, _, err := run(t, "check", path, "-o", "json", "--metrics-file", metrics)
	require.ErrorIs(t, err, errCheckFailed)

	var report reportView
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Routes, 3)
	assert.Equal(t, "bad", report.Routes[2].Name)
	assert.Equal(t, "duplicate_variable", report.Routes[2].Code)
	assert.Empty(t, report.Routes[2].Regex)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `code="duplicate_variable"`)

	out, _, err = run(t, "check", path)
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "variable referenced more than once")
	assert.Contains(t, out, "3 routes, 1 failed")
}

func TestCheck_Trace(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, "check", writeRoutes(t, "routes.yaml", routesYAML), "--trace")
	require.NoError(t, err)

	assert.Contains(t, stderr, `"Name": "routefile.Load"`)
	assert.Contains(t, stderr, `"Name": "routefile.Compile"`)
	assert.Contains(t, stderr, "routec")
}

func TestCheck_InvalidFile(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "check", writeRoutes(t, "routes.yaml", "routes:\n  - path: /x\n"))
	require.Error(t, err)

	_, _, err = run(t, "check", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")
}
