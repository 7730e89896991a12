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
	"fmt"
	"io"

	"rivaas.dev/routing/codec"
	"rivaas.dev/routing/compiler"
)

// tokenView is the printable form of a compiler token.
type tokenView struct {
	Type      string `json:"type" yaml:"type" toml:"type"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Separator string `json:"separator,omitempty" yaml:"separator,omitempty" toml:"separator,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Important bool   `json:"important,omitempty" yaml:"important,omitempty" toml:"important,omitempty"`
}

// compiledView is the printable form of a compiled route. Tokens are listed
// in pattern order.
type compiledView struct {
	Path          string      `json:"path" yaml:"path" toml:"path"`
	Host          string      `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`
	StaticPrefix  string      `json:"static_prefix" yaml:"static_prefix" toml:"static_prefix"`
	Regex         string      `json:"regex" yaml:"regex" toml:"regex"`
	HostRegex     string      `json:"host_regex,omitempty" yaml:"host_regex,omitempty" toml:"host_regex,omitempty"`
	Variables     []string    `json:"variables" yaml:"variables" toml:"variables"`
	PathVariables []string    `json:"path_variables" yaml:"path_variables" toml:"path_variables"`
	HostVariables []string    `json:"host_variables,omitempty" yaml:"host_variables,omitempty" toml:"host_variables,omitempty"`
	Tokens        []tokenView `json:"tokens" yaml:"tokens" toml:"tokens"`
	HostTokens    []tokenView `json:"host_tokens,omitempty" yaml:"host_tokens,omitempty" toml:"host_tokens,omitempty"`
}

func newCompiledView(path, host string, cr *compiler.CompiledRoute) compiledView {
	return compiledView{
		Path:          path,
		Host:          host,
		StaticPrefix:  cr.StaticPrefix(),
		Regex:         cr.Regex(),
		HostRegex:     cr.HostRegex(),
		Variables:     nonNil(cr.Variables()),
		PathVariables: nonNil(cr.PathVariables()),
		HostVariables: cr.HostVariables(),
		Tokens:        tokenViews(cr.Tokens()),
		HostTokens:    tokenViews(cr.HostTokens()),
	}
}

// tokenViews converts tokens, stored in reverse order, to pattern order.
func tokenViews(tokens []compiler.Token) []tokenView {
	if len(tokens) == 0 {
		return nil
	}

	views := make([]tokenView, 0, len(tokens))
	for i := len(tokens) - 1; i >= 0; i-- {
		switch t := tokens[i].(type) {
		case compiler.TextToken:
			views = append(views, tokenView{Type: "text", Text: t.Literal})
		case compiler.VariableToken:
			views = append(views, tokenView{
				Type:      "variable",
				Separator: t.Separator,
				Pattern:   t.Pattern,
				Name:      t.Name,
				Important: t.Important,
			})
		}
	}
	return views
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// encode writes v to w with the codec named by format.
func encode(w io.Writer, format string, v any) error {
	encoder, err := codec.GetEncoder(codec.Type(format))
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", format, err)
	}

	data, err := encoder.Encode(v)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	_, err = w.Write(data)
	return err
}
