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
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/routing/codec"
	"rivaas.dev/routing/compiler"
	"rivaas.dev/routing/route"
)

func compileCmd(a *app) *cobra.Command {
	var (
		host         string
		requirements []string
		defaults     []string
		utf8         bool
		output       string
	)

	cmd := &cobra.Command{
		Use:   "compile <pattern>",
		Short: "Compile a route pattern",
		Long: `Compile a route pattern and print its regular expression, tokens and
variables.

Examples:
  routec compile '/user/{id}'
  routec compile '/files/{name}.{ext}' --require 'ext=pdf|txt'
  routec compile '/' --host '{tenant}.example.com' -o yaml
  routec compile '/archive/{year}/{month}' --default month=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := parsePairs("require", requirements)
			if err != nil {
				return err
			}
			defs, err := parsePairs("default", defaults)
			if err != nil {
				return err
			}

			r := route.New(args[0],
				route.WithHost(host),
				route.WithRequirements(reqs),
				route.WithDefaults(defs),
			).SetUTF8(utf8)

			cr, err := r.Compile(compiler.WithLogger(a.logger))
			if err != nil {
				return err
			}

			return encode(cmd.OutOrStdout(), output, newCompiledView(r.Path(), r.Host(), cr))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host pattern")
	cmd.Flags().StringArrayVarP(&requirements, "require", "r", nil, "Variable requirement as name=regex (repeatable)")
	cmd.Flags().StringArrayVarP(&defaults, "default", "d", nil, "Variable default as name=value (repeatable)")
	cmd.Flags().BoolVar(&utf8, "utf8", false, "Allow non-ASCII patterns and requirements")
	cmd.Flags().StringVarP(&output, "output", "o", string(codec.TypeJSON), "Output format: json, yaml or toml")

	return cmd
}

// parsePairs parses name=value flag values.
func parsePairs(flag string, values []string) (map[string]string, error) {
	pairs := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --%s value %q: expected name=value", flag, v)
		}
		pairs[name] = value
	}
	return pairs, nil
}
