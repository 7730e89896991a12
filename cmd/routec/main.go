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

// Command routec compiles route patterns and checks route files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rivaas.dev/routing/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the state shared by the commands.
type app struct {
	logFormat string
	logLevel  string
	logger    *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "routec",
		Short: "Compile and check route patterns",
		Long: `routec compiles route patterns such as /user/{id} into the regular
expressions used to match them, and checks route files.

Examples:
  routec compile '/user/{id}' --require 'id=\d+'
  routec compile '/blog/{page}' --default page=1 -o yaml
  routec check routes.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(cmd.ErrOrStderr(), logging.HandlerType(a.logFormat), a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", string(logging.ConsoleHandler), "Log format: console, text or json")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Minimum log level: debug, info, warn or error")

	rootCmd.AddCommand(
		compileCmd(a),
		checkCmd(a),
		versionCmd(),
	)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
