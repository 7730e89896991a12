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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rivaas.dev/routing/compiler"
	"rivaas.dev/routing/observe"
	"rivaas.dev/routing/routefile"
)

// errCheckFailed reports that at least one route of a file did not compile.
var errCheckFailed = errors.New("route file has invalid routes")

// resultView is the printable outcome of one route of a checked file.
type resultView struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	Path      string `json:"path" yaml:"path" toml:"path"`
	Host      string `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`
	Regex     string `json:"regex,omitempty" yaml:"regex,omitempty" toml:"regex,omitempty"`
	HostRegex string `json:"host_regex,omitempty" yaml:"host_regex,omitempty" toml:"host_regex,omitempty"`
	Code      string `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// reportView is the printable outcome of a checked file.
type reportView struct {
	Source string       `json:"source" yaml:"source" toml:"source"`
	Total  int          `json:"total" yaml:"total" toml:"total"`
	Failed int          `json:"failed" yaml:"failed" toml:"failed"`
	Routes []resultView `json:"routes" yaml:"routes" toml:"routes"`
}

func checkCmd(a *app) *cobra.Command {
	var (
		output      string
		metricsFile string
		traceSpans  bool
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Compile every route of a route file",
		Long: `Load a JSON, YAML or TOML route file, compile every route and print a
report. The command fails when a route does not compile.

Examples:
  routec check routes.yaml
  routec check routes.toml -o json
  routec check routes.json --trace
  routec check routes.yaml --metrics-file /var/lib/node_exporter/routes.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rec, err := observe.New()
			if err != nil {
				return err
			}
			defer func() { _ = rec.Shutdown(ctx) }()

			opts := []routefile.Option{
				routefile.WithLogger(a.logger),
				routefile.WithCompilerOptions(compiler.WithObserver(rec)),
			}
			if traceSpans {
				tp, err := newTracerProvider(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer func() { _ = tp.Shutdown(ctx) }()
				opts = append(opts, routefile.WithTracerProvider(tp))
			}

			set, err := routefile.Load(ctx, args[0], opts...)
			if err != nil {
				return err
			}

			report := newReport(set.Source(), set.Compile(ctx))

			if output == "text" {
				err = writeTextReport(cmd.OutOrStdout(), report)
			} else {
				err = encode(cmd.OutOrStdout(), output, report)
			}
			if err != nil {
				return err
			}

			if metricsFile != "" {
				if err := rec.WriteTextfile(metricsFile); err != nil {
					return fmt.Errorf("failed to write metrics: %w", err)
				}
			}

			if report.Failed > 0 {
				return fmt.Errorf("%w: %d of %d", errCheckFailed, report.Failed, report.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json, yaml or toml")
	cmd.Flags().BoolVar(&traceSpans, "trace", false, "Print the load and compile spans to stderr")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write compilation metrics to this file in Prometheus text format")

	return cmd
}

func newReport(source string, results []routefile.Result) reportView {
	report := reportView{Source: source, Total: len(results), Routes: make([]resultView, 0, len(results))}

	for _, res := range results {
		view := resultView{
			Name: res.Name,
			Path: res.Route.Path(),
			Host: res.Route.Host(),
		}
		if res.Err != nil {
			report.Failed++
			view.Code = compiler.ErrorCode(res.Err)
			view.Error = res.Err.Error()
		} else {
			view.Regex = res.Compiled.Regex()
			view.HostRegex = res.Compiled.HostRegex()
		}
		report.Routes = append(report.Routes, view)
	}

	return report
}

// writeTextReport renders the report as a table followed by a summary line.
// Colors are downsampled to what w supports and stripped when w is not a
// terminal.
func writeTextReport(w io.Writer, report reportView) error {
	cpw := colorprofile.NewWriter(w, os.Environ())

	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	rows := make([][]string, 0, len(report.Routes))
	maxNameWidth := len("Name")
	maxPathWidth := len("Path")
	maxResultWidth := len("Result")

	for _, r := range report.Routes {
		status, result := okStyle.Render("✓"), r.Regex
		if r.Error != "" {
			status, result = failStyle.Render("✗"), errorStyle.Render(r.Error)
		}

		maxNameWidth = max(maxNameWidth, len(r.Name))
		maxPathWidth = max(maxPathWidth, len(r.Path))
		maxResultWidth = max(maxResultWidth, len(r.Regex), len(r.Error))

		rows = append(rows, []string{status, r.Name, r.Path, result})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			if row == table.HeaderRow {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers("", "Name", "Path", "Result").
		Rows(rows...)

	// Borders, separators and padding around four columns.
	minWidth := 2 + 3 + 8 + 1 + maxNameWidth + maxPathWidth + maxResultWidth
	if file, ok := w.(*os.File); ok {
		if termWidth, _, err := term.GetSize(int(file.Fd())); err == nil && termWidth > 0 {
			t = t.Width(min(minWidth, termWidth))
		}
	}

	if _, err := fmt.Fprintln(cpw, t.Render()); err != nil {
		return err
	}

	_, err := fmt.Fprintf(cpw, "\n%d routes, %d failed\n", report.Total, report.Failed)
	return err
}
