// SPDX-License-Identifier: MIT

// Command skylane plans conflict-free routes for UAV fleets on a 3-D
// airspace lattice. It serves the planner over HTTP and WebSocket and runs
// YAML scenarios from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("skylane version %s (commit: %s, built: %s)", version, commit, buildDate)
	}

	return fmt.Sprintf("skylane version %s-dev", version)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "skylane",
		Short:        "Skylane: multi-UAV route planning on a 3-D airspace lattice",
		Version:      versionString(),
		SilenceUsage: true,
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "CLI log level (serve uses SKYLANE_LOG_LEVEL)")

	logger := func(cmd *cobra.Command) (*logrus.Logger, error) {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
		l := logrus.New()
		l.SetOutput(cmd.ErrOrStderr())
		l.SetLevel(lvl)

		return l, nil
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newPlanCmd(logger))
	root.AddCommand(newRoutesCmd())
	root.AddCommand(newExportCmd(logger))

	return root
}

// loggerFunc builds the CLI logger for a command.
type loggerFunc func(cmd *cobra.Command) (*logrus.Logger, error)

// writeJSON writes v as indented JSON to path, or to w when path is "" or "-".
func writeJSON(w io.Writer, path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	out = append(out, '\n')

	if path == "" || path == "-" {
		_, err = w.Write(out)

		return err
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
