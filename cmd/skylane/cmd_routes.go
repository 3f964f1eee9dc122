// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/skylane/internal/scenario"
	"github.com/katalvlaran/skylane/planner"
)

func newRoutesCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "routes <scenario.yaml>",
		Short: "Generate left-to-right face routes for a scenario lattice",
		Long: `Pair unused available nodes on the i = 0 face with unused nodes on the
i = NI-1 face, skipping pairs that cannot reach each other. The output is a
YAML routes list that can be pasted into a scenario.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be ≥ 1, got %d", count)
			}

			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			g, err := s.Build()
			if err != nil {
				return err
			}

			reqs := scenario.EdgeRoutes(g, count)
			if len(reqs) < count {
				fmt.Fprintf(cmd.ErrOrStderr(), "generated %d of %d routes\n", len(reqs), count)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(struct {
				Routes []planner.Request `yaml:"routes"`
			}{reqs}); err != nil {
				return err
			}

			return enc.Close()
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of routes to generate")

	return cmd
}
