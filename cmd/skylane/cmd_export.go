// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/skylane/anneal"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/scenario"
)

// exportDoc is a renderer-neutral snapshot of a lattice and its paths.
type exportDoc struct {
	Scenario string       `json:"scenario"`
	Stats    core.Stats   `json:"stats"`
	Nodes    []exportNode `json:"nodes"`
	Edges    []exportEdge `json:"edges"`
	Paths    []exportPath `json:"paths,omitempty"`
}

type exportNode struct {
	ID        core.NodeID `json:"id"`
	Pos       core.Vec3   `json:"pos"`
	Available bool        `json:"available"`
}

type exportEdge struct {
	From   core.NodeID `json:"from"`
	To     core.NodeID `json:"to"`
	Weight float64     `json:"weight"`
}

type exportPath struct {
	Vehicle   int         `json:"vehicle"`
	Nodes     core.Path   `json:"nodes"`
	Positions []core.Vec3 `json:"positions"`
}

func newExportCmd(logger loggerFunc) *cobra.Command {
	var (
		outputPath string
		withPlan   bool
	)

	cmd := &cobra.Command{
		Use:   "export <scenario.yaml>",
		Short: "Export a scenario lattice (and optionally its plan) as JSON",
		Long: `Write the nodes, edges and, with --plan, the optimized paths of a scenario
to a JSON document for external renderers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger(cmd)
			if err != nil {
				return err
			}

			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			g, err := s.Build()
			if err != nil {
				return err
			}

			doc := exportLattice(s.Name, g)
			if withPlan {
				opts := append(s.AnnealOptions(), anneal.WithLogger(log.WithField("scenario", s.Name)))
				res, err := anneal.Optimize(cmd.Context(), g, s.Requests(g), opts...)
				if err != nil {
					return fmt.Errorf("scenario %q: %w", s.Name, err)
				}
				doc.Paths = exportPaths(g, res.Best)
			}

			if err := writeJSON(cmd.OutOrStdout(), outputPath, doc); err != nil {
				return err
			}
			if outputPath != "" && outputPath != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d nodes, %d edges, %d paths to %s\n",
					len(doc.Nodes), len(doc.Edges), len(doc.Paths), outputPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&withPlan, "plan", false, "optimize the scenario routes and include the paths")

	return cmd
}

// exportLattice lists every node and each directed edge in arena order.
func exportLattice(name string, g *core.Graph) exportDoc {
	doc := exportDoc{
		Scenario: name,
		Stats:    g.Stats(),
		Nodes:    make([]exportNode, g.Len()),
		Edges:    make([]exportEdge, 0, g.EdgeCount()),
	}
	for idx := range g.Len() {
		n := g.NodeAt(idx)
		doc.Nodes[idx] = exportNode{ID: n.ID, Pos: n.Pos, Available: n.Available}
		for _, e := range g.OutEdges(idx) {
			doc.Edges = append(doc.Edges, exportEdge{
				From:   n.ID,
				To:     g.NodeAt(e.To).ID,
				Weight: e.Weight,
			})
		}
	}

	return doc
}

func exportPaths(g *core.Graph, sol core.Solution) []exportPath {
	out := make([]exportPath, len(sol))
	for v, p := range sol {
		pos := make([]core.Vec3, len(p))
		for i, id := range p {
			n, _ := g.Node(id)
			pos[i] = n.Pos
		}
		out[v] = exportPath{Vehicle: v, Nodes: p, Positions: pos}
	}

	return out
}
