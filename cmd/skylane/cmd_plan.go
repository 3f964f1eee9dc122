// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/skylane/anneal"
	"github.com/katalvlaran/skylane/conflict"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/scenario"
	"github.com/katalvlaran/skylane/planner"
)

type planReport struct {
	Scenario     string               `json:"scenario"`
	Vehicles     []vehicleReport      `json:"vehicles"`
	TotalCost    float64              `json:"total_cost"`
	InitialCost  float64              `json:"initial_cost"`
	Conflicts    int                  `json:"conflicts"`
	Collisions   []conflict.Collision `json:"collisions,omitempty"`
	ConflictFree bool                 `json:"conflict_free"`
	Iterations   int                  `json:"iterations"`
	Accepted     int                  `json:"accepted"`
	Restart      int                  `json:"restart"`
	StopReason   string               `json:"stop_reason"`
	DurationMS   float64              `json:"duration_ms"`
	Trace        []float64            `json:"trace,omitempty"`
}

type vehicleReport struct {
	Request planner.Request `json:"request"`
	Path    core.Path       `json:"path"`
	Length  float64         `json:"length"`
}

func newPlanCmd(logger loggerFunc) *cobra.Command {
	var (
		outputPath string
		strict     bool
		trace      bool
	)

	cmd := &cobra.Command{
		Use:   "plan <scenario.yaml>",
		Short: "Optimize the routes of a scenario and print the joint plan",
		Long: `Build the scenario lattice, plan every route and anneal the joint
solution. The report lists each vehicle's path with its length, the total
cost and any collisions left in the best solution.`,
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
			reqs := s.Requests(g)
			if err := planner.ValidateRequests(g, reqs); err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}

			opts := append(s.AnnealOptions(), anneal.WithLogger(log.WithField("scenario", s.Name)))
			if trace {
				opts = append(opts, anneal.WithTrace())
			}
			res, err := anneal.Optimize(cmd.Context(), g, reqs, opts...)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}

			log.WithFields(logrus.Fields{
				"vehicles":   len(reqs),
				"best_cost":  res.BestCost,
				"conflicts":  res.Conflicts,
				"iterations": res.Iterations,
			}).Info("plan finished")

			if err := writeJSON(cmd.OutOrStdout(), outputPath, newPlanReport(s.Name, reqs, res)); err != nil {
				return err
			}
			if strict {
				return res.Err()
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when conflicts remain")
	cmd.Flags().BoolVar(&trace, "trace", false, "include the best-cost trace in the report")

	return cmd
}

func newPlanReport(name string, reqs []planner.Request, res *anneal.Result) planReport {
	r := planReport{
		Scenario:     name,
		Vehicles:     make([]vehicleReport, len(res.Best)),
		TotalCost:    res.BestCost,
		InitialCost:  res.InitialCost,
		Conflicts:    res.Conflicts,
		Collisions:   res.Collisions,
		ConflictFree: res.ConflictFree(),
		Iterations:   res.Iterations,
		Accepted:     res.Accepted,
		Restart:      res.Restart,
		StopReason:   string(res.StopReason),
		DurationMS:   float64(res.Duration.Microseconds()) / 1000,
		Trace:        res.Trace,
	}
	for i, p := range res.Best {
		r.Vehicles[i] = vehicleReport{Request: reqs[i], Path: p}
		if i < len(res.PerVehicle) {
			r.Vehicles[i].Length = res.PerVehicle[i]
		}
	}

	return r
}
