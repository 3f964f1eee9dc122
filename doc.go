// SPDX-License-Identifier: MIT

// Package skylane plans routes for fleets of UAVs on a discretised 3-D
// airspace and removes the collisions between them.
//
// The airspace is a lattice of NI×NJ×NK nodes spread evenly over an
// axis-aligned box. Every available node links to its available neighbours
// in the 26-neighbourhood (faces, edges and corners of the surrounding cube),
// weighted by physical distance. Vehicles move one edge per time step; two
// vehicles on the same node at the same step are in conflict.
//
// Packages:
//
//	core/      - lattice graph: NodeID, Dims, Vec3, arena adjacency, islands
//	builder/   - lattice construction with availability masks and metrics
//	dijkstra/  - shortest paths over the lattice arena
//	planner/   - single-vehicle planning: sampling tree search, Dijkstra fallback
//	conflict/  - joint cost: path lengths plus a penalty per conflict
//	anneal/    - local search operator and simulated annealing optimizer
//	mapper/    - physical positions to nodes and paths to waypoints
//	cmd/       - the skylane CLI (serve, plan, routes, export)
//
// A joint plan in three steps:
//
//	g, _ := builder.Lattice(builder.Bounds{Max: core.Vec3{X: 2, Y: 2, Z: 1}},
//		core.Dims{NI: 3, NJ: 3, NK: 1})
//	reqs := []planner.Request{
//		{Origin: core.NodeID{I: 0, J: 1}, Destination: core.NodeID{I: 2, J: 1}},
//		{Origin: core.NodeID{I: 1, J: 0}, Destination: core.NodeID{I: 1, J: 2}},
//	}
//	res, _ := anneal.Optimize(ctx, g, reqs, anneal.WithConflictAwareRepair())
//
// res.Best holds one path per request, in request order; res.Conflicts is
// zero when the plan is collision-free.
package skylane
