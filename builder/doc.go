// Package builder constructs the immutable lattice airspace graph.
//
// A lattice is described by physical bounds (per-axis minimum and maximum in a
// linear unit) and a resolution (node count per axis). Lattice interpolates
// node positions between the bounds, decides availability per node, and wires
// the 26-connected neighbourhood between available nodes.
//
// The package offers:
//
//   - Configuration primitives:
//     – BuilderOption:        functional option mutating builderConfig.
//     – builderConfig:        rng, availability policy, distance function.
//   - Availability sources:
//     – WithAvailability:             caller predicate over NodeID.
//     – WithAvailabilityProbability:  Bernoulli draw per node (needs WithSeed/WithRand).
//     – default:                      every node available.
//   - Distance functions (DistanceFn):
//     – SlantRange:        3-D Euclidean distance.
//     – ScaledSlantRange:  per-axis scaled distance (e.g. altitude exaggeration).
//   - Validation helpers:
//     – validateBounds / validateDims / validateProbability.
//
// Errors (sentinel):
//
//	ErrInvalidDimension    - an axis count < 1 or min ≥ max on an axis.
//	ErrInvalidProbability  - availability probability outside [0,1].
//	ErrNeedRandSource      - probability draw requested without an RNG.
//	ErrConstructFailed     - core rejected an edge (invariant breach).
//
// Example:
//
//	g, err := builder.Lattice(
//	    builder.Bounds{Min: core.Vec3{}, Max: core.Vec3{X: 900, Y: 900, Z: 90}},
//	    core.Dims{NI: 10, NJ: 10, NK: 3},
//	    builder.WithSeed(7),
//	    builder.WithAvailabilityProbability(0.9),
//	)
package builder
