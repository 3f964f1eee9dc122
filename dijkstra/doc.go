// Package dijkstra provides the deterministic shortest-path search over the
// lattice arena.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost distance from one source node to every
//     reachable node in O((V + E) log V), using a min-heap with lazy decrease-key.
//   - ShortestPath runs the same search with early exit at the target and
//     rebuilds the node sequence from predecessor indices.
//   - Ties on distance are broken by arena index, so identical inputs always
//     produce identical paths. Re-routing during local search relies on this.
//
// Key features:
//
//   - Functional options allow fine-tuning behavior without changing the API signature.
//   - Source:          the start node for Dijkstra.
//   - WithMaxDistance: stop exploring beyond a distance cap (vehicle range).
//   - WithBlocked:     nodes rejected by a predicate are impassable
//     (the endpoints are always allowed).
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:          g is nil.
//   - ErrVertexNotFound:    source or target outside the lattice bounds.
//   - ErrVertexUnavailable: source or target is an unavailable node.
//   - ErrNoPath:            target unreachable under the active options.
//   - ErrBadMaxDistance:    (panic) negative or NaN distance cap.
//
// Thread safety:
//
//   - The graph is only read; concurrent searches on a frozen graph are safe.
//     Each call owns its own heap and slices.
package dijkstra
