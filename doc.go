// Package wikisearch provides a generic, time-bounded best-first (A*) search
// over lazily fetched graphs such as hyperlink graphs.
//
// The engine is parameterized by three collaborators:
//
//   - EdgeCost: the weight of a traversed edge.
//   - Heuristic: an estimate of the remaining distance. It may be a learned
//     model that overestimates; closed nodes are re-opened when a cheaper path
//     to them is found, so the search stays correct, just not optimal.
//   - ExpansionStrategy: tie-breaking among equal priorities and filtering of
//     discovered neighbors.
//
// It exposes two entry points:
//
//   - Engine.Run: run the search to completion or until the time limit and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive tracing or debugging tools.
//
// Neighbor evaluation may be spread over worker goroutines while a single
// orchestrator owns the frontier and the closed set.
package wikisearch
