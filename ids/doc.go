// Package ids provides the low-level free-ID bookkeeping used by the
// mod merger's allocator stage.
//
//	Overview
//
// Unlike a hierarchical or partition-based ID scheme, the allocation
// problem here is intentionally simple: given a closed interval of
// candidate integers (a kind's modding range) and a set of integers
// already claimed within it, find the smallest integer in the interval
// that is still free, and claim it.
//
//	Claim vs Allocate
//
// Claim records that a specific, already-known id is now taken — used
// when a mod's own numbered declaration doesn't collide with anything
// seen so far, so it keeps its original id.
//
// Allocate finds and claims the smallest free id in a range — used
// both to resolve a collision (the losing mod's id moves) and to give
// an id to an unnumbered declaration that never had one.
//
//	Determinism
//
// An Allocator has no internal randomness and no concurrency of its
// own: callers are expected to drive it from a single goroutine (the
// merge pipeline's allocation stage is explicitly single-threaded; see
// the orchestrator's concurrency notes). Given the same sequence of
// Claim/Allocate calls, the resulting assignment is always the same.
package ids
