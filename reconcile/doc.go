// Package reconcile normalizes and prunes selection records.
//
// All operations are pure functions over a [model.SelectionRecord]; none of
// them ever fails. Invalid indices introduced upstream are silently dropped
// by re-intersection with the panel's authoritative permutations, since a
// geometry/permutation mismatch is a programming error to be caught by
// tests, not a user-facing condition.
//
// # Operations
//
//   - [Normalize] - merges duplicate slice rows, re-intersects every index
//     set with its split permutation, and orders rows canonically. Running
//     it twice yields the same record as running it once.
//   - [TrimN] - removes a fixed count of entries from one display edge of
//     the selection. On the linked axis the trim applies across all panels
//     at the extreme split; on the other axis it is local to the first or
//     last panel. This asymmetry mirrors how splits are shared only along
//     the linked axis and is deliberate.
//   - [TrimEmpty] - drops indices whose selected cells are entirely
//     missing in the underlying value grids, axis by axis, OR-ing across
//     panels that share the collapsed axis.
package reconcile
