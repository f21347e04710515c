// Package distance computes normalized pairwise genetic distances over
// classified columns, in whole-column chunks sized to a memory budget.
//
// Per-pair bookkeeping is two integer accumulators (difference units,
// compared units) carried across chunks, so the result is exactly the same
// for any chunk width and any worker count.
package distance
