// Package classify labels alignment columns as core-invariant, core-variant,
// or excluded from per-column call tallies over collapsed groups.
//
// The same Tally transition feeds both the one-shot Classify pass and the
// progressive tracker, so the two paths cannot disagree on the rule.
package classify
