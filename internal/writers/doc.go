// Package writers persists run outputs and renders stdout reports.
//
// Design:
//   - Writers own all serialization; the core packages expose in-memory
//     structured results only.
//   - Output files are written concurrently, one goroutine per file,
//     first error wins.
//   - Stdout reports go through pkg/api (v1) for a stable wire format.
package writers
