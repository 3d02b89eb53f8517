// Package vector holds the numeric helpers shared by the store, the ranker and
// the SQL functions registered by package engine:
//   - cosine similarity with a checked dimension guard
//   - magnitudes backed by github.com/viant/vec
//   - the little-endian BLOB encoding used by the SQLite backend
package vector
