// Package engine opens SQLite connections through the pure-Go
// modernc.org/sqlite driver and registers the vec_cosine scalar function
// before the first connection is made, so every connection shares it.
package engine
