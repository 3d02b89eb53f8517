// Package store persists question embeddings.
//
// Two backends share the Store contract. FileStore keeps every entry in a
// single JSON array file and rewrites it atomically on each append.
// SQLiteStore keeps entries in an SQLite table opened through the engine
// package and can rank them in SQL with vec_cosine.
//
// Entries are append-only: there is no update or delete, and insertion order
// is preserved by Load.
package store
