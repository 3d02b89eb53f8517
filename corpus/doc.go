// Package corpus is the question corpus service. It ingests extracted exam
// questions and free-form questions into a store, computing embeddings with
// a caller-supplied EmbedFunc, and answers semantic searches over them.
//
// The package stays embedding-agnostic: any provider that turns text into a
// []float32 can back an Index.
package corpus
