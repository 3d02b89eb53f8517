// Package rank orders stored entries by cosine similarity to a query
// embedding. It is an exact brute-force scan: every candidate is scored and
// the full ordering is returned, leaving result-count policy to the caller.
package rank
