package rank

import (
	"sort"

	"github.com/adripedrejon/examcorpus/store"
	"github.com/adripedrejon/examcorpus/vector"
)

// DefaultK is the number of results callers keep when none is configured.
const DefaultK = 3

// Scored pairs an entry with its similarity to the query. Index is the
// entry's position in the candidate slice.
type Scored struct {
	Entry store.Entry
	Score float64
	Index int
}

// Index holds candidates with their magnitudes precomputed so repeated
// queries against the same snapshot only pay for the dot products.
type Index struct {
	entries []store.Entry
	mags    []float64
}

// New builds an index over entries. The slice is not copied; entries are
// immutable once stored.
func New(entries []store.Entry) *Index {
	mags := make([]float64, len(entries))
	for i := range entries {
		mags[i] = vector.Magnitude(entries[i].Embedding)
	}
	return &Index{entries: entries, mags: mags}
}

// Len returns the number of candidates.
func (ix *Index) Len() int { return len(ix.entries) }

// Query scores every candidate against query and returns them sorted by
// descending similarity, ties in candidate order. If any candidate's length
// differs from the query the whole call fails with
// vector.ErrDimensionMismatch and nothing is scored.
func (ix *Index) Query(query []float32) ([]Scored, error) {
	for i := range ix.entries {
		if d := ix.entries[i].Dim(); d != len(query) {
			return nil, vector.MismatchError(len(query), d)
		}
	}
	qm := vector.Magnitude(query)
	out := make([]Scored, len(ix.entries))
	for i := range ix.entries {
		out[i] = Scored{
			Entry: ix.entries[i],
			Score: vector.CosineWithMagnitude(query, qm, ix.entries[i].Embedding, ix.mags[i]),
			Index: i,
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out, nil
}

// Rank is New(entries).Query(query).
func Rank(query []float32, entries []store.Entry) ([]Scored, error) {
	return New(entries).Query(query)
}

// TopK returns the first k results. k <= 0 or k beyond the length keeps all.
func TopK(scored []Scored, k int) []Scored {
	if k <= 0 || k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}
