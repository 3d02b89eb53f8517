package corpus

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/adripedrejon/examcorpus/extract"
	"github.com/adripedrejon/examcorpus/format"
	"github.com/adripedrejon/examcorpus/internal/logger"
	"github.com/adripedrejon/examcorpus/rank"
	"github.com/adripedrejon/examcorpus/store"
)

// DefaultTopic is recorded when a question has no topic.
const DefaultTopic = "General"

// ExamLevel is the level recorded for exam-sourced entries.
const ExamLevel = "exam"

// ErrEmbeddingUnavailable wraps failures of the embedding provider.
var ErrEmbeddingUnavailable = errors.New("corpus: embedding unavailable")

// EmbedFunc converts free-form text into an embedding.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// GuessFunc proposes the correct option of a question as free text, e.g.
// "c" or "c) las variables".
type GuessFunc func(ctx context.Context, question string, opts extract.Options) (string, error)

// Index ties a store to an embedding provider.
type Index struct {
	Store store.Store
	Embed EmbedFunc
	// Guess is optional. Without it ingested questions keep their own answer
	// or the unknown marker.
	Guess GuessFunc
	// TopK is the result count used when Search is called with k <= 0.
	TopK int
}

// NewIndex constructs an Index.
func NewIndex(s store.Store, embed EmbedFunc) (*Index, error) {
	if s == nil {
		return nil, fmt.Errorf("corpus: store is nil")
	}
	if embed == nil {
		return nil, fmt.Errorf("corpus: EmbedFunc is nil")
	}
	return &Index{Store: s, Embed: embed, TopK: rank.DefaultK}, nil
}

// ExamOptions controls IngestExam.
type ExamOptions struct {
	// Year names the exam; the source metadata becomes "Exam <year>".
	Year string
	// Source overrides the derived source.
	Source string
	// Topic keeps only records whose topic contains it and is recorded as
	// the entry topic.
	Topic string
	// Count samples that many records; 0 ingests all of them.
	Count int
	// Rand drives sampling. A nil Rand uses the global source.
	Rand *rand.Rand
}

func (o ExamOptions) source() string {
	if o.Source != "" {
		return o.Source
	}
	return strings.TrimSpace(format.ExamMarker + " " + o.Year)
}

// IngestExam filters and samples records, settles each answer, embeds the
// serialised question and appends it. It returns the appended entries; on
// error the entries appended before the failure are returned with it.
func (ix *Index) IngestExam(ctx context.Context, records []extract.Record, opts ExamOptions) ([]store.Entry, error) {
	selected := sample(extract.Filter(records, opts.Topic), opts.Count, opts.Rand)
	batch := uuid.NewString()
	logger.Info("corpus: ingesting %d of %d questions from %q (batch %s)", len(selected), len(records), opts.source(), batch)

	out := make([]store.Entry, 0, len(selected))
	for i, rec := range selected {
		answer := ix.answer(ctx, rec)
		text := extract.Serialize(rec)
		emb, err := ix.embed(ctx, text)
		if err != nil {
			return out, fmt.Errorf("question %d: %w", i+1, err)
		}
		topic := opts.Topic
		if topic == "" {
			topic = rec.TopicOrEmpty()
		}
		if topic == "" {
			topic = DefaultTopic
		}
		options := rec.Options
		e := store.Entry{
			Text:      text,
			Embedding: emb,
			Metadata: map[string]any{
				store.MetaTopic:  topic,
				store.MetaSource: opts.source(),
				store.MetaLevel:  ExamLevel,
				store.MetaBatch:  batch,
			},
			Options:       &options,
			CorrectAnswer: &answer,
		}
		if err := ix.Store.Append(ctx, e); err != nil {
			return out, fmt.Errorf("question %d: %w", i+1, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// AddText stores a free-form question. Its options stay null so search shows
// the text as written.
func (ix *Index) AddText(ctx context.Context, text, topic, level string) (store.Entry, error) {
	if strings.TrimSpace(text) == "" {
		return store.Entry{}, fmt.Errorf("%w: empty text", store.ErrInvalidEntry)
	}
	if topic == "" {
		topic = DefaultTopic
	}
	emb, err := ix.embed(ctx, text)
	if err != nil {
		return store.Entry{}, err
	}
	meta := map[string]any{store.MetaTopic: topic}
	if level != "" {
		meta[store.MetaLevel] = level
	}
	e := store.Entry{Text: text, Embedding: emb, Metadata: meta}
	if err := ix.Store.Append(ctx, e); err != nil {
		return store.Entry{}, err
	}
	return e, nil
}

// nearest is implemented by stores that rank in the backend.
type nearest interface {
	Nearest(ctx context.Context, query []float32, k int) ([]store.Neighbor, error)
}

// Search embeds query and returns the k most similar entries, formatted.
// k <= 0 uses ix.TopK.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]format.Result, error) {
	if k <= 0 {
		k = ix.TopK
	}
	if k <= 0 {
		k = rank.DefaultK
	}
	q, err := ix.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	var top []rank.Scored
	if n, ok := ix.Store.(nearest); ok {
		hits, err := n.Nearest(ctx, q, k)
		if err != nil {
			return nil, err
		}
		top = make([]rank.Scored, len(hits))
		for i, h := range hits {
			top[i] = rank.Scored{Entry: h.Entry, Score: h.Score, Index: h.Position}
		}
	} else {
		entries, err := ix.Store.Load(ctx)
		if err != nil {
			return nil, err
		}
		idx := rank.New(entries)
		logger.Debug("corpus: ranking %d entries", idx.Len())
		scored, err := idx.Query(q)
		if err != nil {
			return nil, err
		}
		top = rank.TopK(scored, k)
	}
	logger.Debug("corpus: %d results for %q", len(top), query)
	return format.FormatAll(top), nil
}

func (ix *Index) embed(ctx context.Context, text string) ([]float32, error) {
	emb, err := ix.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}
	if len(emb) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrEmbeddingUnavailable)
	}
	return emb, nil
}

// answer returns the record's own answer when it has one, otherwise the
// guess. Failures degrade to extract.UnknownAnswer.
func (ix *Index) answer(ctx context.Context, rec extract.Record) string {
	if rec.CorrectAnswer != nil {
		return extract.NormalizeAnswer(*rec.CorrectAnswer)
	}
	if ix.Guess == nil {
		return extract.UnknownAnswer
	}
	raw, err := ix.Guess(ctx, rec.Question, rec.Options)
	if err != nil {
		logger.Warn("corpus: guess failed for %q: %v", rec.Question, err)
		return extract.UnknownAnswer
	}
	answer := extract.NormalizeAnswer(raw)
	logger.Debug("corpus: guessed %q -> %s", raw, answer)
	return answer
}

// sample picks n records without replacement. n <= 0 or n >= len keeps all
// in document order.
func sample(records []extract.Record, n int, r *rand.Rand) []extract.Record {
	if n <= 0 || n >= len(records) {
		return records
	}
	perm := rand.Perm
	if r != nil {
		perm = r.Perm
	}
	idx := perm(len(records))[:n]
	out := make([]extract.Record, n)
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}
