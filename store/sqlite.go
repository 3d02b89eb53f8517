package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/adripedrejon/examcorpus/extract"
	"github.com/adripedrejon/examcorpus/internal/logger"
	"github.com/adripedrejon/examcorpus/vector"
)

// SQLiteStore keeps entries in the entries table of an SQLite database
// opened with engine.Open. Each append runs in its own transaction.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Neighbor is an entry ranked by Nearest. Position is the entry's index in
// insertion order.
type Neighbor struct {
	Entry    Entry
	Score    float64
	Position int
}

// NewSQLiteStore wraps db and ensures the entries table exists.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, ioFailure("create schema", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns all entries ordered by rowid.
func (s *SQLiteStore) Load(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text, embedding, metadata, options, correct_answer FROM entries ORDER BY rowid`)
	if err != nil {
		return nil, ioFailure("query entries", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, ioFailure("scan entries", err)
	}
	return out, nil
}

// Append inserts e with a fresh id after checking it against the stored
// dimensionality.
func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ioFailure("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	dim, err := storedDim(ctx, tx)
	if err != nil {
		return err
	}
	if err := validate(e, dim); err != nil {
		return err
	}

	blob, err := vector.EncodeEmbedding(e.Embedding)
	if err != nil {
		return err
	}
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return ioFailure("encode metadata", err)
	}
	var opts any
	if e.Options != nil {
		b, err := json.Marshal(e.Options)
		if err != nil {
			return ioFailure("encode options", err)
		}
		opts = string(b)
	}
	var answer any
	if e.CorrectAnswer != nil {
		answer = *e.CorrectAnswer
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO entries(id, text, embedding, dim, metadata, options, correct_answer) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, e.Text, blob, len(e.Embedding), string(meta), opts, answer); err != nil {
		return ioFailure("insert", err)
	}
	if err := tx.Commit(); err != nil {
		return ioFailure("commit", err)
	}
	logger.Debug("store: inserted entry %s (dim %d)", id, len(e.Embedding))
	return nil
}

// Nearest ranks stored entries against query with vec_cosine and returns the
// best k (all when k <= 0). Equal scores keep insertion order.
func (s *SQLiteStore) Nearest(ctx context.Context, query []float32, k int) ([]Neighbor, error) {
	dim, err := storedDim(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if dim == 0 {
		return []Neighbor{}, nil
	}
	if len(query) != dim {
		return nil, vector.MismatchError(dim, len(query))
	}
	blob, err := vector.EncodeEmbedding(query)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = -1
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT text, embedding, metadata, options, correct_answer, score, pos FROM (
    SELECT text, embedding, metadata, options, correct_answer, rowid AS rid,
           vec_cosine(embedding, ?) AS score,
           ROW_NUMBER() OVER (ORDER BY rowid) - 1 AS pos
    FROM entries
)
ORDER BY score DESC, rid
LIMIT ?`, blob, k)
	if err != nil {
		return nil, ioFailure("nearest", err)
	}
	defer rows.Close()

	out := []Neighbor{}
	for rows.Next() {
		var n Neighbor
		e, err := scanEntry(rows, &n.Score, &n.Position)
		if err != nil {
			return nil, err
		}
		n.Entry = e
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, ioFailure("nearest", err)
	}
	return out, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func storedDim(ctx context.Context, q querier) (int, error) {
	var dim int
	err := q.QueryRowContext(ctx, `SELECT dim FROM entries ORDER BY rowid LIMIT 1`).Scan(&dim)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, ioFailure("read dimension", err)
	}
	return dim, nil
}

func scanEntry(rows *sql.Rows, extra ...any) (Entry, error) {
	var (
		e      Entry
		blob   []byte
		meta   sql.NullString
		opts   sql.NullString
		answer sql.NullString
	)
	dest := append([]any{&e.Text, &blob, &meta, &opts, &answer}, extra...)
	if err := rows.Scan(dest...); err != nil {
		return Entry{}, ioFailure("scan entry", err)
	}
	vec, err := vector.DecodeEmbedding(blob)
	if err != nil {
		return Entry{}, ioFailure("decode embedding", err)
	}
	e.Embedding = vec
	if meta.Valid && meta.String != "" && meta.String != "null" {
		if err := json.Unmarshal([]byte(meta.String), &e.Metadata); err != nil {
			return Entry{}, ioFailure("decode metadata", err)
		}
	}
	if opts.Valid {
		var o extract.Options
		if err := json.Unmarshal([]byte(opts.String), &o); err != nil {
			return Entry{}, ioFailure("decode options", err)
		}
		e.Options = &o
	}
	if answer.Valid {
		a := answer.String
		e.CorrectAnswer = &a
	}
	return e, nil
}

var _ Store = (*SQLiteStore)(nil)
