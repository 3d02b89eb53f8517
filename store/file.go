package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/adripedrejon/examcorpus/internal/atomicfile"
	"github.com/adripedrejon/examcorpus/internal/logger"
)

// FileStore keeps entries in one JSON array file. Appends are serialised by
// an internal mutex and replace the file through a temp file and rename, so a
// concurrent Load sees either the old or the new array.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first Append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads all entries. A missing or empty file yields an empty slice.
func (s *FileStore) Load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.read()
}

// Append validates e, then rewrites the file with e added at the end.
func (s *FileStore) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	dim := 0
	if len(entries) > 0 {
		dim = entries[0].Dim()
	}
	if err := validate(e, dim); err != nil {
		return err
	}

	entries = append(entries, e)
	data, err := json.Marshal(entries)
	if err != nil {
		return ioFailure("encode", err)
	}
	if err := atomicfile.WriteFile(s.path, data, 0o644); err != nil {
		return ioFailure("write "+s.path, err)
	}
	logger.Debug("store: appended entry %d to %s", len(entries), s.path)
	return nil
}

func (s *FileStore) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, ioFailure("read "+s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, ioFailure("decode "+s.path, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

var _ Store = (*FileStore)(nil)
