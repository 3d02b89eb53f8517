package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adripedrejon/examcorpus/vector"
)

var (
	// ErrIOFailure is returned when the backing medium cannot be read or
	// written. The previously persisted state is unchanged.
	ErrIOFailure = errors.New("store: io failure")
	// ErrInvalidEntry is returned by Append for entries with empty text or an
	// empty embedding.
	ErrInvalidEntry = errors.New("store: invalid entry")
)

// Store is an append-only collection of entries.
type Store interface {
	// Load returns every entry in insertion order. An uninitialised store is
	// empty, not an error.
	Load(ctx context.Context) ([]Entry, error)
	// Append adds e after all existing entries.
	Append(ctx context.Context, e Entry) error
}

// validate checks e against the store dimensionality dim (0 when the store is
// empty).
func validate(e Entry, dim int) error {
	if strings.TrimSpace(e.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidEntry)
	}
	if len(e.Embedding) == 0 {
		return fmt.Errorf("%w: empty embedding", ErrInvalidEntry)
	}
	if dim != 0 && len(e.Embedding) != dim {
		return vector.MismatchError(dim, len(e.Embedding))
	}
	return nil
}

func ioFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIOFailure, op, err)
}
