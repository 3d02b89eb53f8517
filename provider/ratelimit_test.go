package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct{ calls int }

func (c *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	c.calls++
	return []float32{float32(len(text))}, nil
}

func TestRateLimited_Delegates(t *testing.T) {
	next := &countingEmbedder{}
	r := NewRateLimited(next, 0, 0)

	for i := 0; i < 5; i++ {
		emb, err := r.Embed(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, []float32{3}, emb)
	}
	assert.Equal(t, 5, next.calls)
}

func TestRateLimited_CanceledContext(t *testing.T) {
	next := &countingEmbedder{}
	r := NewRateLimited(next, 0.001, 1)
	_, err := r.Embed(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Embed(ctx, "second")
	assert.Error(t, err)
	assert.Equal(t, 1, next.calls)
}
