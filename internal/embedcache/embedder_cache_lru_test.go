package embedcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	embedCalls int
	batchTexts [][]string
}

func (c *countingEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	c.embedCalls++
	return []float32{float32(len(text)), 0}, nil
}

func (c *countingEmbedder) EmbedBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	c.batchTexts = append(c.batchTexts, texts)
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vectors = append(vectors, []float32{float32(len(text)), 0})
	}
	return vectors, nil
}

func (c *countingEmbedder) ModelName() string {
	return "counting-embed"
}

func TestLruEmbedder_EmbedHitsCacheOnRepeat(t *testing.T) {
	upstream := &countingEmbedder{}
	embedder := WrapLruCacheToEmbedder(upstream, 16, time.Minute)

	first, err := embedder.Embed(context.Background(), "Go", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	second, err := embedder.Embed(context.Background(), "Go", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, upstream.embedCalls)
}

func TestLruEmbedder_TaskTypeSeparatesCacheEntries(t *testing.T) {
	upstream := &countingEmbedder{}
	embedder := WrapLruCacheToEmbedder(upstream, 16, time.Minute)

	_, err := embedder.Embed(context.Background(), "Go", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	_, err = embedder.Embed(context.Background(), "Go", "RETRIEVAL_DOCUMENT")
	require.NoError(t, err)
	require.Equal(t, 2, upstream.embedCalls)
}

func TestLruEmbedder_BatchOnlyFetchesMisses(t *testing.T) {
	upstream := &countingEmbedder{}
	embedder := WrapLruCacheToEmbedder(upstream, 16, time.Minute)

	_, err := embedder.EmbedBatch(context.Background(), []string{"Go", "Rust"}, "RETRIEVAL_DOCUMENT")
	require.NoError(t, err)

	vectors, err := embedder.EmbedBatch(context.Background(), []string{"Go", "Python", "Rust"}, "RETRIEVAL_DOCUMENT")
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for _, vector := range vectors {
		require.NotEmpty(t, vector)
	}
	require.Len(t, upstream.batchTexts, 2)
	require.Equal(t, []string{"Python"}, upstream.batchTexts[1])
}

func TestWrapLruCacheToEmbedder_DisabledPassesThrough(t *testing.T) {
	upstream := &countingEmbedder{}
	require.Equal(t, upstream, WrapLruCacheToEmbedder(upstream, 0, time.Minute))
	require.Equal(t, upstream, WrapLruCacheToEmbedder(upstream, 16, 0))
}
