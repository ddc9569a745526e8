package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/craftedbits/resumatch/internal/ai"
)

// WrapLruCacheToEmbedder memoizes embedding calls in an expiring LRU. Facts
// and queries are re-embedded often enough (re-submission, repeated job
// descriptions) that this saves real upstream calls.
func WrapLruCacheToEmbedder(e ai.IEmbedder, size int, ttl time.Duration) ai.IEmbedder {
	if e == nil || size <= 0 || ttl <= 0 {
		return e
	}
	return &lruEmbedder{
		next:  e,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

type lruEmbedder struct {
	next  ai.IEmbedder
	cache *expirable.LRU[string, []float32]
}

func (l *lruEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	key := buildCacheKey(l.next.ModelName(), taskType, text)
	if cached, ok := l.cache.Get(key); ok {
		logutil.GetLogger(ctx).Debug("embedding cache hit", zap.String("task_type", taskType))
		return cloneEmbedding(cached), nil
	}
	res, err := l.next.Embed(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, cloneEmbedding(res))
	return res, nil
}

func (l *lruEmbedder) EmbedBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	missing := make([]string, 0, len(texts))
	missingIdx := make([]int, 0, len(texts))
	for i, text := range texts {
		key := buildCacheKey(l.next.ModelName(), taskType, text)
		if cached, ok := l.cache.Get(key); ok {
			results[i] = cloneEmbedding(cached)
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) == 0 {
		return results, nil
	}
	fetched, err := l.next.EmbedBatch(ctx, missing, taskType)
	if err != nil {
		return nil, err
	}
	for j, vec := range fetched {
		idx := missingIdx[j]
		results[idx] = vec
		l.cache.Add(buildCacheKey(l.next.ModelName(), taskType, texts[idx]), cloneEmbedding(vec))
	}
	return results, nil
}

func (l *lruEmbedder) ModelName() string {
	return l.next.ModelName()
}

func buildCacheKey(model, taskType, text string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + taskType + "\x00" + text))
	return hex.EncodeToString(hash[:])
}

func cloneEmbedding(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	clone := make([]float32, len(values))
	copy(clone, values)
	return clone
}
