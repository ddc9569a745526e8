package vecstore

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryIndex is an in-process Index for tests and single-node setups
// without Postgres. Contents are lost on process exit.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{docs: make(map[string]Document)}
}

func (m *MemoryIndex) Upsert(ctx context.Context, docs []Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range docs {
		m.docs[doc.ID] = doc
	}
	return nil
}

func (m *MemoryIndex) Query(ctx context.Context, vector []float32, filter Filter, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	matches := make([]Match, 0, k)
	for _, doc := range m.docs {
		if doc.OwnerID != filter.OwnerID || doc.Category != filter.Category {
			continue
		}
		matches = append(matches, Match{
			ID:       doc.ID,
			OwnerID:  doc.OwnerID,
			Category: doc.Category,
			Content:  doc.Content,
			Score:    cosineSimilarity(vector, doc.Embedding),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
