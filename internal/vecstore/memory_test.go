package vecstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craftedbits/resumatch/internal/model"
)

func TestMemoryIndexQueryRanksBySimilarity(t *testing.T) {
	index := NewMemoryIndex()
	docs := []Document{
		{ID: "a", OwnerID: "owner-1", Category: model.CategorySkill, Content: "worst", Embedding: []float32{0, 1}},
		{ID: "b", OwnerID: "owner-1", Category: model.CategorySkill, Content: "best", Embedding: []float32{1, 0}},
		{ID: "c", OwnerID: "owner-1", Category: model.CategorySkill, Content: "middle", Embedding: []float32{0.7, 0.7}},
	}
	require.NoError(t, index.Upsert(context.Background(), docs))

	matches, err := index.Query(context.Background(), []float32{1, 0}, Filter{OwnerID: "owner-1", Category: model.CategorySkill}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	require.Equal(t, "best", matches[0].Content)
	require.Equal(t, "middle", matches[1].Content)
	require.Equal(t, "worst", matches[2].Content)
	require.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
	require.GreaterOrEqual(t, matches[1].Score, matches[2].Score)
}

func TestMemoryIndexQueryTruncatesToK(t *testing.T) {
	index := NewMemoryIndex()
	docs := []Document{
		{ID: "a", OwnerID: "owner-1", Category: model.CategorySkill, Content: "a", Embedding: []float32{1, 0}},
		{ID: "b", OwnerID: "owner-1", Category: model.CategorySkill, Content: "b", Embedding: []float32{0.9, 0.1}},
		{ID: "c", OwnerID: "owner-1", Category: model.CategorySkill, Content: "c", Embedding: []float32{0.8, 0.2}},
	}
	require.NoError(t, index.Upsert(context.Background(), docs))

	matches, err := index.Query(context.Background(), []float32{1, 0}, Filter{OwnerID: "owner-1", Category: model.CategorySkill}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestMemoryIndexQueryFiltersOwnerAndCategory(t *testing.T) {
	index := NewMemoryIndex()
	docs := []Document{
		{ID: "a", OwnerID: "owner-1", Category: model.CategorySkill, Content: "mine", Embedding: []float32{1, 0}},
		{ID: "b", OwnerID: "owner-2", Category: model.CategorySkill, Content: "theirs", Embedding: []float32{1, 0}},
		{ID: "c", OwnerID: "owner-1", Category: model.CategoryProject, Content: "other category", Embedding: []float32{1, 0}},
	}
	require.NoError(t, index.Upsert(context.Background(), docs))

	matches, err := index.Query(context.Background(), []float32{1, 0}, Filter{OwnerID: "owner-1", Category: model.CategorySkill}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "mine", matches[0].Content)
}

func TestMemoryIndexUpsertReplacesByID(t *testing.T) {
	index := NewMemoryIndex()
	doc := Document{ID: "a", OwnerID: "owner-1", Category: model.CategorySkill, Content: "v1", Embedding: []float32{1, 0}}
	require.NoError(t, index.Upsert(context.Background(), []Document{doc}))
	doc.Content = "v2"
	require.NoError(t, index.Upsert(context.Background(), []Document{doc}))

	matches, err := index.Query(context.Background(), []float32{1, 0}, Filter{OwnerID: "owner-1", Category: model.CategorySkill}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "v2", matches[0].Content)
}

func TestMemoryIndexQueryNonPositiveK(t *testing.T) {
	index := NewMemoryIndex()

	matches, err := index.Query(context.Background(), []float32{1, 0}, Filter{OwnerID: "owner-1", Category: model.CategorySkill}, 0)
	require.NoError(t, err)
	require.Empty(t, matches)
}
