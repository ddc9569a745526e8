package vecstore

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/craftedbits/resumatch/internal/config"
	"github.com/craftedbits/resumatch/internal/db"
	"github.com/craftedbits/resumatch/internal/model"
)

func openTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "resumatch",
		Password: "resumatch_pass",
		DBName:   "resumatch_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}

// testVector pads a short prefix out to the table's embedding dimension.
func testVector(prefix ...float32) []float32 {
	vector := make([]float32, 768)
	copy(vector, prefix)
	return vector
}

func TestPgvectorIndexUpsertAndQuery(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	index := NewPgvectorIndex(conn)
	ownerID := uuid.NewString()
	docs := []Document{
		{ID: uuid.NewString(), OwnerID: ownerID, Category: model.CategorySkill, Content: "Go", Embedding: testVector(1, 0), Ctime: 1},
		{ID: uuid.NewString(), OwnerID: ownerID, Category: model.CategorySkill, Content: "Rust", Embedding: testVector(0, 1), Ctime: 2},
		{ID: uuid.NewString(), OwnerID: ownerID, Category: model.CategoryProject, Content: "deploy CLI", Embedding: testVector(1, 0), Ctime: 3},
	}
	require.NoError(t, index.Upsert(context.Background(), docs))

	matches, err := index.Query(context.Background(), testVector(1, 0), Filter{OwnerID: ownerID, Category: model.CategorySkill}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "Go", matches[0].Content)
	require.Equal(t, "Rust", matches[1].Content)
	require.Greater(t, matches[0].Score, matches[1].Score)
}

func TestPgvectorIndexUpsertReplacesByID(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	index := NewPgvectorIndex(conn)
	ownerID := uuid.NewString()
	doc := Document{ID: uuid.NewString(), OwnerID: ownerID, Category: model.CategorySkill, Content: "v1", Embedding: testVector(1, 0), Ctime: 1}
	require.NoError(t, index.Upsert(context.Background(), []Document{doc}))
	doc.Content = "v2"
	require.NoError(t, index.Upsert(context.Background(), []Document{doc}))

	matches, err := index.Query(context.Background(), testVector(1, 0), Filter{OwnerID: ownerID, Category: model.CategorySkill}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "v2", matches[0].Content)
}

func TestPgvectorIndexOwnerIsolation(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	index := NewPgvectorIndex(conn)
	mine := uuid.NewString()
	theirs := uuid.NewString()
	docs := []Document{
		{ID: uuid.NewString(), OwnerID: mine, Category: model.CategorySkill, Content: "mine", Embedding: testVector(1, 0), Ctime: 1},
		{ID: uuid.NewString(), OwnerID: theirs, Category: model.CategorySkill, Content: "theirs", Embedding: testVector(1, 0), Ctime: 2},
	}
	require.NoError(t, index.Upsert(context.Background(), docs))

	matches, err := index.Query(context.Background(), testVector(1, 0), Filter{OwnerID: mine, Category: model.CategorySkill}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "mine", matches[0].Content)
}
