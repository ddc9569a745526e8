package vecstore

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
	"github.com/pgvector/pgvector-go"

	"github.com/craftedbits/resumatch/internal/model"
	"github.com/craftedbits/resumatch/internal/pkg/dbutil"
)

// PgvectorIndex stores documents in a Postgres facts table and answers
// nearest-neighbor queries with the pgvector cosine operator.
type PgvectorIndex struct {
	db *sql.DB
}

func NewPgvectorIndex(db *sql.DB) *PgvectorIndex {
	return &PgvectorIndex{db: db}
}

func (r *PgvectorIndex) Upsert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, map[string]interface{}{
			"id":        doc.ID,
			"owner_id":  doc.OwnerID,
			"category":  doc.Category.String(),
			"content":   doc.Content,
			"embedding": pgvector.NewVector(doc.Embedding),
			"ctime":     doc.Ctime,
		})
	}
	sqlStr, args, err := builder.BuildInsert("facts", rows)
	if err != nil {
		return err
	}
	sqlStr += " ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, embedding = EXCLUDED.embedding"
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PgvectorIndex) Query(ctx context.Context, vector []float32, filter Filter, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}
	const query = `
		SELECT id, owner_id, category, content, 1 - (embedding <=> $1) AS score
		FROM facts
		WHERE owner_id = $2 AND category = $3
		ORDER BY embedding <=> $1
		LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, pgvector.NewVector(vector), filter.OwnerID, filter.Category.String(), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var matches []Match
	for rows.Next() {
		var item Match
		var category string
		if err := rows.Scan(&item.ID, &item.OwnerID, &category, &item.Content, &item.Score); err != nil {
			return nil, err
		}
		item.Category = model.Category(category)
		matches = append(matches, item)
	}
	return matches, rows.Err()
}
