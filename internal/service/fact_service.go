package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/craftedbits/resumatch/internal/ai"
	"github.com/craftedbits/resumatch/internal/model"
	appErr "github.com/craftedbits/resumatch/internal/pkg/errors"
	"github.com/craftedbits/resumatch/internal/vecstore"
)

// FactService turns raw per-category text blocks into embedded, indexed
// fact records. One fact per non-blank line; no dedup at ingest time, so
// re-saving the same block grows the index (duplicates are hidden at
// retrieval time instead).
type FactService struct {
	manager *ai.Manager
	index   vecstore.Index
}

func NewFactService(manager *ai.Manager, index vecstore.Index) *FactService {
	return &FactService{manager: manager, index: index}
}

func (s *FactService) Ingest(ctx context.Context, ownerID string, category model.Category, rawText string) ([]model.Fact, error) {
	if ownerID == "" {
		return nil, appErr.ErrInvalid
	}
	contents := splitLines(rawText)
	if len(contents) == 0 {
		return nil, appErr.ErrInvalid
	}
	logger := logutil.GetLogger(ctx).With(zap.String("owner_id", ownerID), zap.String("category", category.String()))

	vectors, err := s.manager.EmbedBatch(ctx, contents, ai.TaskRetrievalDocument)
	if err != nil {
		logger.Error("failed to embed facts", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", appErr.ErrStoreUnavailable, err)
	}

	now := time.Now().UnixMilli()
	facts := make([]model.Fact, 0, len(contents))
	docs := make([]vecstore.Document, 0, len(contents))
	for i, content := range contents {
		fact := model.Fact{
			ID:       uuid.NewString(),
			OwnerID:  ownerID,
			Category: category,
			Content:  content,
			Ctime:    now,
		}
		facts = append(facts, fact)
		docs = append(docs, vecstore.Document{
			ID:        fact.ID,
			OwnerID:   fact.OwnerID,
			Category:  fact.Category,
			Content:   fact.Content,
			Embedding: vectors[i],
			Ctime:     fact.Ctime,
		})
	}
	if err := s.index.Upsert(ctx, docs); err != nil {
		logger.Error("failed to upsert facts", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", appErr.ErrStoreUnavailable, err)
	}
	logger.Info("facts ingested", zap.Int("count", len(facts)))
	return facts, nil
}

// splitLines breaks a block into trimmed non-blank lines, one fact each.
func splitLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
