package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/craftedbits/resumatch/internal/ai"
	"github.com/craftedbits/resumatch/internal/config"
	"github.com/craftedbits/resumatch/internal/model"
	appErr "github.com/craftedbits/resumatch/internal/pkg/errors"
	"github.com/craftedbits/resumatch/internal/vecstore"
)

// RetrievalService answers "which of this owner's facts match this job
// description" per category. The query is embedded exactly once and the
// category lookups fan out concurrently against that shared vector.
type RetrievalService struct {
	manager *ai.Manager
	index   vecstore.Index
}

func NewRetrievalService(manager *ai.Manager, index vecstore.Index) *RetrievalService {
	return &RetrievalService{manager: manager, index: index}
}

// CapsFromConfig maps the configured per-category top-k values into the
// caps argument Retrieve expects.
func CapsFromConfig(cfg config.RetrievalConfig) map[model.Category]int {
	return map[model.Category]int{
		model.CategorySkill:      cfg.SkillTopK,
		model.CategoryExperience: cfg.ExperienceTopK,
		model.CategoryEducation:  cfg.EducationTopK,
		model.CategoryProject:    cfg.ProjectTopK,
	}
}

func (s *RetrievalService) Retrieve(ctx context.Context, ownerID, queryText string, caps map[model.Category]int) (map[model.Category][]model.Fact, error) {
	if ownerID == "" || strings.TrimSpace(queryText) == "" {
		return nil, appErr.ErrInvalid
	}
	logger := logutil.GetLogger(ctx).With(zap.String("owner_id", ownerID))

	queryVector, err := s.manager.Embed(ctx, queryText, ai.TaskRetrievalQuery)
	if err != nil {
		logger.Error("failed to embed query", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", appErr.ErrRetrievalUnavailable, err)
	}

	results := make(map[model.Category][]model.Fact, len(caps))
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	for category, limit := range caps {
		if limit <= 0 {
			continue
		}
		category, limit := category, limit
		group.Go(func() error {
			matches, err := s.index.Query(groupCtx, queryVector, vecstore.Filter{
				OwnerID:  ownerID,
				Category: category,
			}, limit)
			if err != nil {
				return fmt.Errorf("%w: query %s: %v", appErr.ErrRetrievalUnavailable, category, err)
			}
			facts := dedupeMatches(matches)
			mu.Lock()
			results[category] = facts
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		logger.Error("retrieval failed", zap.Error(err))
		return nil, err
	}
	for category, facts := range results {
		logger.Debug("category retrieved", zap.String("category", category.String()), zap.Int("count", len(facts)))
	}
	return results, nil
}

// dedupeMatches keeps the first occurrence of each distinct content in
// ranked order. The cap is not backfilled after drops, so a category may
// return fewer facts than requested.
func dedupeMatches(matches []vecstore.Match) []model.Fact {
	seen := make(map[string]bool, len(matches))
	facts := make([]model.Fact, 0, len(matches))
	for _, match := range matches {
		if seen[match.Content] {
			continue
		}
		seen[match.Content] = true
		facts = append(facts, model.Fact{
			ID:       match.ID,
			OwnerID:  match.OwnerID,
			Category: match.Category,
			Content:  match.Content,
		})
	}
	return facts
}
