package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/craftedbits/resumatch/internal/ai"
	"github.com/craftedbits/resumatch/internal/model"
	appErr "github.com/craftedbits/resumatch/internal/pkg/errors"
)

// ResumeService chains the pipeline end to end: gate on a committed
// identity, retrieve per category, compose the prompt, generate prose.
type ResumeService struct {
	retrieval *RetrievalService
	manager   *ai.Manager
	caps      map[model.Category]int
}

func NewResumeService(retrieval *RetrievalService, manager *ai.Manager, caps map[model.Category]int) *ResumeService {
	return &ResumeService{retrieval: retrieval, manager: manager, caps: caps}
}

// Retrieve runs the gated retrieval step alone. Per-category overrides, when
// given, replace the configured caps for those categories only.
func (s *ResumeService) Retrieve(ctx context.Context, sess model.Session, queryText string, overrides map[model.Category]int) (map[model.Category][]model.Fact, error) {
	if !sess.Ready {
		return nil, appErr.ErrIdentityNotSet
	}
	return s.retrieval.Retrieve(ctx, sess.OwnerID, queryText, s.effectiveCaps(overrides))
}

func (s *ResumeService) effectiveCaps(overrides map[model.Category]int) map[model.Category]int {
	if len(overrides) == 0 {
		return s.caps
	}
	caps := make(map[model.Category]int, len(s.caps))
	for category, limit := range s.caps {
		caps[category] = limit
	}
	for category, limit := range overrides {
		caps[category] = limit
	}
	return caps
}

// BuildDocument produces the final resume text for the session's committed
// identity against the given job description.
func (s *ResumeService) BuildDocument(ctx context.Context, sess model.Session, queryText string) (string, error) {
	if !sess.Ready {
		return "", appErr.ErrIdentityNotSet
	}
	if strings.TrimSpace(queryText) == "" {
		return "", appErr.ErrInvalid
	}
	logger := logutil.GetLogger(ctx).With(zap.String("owner_id", sess.OwnerID))

	results, err := s.retrieval.Retrieve(ctx, sess.OwnerID, queryText, s.caps)
	if err != nil {
		return "", err
	}
	prompt := ComposePrompt(sess.Identity, results, queryText)
	text, err := s.manager.Generate(ctx, prompt)
	if err != nil {
		logger.Error("failed to generate resume", zap.Error(err))
		return "", fmt.Errorf("%w: %v", appErr.ErrGenerationUnavailable, err)
	}
	logger.Info("resume generated", zap.Int("prompt_chars", len(prompt)), zap.Int("output_chars", len(text)))
	return text, nil
}
