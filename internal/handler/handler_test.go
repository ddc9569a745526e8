package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/craftedbits/resumatch/internal/ai"
	"github.com/craftedbits/resumatch/internal/handler"
	"github.com/craftedbits/resumatch/internal/middleware"
	"github.com/craftedbits/resumatch/internal/model"
	"github.com/craftedbits/resumatch/internal/pkg/errcode"
	"github.com/craftedbits/resumatch/internal/service"
	"github.com/craftedbits/resumatch/internal/session"
	"github.com/craftedbits/resumatch/internal/vecstore"
)

type fixedEmbedder struct{}

func (fixedEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (fixedEmbedder) EmbedBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for range texts {
		vectors = append(vectors, []float32{1, 0})
	}
	return vectors, nil
}

func (fixedEmbedder) ModelName() string {
	return "fixed-embed"
}

type fixedGenerator struct {
	output string
}

func (g fixedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.output, nil
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	index := vecstore.NewMemoryIndex()
	manager := ai.NewManager(fixedGenerator{output: "generated resume"}, fixedEmbedder{}, ai.ManagerConfig{})
	sessions := session.NewManager(time.Hour)
	factService := service.NewFactService(manager, index)
	retrievalService := service.NewRetrievalService(manager, index)
	caps := map[model.Category]int{
		model.CategorySkill:      10,
		model.CategoryExperience: 10,
		model.CategoryEducation:  2,
		model.CategoryProject:    2,
	}
	resumeService := service.NewResumeService(retrievalService, manager, caps)

	deps := handler.RouterDeps{
		Sessions: sessions,
		Session:  handler.NewSessionHandler(sessions),
		Facts:    handler.NewFactHandler(factService),
		Resume:   handler.NewResumeHandler(resumeService),
	}
	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
	)
	require.NoError(t, err)
	return engine
}

type envelope struct {
	Code int                    `json:"code"`
	Msg  string                 `json:"msg"`
	Data map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.SessionTokenHeader, token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	var result envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	return result
}

func TestResumeFlow(t *testing.T) {
	router := setupRouter(t)

	created := doJSON(t, router, http.MethodPost, "/api/v1/session", "", nil)
	token, _ := created.Data["token"].(string)
	require.NotEmpty(t, token)
	require.Equal(t, true, created.Data["created"])

	// Same token, same owner.
	again := doJSON(t, router, http.MethodPost, "/api/v1/session", token, nil)
	require.Equal(t, created.Data["owner_id"], again.Data["owner_id"])
	require.Equal(t, false, again.Data["created"])

	// Retrieval is gated until the identity is committed.
	blocked := doJSON(t, router, http.MethodPost, "/api/v1/retrieve", token, map[string]string{"query": "backend role"})
	require.Equal(t, int(errcode.ErrIdentityNotSet), blocked.Code)

	identity := doJSON(t, router, http.MethodPut, "/api/v1/session/identity", token, map[string]string{
		"name":    "Ada Lovelace",
		"contact": "ada@example.com",
	})
	require.Equal(t, true, identity.Data["ready"])

	ingested := doJSON(t, router, http.MethodPost, "/api/v1/facts", token, map[string]string{
		"category": "skill",
		"text":     "Go\nPostgreSQL",
	})
	facts, _ := ingested.Data["facts"].([]interface{})
	require.Len(t, facts, 2)

	retrieved := doJSON(t, router, http.MethodPost, "/api/v1/retrieve", token, map[string]string{"query": "backend role"})
	results, _ := retrieved.Data["results"].(map[string]interface{})
	skills, _ := results["skill"].([]interface{})
	require.Len(t, skills, 2)

	resume := doJSON(t, router, http.MethodPost, "/api/v1/resume", token, map[string]string{"query": "backend role"})
	require.Equal(t, "generated resume", resume.Data["resume"])
}

func TestAuthRequiredOnProtectedRoutes(t *testing.T) {
	router := setupRouter(t)

	missing := doJSON(t, router, http.MethodPost, "/api/v1/facts", "", map[string]string{"category": "skill", "text": "Go"})
	require.Equal(t, int(errcode.ErrUnauthorized), missing.Code)

	unknown := doJSON(t, router, http.MethodGet, "/api/v1/session", "bogus-token", nil)
	require.Equal(t, int(errcode.ErrUnauthorized), unknown.Code)
}

func TestIngestRejectsUnknownCategory(t *testing.T) {
	router := setupRouter(t)
	created := doJSON(t, router, http.MethodPost, "/api/v1/session", "", nil)
	token, _ := created.Data["token"].(string)

	result := doJSON(t, router, http.MethodPost, "/api/v1/facts", token, map[string]string{
		"category": "hobby",
		"text":     "Go",
	})
	require.Equal(t, int(errcode.ErrInvalid), result.Code)
}
