package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/craftedbits/resumatch/internal/model"
	"github.com/craftedbits/resumatch/internal/pkg/errcode"
	"github.com/craftedbits/resumatch/internal/pkg/response"
	"github.com/craftedbits/resumatch/internal/service"
)

type ResumeHandler struct {
	resume *service.ResumeService
}

func NewResumeHandler(resume *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resume: resume}
}

type retrieveRequest struct {
	Query string         `json:"query"`
	Caps  map[string]int `json:"caps"`
}

type generateRequest struct {
	Query string `json:"query"`
}

// Retrieve returns the per-category ranked, deduplicated facts matching
// the job description, without running generation.
func (h *ResumeHandler) Retrieve(c *gin.Context) {
	var req retrieveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	overrides := make(map[model.Category]int, len(req.Caps))
	for name, limit := range req.Caps {
		category, err := model.ParseCategory(name)
		if err != nil {
			response.Error(c, errcode.ErrInvalid, "unknown category in caps")
			return
		}
		overrides[category] = limit
	}
	sess := getSession(c)
	results, err := h.resume.Retrieve(c.Request.Context(), sess, req.Query, overrides)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"results": results})
}

// Generate runs the full pipeline and returns the generated resume text.
func (h *ResumeHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	sess := getSession(c)
	text, err := h.resume.BuildDocument(c.Request.Context(), sess, req.Query)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"resume": text})
}
