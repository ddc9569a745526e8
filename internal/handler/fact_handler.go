package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/craftedbits/resumatch/internal/model"
	"github.com/craftedbits/resumatch/internal/pkg/errcode"
	"github.com/craftedbits/resumatch/internal/pkg/response"
	"github.com/craftedbits/resumatch/internal/service"
)

type FactHandler struct {
	facts *service.FactService
}

func NewFactHandler(facts *service.FactService) *FactHandler {
	return &FactHandler{facts: facts}
}

type ingestRequest struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Ingest saves one category block: one fact per non-blank line.
func (h *FactHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		response.Error(c, errcode.ErrInvalid, "unknown category")
		return
	}
	sess := getSession(c)
	facts, err := h.facts.Ingest(c.Request.Context(), sess.OwnerID, category, req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"facts": facts})
}
