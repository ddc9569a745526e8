package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/craftedbits/resumatch/internal/middleware"
	"github.com/craftedbits/resumatch/internal/pkg/errcode"
	"github.com/craftedbits/resumatch/internal/pkg/response"
	"github.com/craftedbits/resumatch/internal/session"
)

type SessionHandler struct {
	sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// GetOrCreate issues a session. Calling it again with the issued token in
// the header returns the same owner id.
func (h *SessionHandler) GetOrCreate(c *gin.Context) {
	token := c.GetHeader(middleware.SessionTokenHeader)
	sess, created := h.sessions.GetOrCreate(token)
	response.Success(c, gin.H{
		"token":    sess.Token,
		"owner_id": sess.OwnerID,
		"created":  created,
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess := getSession(c)
	response.Success(c, gin.H{
		"owner_id": sess.OwnerID,
		"ready":    sess.Ready,
		"identity": sess.Identity,
	})
}

type setIdentityRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (h *SessionHandler) SetIdentity(c *gin.Context) {
	var req setIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	sess := getSession(c)
	updated, err := h.sessions.SetIdentity(sess.Token, req.Name, req.Contact)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"owner_id": updated.OwnerID,
		"ready":    updated.Ready,
		"identity": updated.Identity,
	})
}
