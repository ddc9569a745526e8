package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/craftedbits/resumatch/internal/middleware"
	"github.com/craftedbits/resumatch/internal/session"
)

type RouterDeps struct {
	Sessions *session.Manager
	Session  *SessionHandler
	Facts    *FactHandler
	Resume   *ResumeHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/session", deps.Session.GetOrCreate)

	authGroup := api.Group("")
	authGroup.Use(middleware.SessionAuth(deps.Sessions))
	authGroup.GET("/session", deps.Session.Get)
	authGroup.PUT("/session/identity", deps.Session.SetIdentity)
	authGroup.POST("/facts", deps.Facts.Ingest)
	authGroup.POST("/retrieve", deps.Resume.Retrieve)
	authGroup.POST("/resume", deps.Resume.Generate)
}
