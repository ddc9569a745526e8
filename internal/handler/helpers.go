package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/craftedbits/resumatch/internal/middleware"
	"github.com/craftedbits/resumatch/internal/model"
	"github.com/craftedbits/resumatch/internal/pkg/errcode"
	appErr "github.com/craftedbits/resumatch/internal/pkg/errors"
	"github.com/craftedbits/resumatch/internal/pkg/response"
)

func getSession(c *gin.Context) model.Session {
	value, _ := c.Get(middleware.ContextSessionKey)
	sess, _ := value.(model.Session)
	return sess
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Warn("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrIdentityNotSet):
		response.Error(c, errcode.ErrIdentityNotSet, "identity not set")
	case errors.Is(err, appErr.ErrStoreUnavailable):
		response.Error(c, errcode.ErrStoreUnavailable, "fact store unavailable")
	case errors.Is(err, appErr.ErrRetrievalUnavailable):
		response.Error(c, errcode.ErrRetrievalUnavailable, "retrieval unavailable")
	case errors.Is(err, appErr.ErrGenerationUnavailable):
		response.Error(c, errcode.ErrGenerationUnavailable, "generation unavailable")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
