package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/craftedbits/resumatch/internal/pkg/errcode"
	"github.com/craftedbits/resumatch/internal/pkg/response"
	"github.com/craftedbits/resumatch/internal/session"
)

const (
	// SessionTokenHeader carries the opaque token issued by POST /session.
	SessionTokenHeader = "X-Session-Token"

	ContextSessionKey = "session"
)

// SessionAuth resolves the session token into the request context. Unknown
// or missing tokens are rejected; sessions are only minted through the
// session endpoint, never implicitly here.
func SessionAuth(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			response.Error(c, errcode.ErrUnauthorized, "missing session token")
			c.Abort()
			return
		}
		sess, err := manager.Get(token)
		if err != nil {
			response.Error(c, errcode.ErrUnauthorized, "unknown session token")
			c.Abort()
			return
		}
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}
