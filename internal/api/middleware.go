package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/policy"
	"github.com/rakibul58/mpms-backend/internal/token"
)

const actorKey = "actor"

// Authenticate verifies the access token from the Authorization header or
// the accessToken cookie and stores the actor on the request context.
func Authenticate(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			writeError(c, domain.Unauthorized("access token is required"), false)
			return
		}

		claims, err := tokens.VerifyAccess(tokenString)
		if err != nil {
			writeError(c, err, false)
			return
		}

		c.Set(actorKey, domain.Actor{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// requireAction applies the role gate for an action before the handler
// runs.
func requireAction(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.Authorize(actorFrom(c), action); err != nil {
			writeError(c, err, false)
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie
	}
	return ""
}
