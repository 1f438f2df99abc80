package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"domainhost/internal/domain"
	accountsvc "domainhost/internal/service/account"
)

const (
	sessionCookie = "sid"
	tokenCookie   = "token"

	ctxSessionID = "sessionID"
	ctxUser      = "user"
)

// sessionMiddleware ensures every caller has a stable session id. The cart is
// keyed on it, so the cookie must exist before login.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, 30*24*3600, "/", "", false, true)
		}
		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

// identifyUser resolves the login token, when present, into a user. Requests
// without a valid token pass through anonymously; requireUser gates the
// routes that need one.
func identifyUser(accounts *accountsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie(tokenCookie)
		}
		if token != "" {
			if u, err := accounts.LookupByToken(c.Request.Context(), token); err == nil {
				c.Set(ctxUser, u)
			}
		}
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil || !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if v, ok := c.Get(ctxSessionID); ok {
		return v.(string)
	}
	return ""
}

func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxUser); ok {
		return v.(*domain.User)
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
