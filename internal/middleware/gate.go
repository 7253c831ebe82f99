package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"taskhub/internal/auth"

	"github.com/gin-gonic/gin"
)

// Paths reachable without a session. Everything else is protected by
// default. The session endpoints are listed so an anonymous client can
// ask "who am I" and get null instead of a redirect.
var publicPaths = []string{
	"/login",
	"/register",
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/logout",
	"/api/auth/session",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// RequestGate fronts every route. Protected requests without a
// verifiable session cookie are redirected to the login page with the
// original path preserved. The gate verifies the token signature only
// and never injects identity: handlers re-derive the session themselves.
func RequestGate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		if auth.SessionFromRequest(c, jwtSecret) == nil {
			location := "/login?redirect=" + url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, location)
			c.Abort()
			return
		}

		c.Next()
	}
}
