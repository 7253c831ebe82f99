package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session_token"

const sessionCookieMaxAge = int(TokenTTL / time.Second)

// SetSessionCookie writes the signed token as an http-only, same-site
// lax cookie on the whole site. secure should be true in production.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, sessionCookieMaxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

// SessionFromRequest re-derives the caller's identity from the session
// cookie. An absent, malformed, tampered or expired cookie yields nil,
// never an error.
func SessionFromRequest(c *gin.Context, secret string) *Claims {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		return nil
	}
	claims, err := VerifyToken(secret, raw)
	if err != nil {
		return nil
	}
	return claims
}
