package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long a signed session token stays valid. There is no
// revocation path: the token authorizes requests until this expires.
const TokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity snapshot embedded in the session cookie.
// Role and organization changes after issuance are not reflected here
// until the user logs in again.
type Claims struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId"`
	jwt.RegisteredClaims
}

// SignToken mints an HS256 token carrying the claims, stamped with
// issued-at now and expiry now+TokenTTL.
func SignToken(secret string, claims Claims) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(TokenTTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken checks signature and expiry and returns the embedded
// claims. It never touches the datastore, so it is safe to call from the
// request gate where no database handle is available.
func VerifyToken(secret, raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
