package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"taskhub/internal/model"

	"github.com/google/uuid"
)

// ErrUnknownUser is returned when the user to issue a session for no
// longer exists (raced with a concurrent deletion). Callers surface it
// as an authentication failure.
var ErrUnknownUser = errors.New("unknown user")

// UserSource is the slice of the user repository the issuer needs.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// SessionStore persists the server-side session records.
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
}

// Issuer mints signed session tokens and records each issuance as an
// opaque server-side session row.
type Issuer struct {
	users    UserSource
	sessions SessionStore
	secret   string
}

func NewIssuer(users UserSource, sessions SessionStore, secret string) *Issuer {
	return &Issuer{users: users, sessions: sessions, secret: secret}
}

// Issue loads the user's public claims, persists an opaque session row
// and returns a signed token snapshotting {id, name, email, role,
// organizationId}. The row is never consulted on requests; the signed
// token alone authorizes them.
func (i *Issuer) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := i.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUnknownUser
	}

	opaque, err := randomToken()
	if err != nil {
		return "", err
	}
	session := &model.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     opaque,
		ExpiresAt: time.Now().Add(TokenTTL),
	}
	if err := i.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	return SignToken(i.secret, Claims{
		ID:             user.ID.String(),
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID.String(),
	})
}

// randomToken returns 256 bits of CSPRNG entropy, hex encoded.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
