package auth_test

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/auth"
	"taskhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubUserSource struct {
	user *model.User
	err  error
}

func (s *stubUserSource) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.user, s.err
}

type capturingSessionStore struct {
	created *model.Session
	err     error
}

func (s *capturingSessionStore) Create(ctx context.Context, session *model.Session) error {
	s.created = session
	return s.err
}

func TestIssuer_Issue(t *testing.T) {
	orgID := uuid.New()
	user := &model.User{
		ID:             uuid.New(),
		Name:           "Alice",
		Email:          "alice@acme.test",
		Role:           model.RoleAdmin,
		OrganizationID: orgID,
	}
	sessions := &capturingSessionStore{}
	issuer := auth.NewIssuer(&stubUserSource{user: user}, sessions, testSecret)

	token, err := issuer.Issue(context.Background(), user.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Подписанный токен несёт снимок публичных полей пользователя
	claims, err := auth.VerifyToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.ID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, orgID.String(), claims.OrganizationID)

	// Параллельно записана непрозрачная серверная сессия
	assert.NotNil(t, sessions.created)
	assert.Equal(t, user.ID, sessions.created.UserID)
	assert.Len(t, sessions.created.Token, 64) // 32 байта в hex
	assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), sessions.created.ExpiresAt, 5*time.Second)
}

func TestIssuer_Issue_UnknownUser(t *testing.T) {
	issuer := auth.NewIssuer(&stubUserSource{}, &capturingSessionStore{}, testSecret)

	_, err := issuer.Issue(context.Background(), uuid.New())
	assert.ErrorIs(t, err, auth.ErrUnknownUser)
}

func TestIssuer_Issue_UniqueOpaqueTokens(t *testing.T) {
	user := &model.User{ID: uuid.New(), Name: "Bob", Email: "bob@acme.test", Role: model.RoleUser, OrganizationID: uuid.New()}
	sessions := &capturingSessionStore{}
	issuer := auth.NewIssuer(&stubUserSource{user: user}, sessions, testSecret)

	_, err := issuer.Issue(context.Background(), user.ID)
	assert.NoError(t, err)
	first := sessions.created.Token

	_, err = issuer.Issue(context.Background(), user.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, first, sessions.created.Token)
}
