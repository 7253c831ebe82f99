package handler_test

import (
	"context"
	"net/http"
	"testing"

	"taskhub/internal/auth"
	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret-key"

// Мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id, orgID)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, orgID)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountAssignedTasks(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Mock репозитория организаций
type MockOrganizationRepository struct {
	mock.Mock
}

var _ repository.OrganizationRepositoryInterface = (*MockOrganizationRepository)(nil)

func (m *MockOrganizationRepository) Register(ctx context.Context, org *model.Organization, admin *model.User, team *model.Team, membership *model.TeamMember) error {
	args := m.Called(ctx, org, admin, team, membership)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	args := m.Called(ctx, id)
	org := args.Get(0)
	if org == nil {
		return nil, args.Error(1)
	}
	return org.(*model.Organization), args.Error(1)
}

// Mock репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

var _ repository.TaskRepositoryInterface = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, filter repository.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, orgID, filter)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock репозитория команд
type MockTeamRepository struct {
	mock.Mock
}

var _ repository.TeamRepositoryInterface = (*MockTeamRepository)(nil)

func (m *MockTeamRepository) Create(ctx context.Context, team *model.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByIDInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.Team, error) {
	args := m.Called(ctx, id, orgID)
	team := args.Get(0)
	if team == nil {
		return nil, args.Error(1)
	}
	return team.(*model.Team), args.Error(1)
}

func (m *MockTeamRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Team, error) {
	args := m.Called(ctx, orgID)
	teams := args.Get(0)
	if teams == nil {
		return nil, args.Error(1)
	}
	return teams.([]model.Team), args.Error(1)
}

func (m *MockTeamRepository) AddMember(ctx context.Context, member *model.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// Mock хранилища сессий
type MockSessionStore struct {
	mock.Mock
}

var _ auth.SessionStore = (*MockSessionStore)(nil)

func (m *MockSessionStore) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// signedCookie возвращает cookie с подписанным токеном сессии
func signedCookie(t *testing.T, claims auth.Claims) *http.Cookie {
	token, err := auth.SignToken(testSecret, claims)
	assert.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}
