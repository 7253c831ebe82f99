package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/handler"
	"taskhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthTest() (*gin.Engine, *MockUserRepository, *MockOrganizationRepository, *MockSessionStore) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	mockUsers := new(MockUserRepository)
	mockOrgs := new(MockOrganizationRepository)
	mockSessions := new(MockSessionStore)

	cfg := &config.Config{JWTSecret: testSecret, AppEnv: "development"}
	issuer := auth.NewIssuer(mockUsers, mockSessions, testSecret)
	authHandler := handler.NewAuthHandler(mockUsers, mockOrgs, issuer, cfg)

	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/logout", authHandler.Logout)
	r.GET("/api/auth/session", authHandler.Session)

	return r, mockUsers, mockOrgs, mockSessions
}

func TestRegister_Success(t *testing.T) {
	router, mockUsers, mockOrgs, mockSessions := setupAuthTest()

	orgID := uuid.New()
	adminID := uuid.New()

	mockUsers.On("FindByEmail", mock.Anything, "alice@acme.test").Return(nil, nil)
	mockOrgs.On("Register", mock.Anything,
		mock.AnythingOfType("*model.Organization"),
		mock.AnythingOfType("*model.User"),
		mock.AnythingOfType("*model.Team"),
		mock.AnythingOfType("*model.TeamMember"),
	).Return(nil)
	// Эмитент сессии перечитывает пользователя и пишет серверную запись
	mockUsers.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(&model.User{
		ID:             adminID,
		Name:           "Alice",
		Email:          "alice@acme.test",
		Role:           model.RoleAdmin,
		OrganizationID: orgID,
	}, nil)
	mockSessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)

	reqBody := handler.RegisterRequest{
		Name:             "Alice",
		Email:            "alice@acme.test",
		Password:         "password123",
		OrganizationName: "Acme",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.UserSummary
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "Alice", response.Name)
	assert.Equal(t, "alice@acme.test", response.Email)
	assert.Equal(t, model.RoleAdmin, response.Role)

	// Вход выполняется сразу: кука с подписанным токеном установлена
	cookies := resp.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	claims, err := auth.VerifyToken(testSecret, sessionCookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, orgID.String(), claims.OrganizationID)

	mockUsers.AssertExpectations(t)
	mockOrgs.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	router, mockUsers, mockOrgs, _ := setupAuthTest()

	// Нет organizationName
	jsonBody := []byte(`{"name":"Alice","email":"alice@acme.test","password":"password123"}`)
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockOrgs.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, mockUsers, mockOrgs, _ := setupAuthTest()

	existing := &model.User{
		ID:    uuid.New(),
		Email: "existing@acme.test",
	}
	mockUsers.On("FindByEmail", mock.Anything, "existing@acme.test").Return(existing, nil)

	reqBody := handler.RegisterRequest{
		Name:             "Alice",
		Email:            "existing@acme.test",
		Password:         "password123",
		OrganizationName: "Acme",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "User with this email already exists", response["error"])

	// Конфликт не оставляет частично созданного арендатора
	mockOrgs.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockUsers.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	router, mockUsers, _, mockSessions := setupAuthTest()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &model.User{
		ID:             uuid.New(),
		Name:           "Alice",
		Email:          "alice@acme.test",
		HashedPassword: string(hashed),
		Role:           model.RoleAdmin,
		OrganizationID: uuid.New(),
	}
	mockUsers.On("FindByEmail", mock.Anything, "alice@acme.test").Return(user, nil)
	mockUsers.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	mockSessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)

	reqBody := handler.LoginRequest{Email: "alice@acme.test", Password: "password123"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.UserSummary
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, user.ID.String(), response.ID)

	mockUsers.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	router, mockUsers, _, _ := setupAuthTest()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)
	user := &model.User{
		ID:             uuid.New(),
		Email:          "alice@acme.test",
		HashedPassword: string(hashed),
		OrganizationID: uuid.New(),
	}
	mockUsers.On("FindByEmail", mock.Anything, "alice@acme.test").Return(user, nil)

	reqBody := handler.LoginRequest{Email: "alice@acme.test", Password: "wrong_password"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "Invalid credentials", response["error"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	router, mockUsers, _, _ := setupAuthTest()

	mockUsers.On("FindByEmail", mock.Anything, "nobody@acme.test").Return(nil, nil)

	reqBody := handler.LoginRequest{Email: "nobody@acme.test", Password: "password123"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Неизвестный email неотличим от неверного пароля
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "Invalid credentials", response["error"])
}

func TestLogout_ClearsCookie(t *testing.T) {
	router, _, _, _ := setupAuthTest()

	req, _ := http.NewRequest("POST", "/api/auth/logout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	cookies := resp.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
	assert.Less(t, sessionCookie.MaxAge, 0)
}

func TestSession_ReturnsClaims(t *testing.T) {
	router, _, _, _ := setupAuthTest()

	orgID := uuid.New()
	req, _ := http.NewRequest("GET", "/api/auth/session", nil)
	req.AddCookie(signedCookie(t, auth.Claims{
		ID:             uuid.New().String(),
		Name:           "Alice",
		Email:          "alice@acme.test",
		Role:           model.RoleAdmin,
		OrganizationID: orgID.String(),
	}))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "alice@acme.test")
	assert.Contains(t, resp.Body.String(), orgID.String())
}

func TestSession_NullWithoutCookie(t *testing.T) {
	router, _, _, _ := setupAuthTest()

	req, _ := http.NewRequest("GET", "/api/auth/session", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "null", resp.Body.String())
}
