package handler

import (
	"log"
	"net/http"
	"strings"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// defaultTeamName is created for every new organization at registration.
const defaultTeamName = "Default Team"

type AuthHandler struct {
	users  repository.UserRepositoryInterface
	orgs   repository.OrganizationRepositoryInterface
	issuer *auth.Issuer
	cfg    *config.Config
}

func NewAuthHandler(users repository.UserRepositoryInterface, orgs repository.OrganizationRepositoryInterface, issuer *auth.Issuer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, orgs: orgs, issuer: issuer, cfg: cfg}
}

type RegisterRequest struct {
	Name             string `json:"name" binding:"required,min=2"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	OrganizationName string `json:"organizationName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId"`
}

func userSummary(user *model.User) UserSummary {
	return UserSummary{
		ID:             user.ID.String(),
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID.String(),
	}
}

// Register creates a new organization with its founding admin user and a
// default team, then logs the admin in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("register: find by email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	org := &model.Organization{
		ID:   uuid.New(),
		Name: req.OrganizationName,
	}
	admin := &model.User{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hash,
		Role:           model.RoleAdmin,
		OrganizationID: org.ID,
	}
	team := &model.Team{
		ID:             uuid.New(),
		Name:           defaultTeamName,
		OrganizationID: org.ID,
	}
	membership := &model.TeamMember{
		ID:     uuid.New(),
		TeamID: team.ID,
		UserID: admin.ID,
		Role:   model.TeamRoleLead,
	}

	if err := h.orgs.Register(c.Request.Context(), org, admin, team, membership); err != nil {
		log.Printf("register: persist tenant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	token, err := h.issuer.Issue(c.Request.Context(), admin.ID)
	if err != nil {
		log.Printf("register: issue session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}
	auth.SetSessionCookie(c, token, h.cfg.Production())

	c.JSON(http.StatusCreated, userSummary(admin))
}

// Login checks credentials and issues a session. Unknown email and
// wrong password are deliberately indistinguishable to the client.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("login: find by email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.issuer.Issue(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("login: issue session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}
	auth.SetSessionCookie(c, token, h.cfg.Production())

	c.JSON(http.StatusOK, userSummary(user))
}

// Logout clears the session cookie. The signed token itself cannot be
// invalidated before its expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.cfg.Production())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session echoes the caller's session claims, or null when there is no
// valid session.
func (h *AuthHandler) Session(c *gin.Context) {
	sess := auth.SessionFromRequest(c, h.cfg.JWTSecret)
	if sess == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess})
}
