package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"taskhub/internal/auth"
	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	users     repository.UserRepositoryInterface
	jwtSecret string
}

func NewUserHandler(users repository.UserRepositoryInterface, jwtSecret string) *UserHandler {
	return &UserHandler{users: users, jwtSecret: jwtSecret}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	TaskCount int64     `json:"taskCount"`
}

func userResponse(user *model.User, taskCount int64) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		TaskCount: taskCount,
	}
}

// List returns the members of the caller's organization.
func (h *UserHandler) List(c *gin.Context) {
	_, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	users, err := h.users.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		log.Printf("users: list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		count, err := h.users.CountAssignedTasks(c.Request.Context(), users[i].ID)
		if err != nil {
			log.Printf("users: count tasks: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		response[i] = userResponse(&users[i], count)
	}

	c.JSON(http.StatusOK, response)
}

// Create adds a user to the caller's organization. Admin only.
func (h *UserHandler) Create(c *gin.Context) {
	sess, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}
	if sess.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can create users"})
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("users: find by email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("users: hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hash,
		Role:           role,
		OrganizationID: orgID,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		log.Printf("users: create: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, userResponse(user, 0))
}

// GetByID returns one member of the caller's organization. Users in a
// foreign organization look like missing ones.
func (h *UserHandler) GetByID(c *gin.Context) {
	_, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := h.users.GetByIDInOrg(c.Request.Context(), userID, orgID)
	if err != nil {
		log.Printf("users: get: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	count, err := h.users.CountAssignedTasks(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("users: count tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, userResponse(user, count))
}

// Update applies a partial update to a user. Admins may edit anyone in
// the organization; others may edit only themselves and may not change
// their own role. An absent or empty password never touches the stored
// hash.
func (h *UserHandler) Update(c *gin.Context) {
	sess, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := h.users.GetByIDInOrg(c.Request.Context(), userID, orgID)
	if err != nil {
		log.Printf("users: get: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	changesRole := req.Role != nil && *req.Role != user.Role
	if err := authorizeUserEdit(sess, user, changesRole); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to edit this user"})
		return
	}

	if req.Role != nil {
		if *req.Role != model.RoleAdmin && *req.Role != model.RoleUser {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		user.Role = *req.Role
	}
	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(*req.Email)
		if email != user.Email {
			existing, err := h.users.FindByEmail(c.Request.Context(), email)
			if err != nil {
				log.Printf("users: find by email: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
			if existing != nil {
				c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
				return
			}
			user.Email = email
		}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			log.Printf("users: hash password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		user.HashedPassword = hash
	}

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		log.Printf("users: update: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	count, err := h.users.CountAssignedTasks(c.Request.Context(), user.ID)
	if err != nil {
		count = 0
	}
	c.JSON(http.StatusOK, userResponse(user, count))
}
