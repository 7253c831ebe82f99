package handler

import (
	"log"
	"net/http"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamHandler struct {
	teams     repository.TeamRepositoryInterface
	jwtSecret string
}

func NewTeamHandler(teams repository.TeamRepositoryInterface, jwtSecret string) *TeamHandler {
	return &TeamHandler{teams: teams, jwtSecret: jwtSecret}
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type TeamMemberResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type TeamResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	OrganizationID string               `json:"organizationId"`
	CreatedAt      time.Time            `json:"createdAt"`
	Members        []TeamMemberResponse `json:"members"`
}

func teamResponse(team *model.Team) TeamResponse {
	members := make([]TeamMemberResponse, len(team.Members))
	for i, m := range team.Members {
		members[i] = TeamMemberResponse{
			ID:     m.ID.String(),
			UserID: m.UserID.String(),
			Name:   m.User.Name,
			Role:   m.Role,
		}
	}
	return TeamResponse{
		ID:             team.ID.String(),
		Name:           team.Name,
		OrganizationID: team.OrganizationID.String(),
		CreatedAt:      team.CreatedAt,
		Members:        members,
	}
}

// List returns the teams of the caller's organization with their members.
func (h *TeamHandler) List(c *gin.Context) {
	_, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	teams, err := h.teams.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		log.Printf("teams: list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teams"})
		return
	}

	response := make([]TeamResponse, len(teams))
	for i := range teams {
		response[i] = teamResponse(&teams[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create adds a team to the caller's organization. Admin only.
func (h *TeamHandler) Create(c *gin.Context) {
	sess, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}
	if sess.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can create teams"})
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	team := &model.Team{
		ID:             uuid.New(),
		Name:           req.Name,
		OrganizationID: orgID,
	}
	if err := h.teams.Create(c.Request.Context(), team); err != nil {
		log.Printf("teams: create: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, teamResponse(team))
}
