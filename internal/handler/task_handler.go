package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks     repository.TaskRepositoryInterface
	users     repository.UserRepositoryInterface
	teams     repository.TeamRepositoryInterface
	jwtSecret string
}

func NewTaskHandler(
	tasks repository.TaskRepositoryInterface,
	users repository.UserRepositoryInterface,
	teams repository.TeamRepositoryInterface,
	jwtSecret string,
) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		users:     users,
		teams:     teams,
		jwtSecret: jwtSecret,
	}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID  string `json:"assigneeId" binding:"required,uuid"`
	TeamID      string `json:"teamId" binding:"omitempty,uuid"`
}

// UpdateTaskRequest is a partial update: nil means "leave untouched".
// An empty teamId detaches the task from its team.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID  *string `json:"assigneeId"`
	TeamID      *string `json:"teamId"`
}

type TaskUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TaskTeamResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	Assignee    TaskUserResponse  `json:"assignee"`
	CreatedBy   TaskUserResponse  `json:"createdBy"`
	Team        *TaskTeamResponse `json:"team"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func taskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Assignee: TaskUserResponse{
			ID:    task.Assignee.ID.String(),
			Name:  task.Assignee.Name,
			Email: task.Assignee.Email,
		},
		CreatedBy: TaskUserResponse{
			ID:    task.Creator.ID.String(),
			Name:  task.Creator.Name,
			Email: task.Creator.Email,
		},
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if task.Team != nil {
		resp.Team = &TaskTeamResponse{
			ID:   task.Team.ID.String(),
			Name: task.Team.Name,
		}
	}
	return resp
}

// List returns the tasks of the caller's organization, optionally
// filtered by assignee, status and team.
func (h *TaskHandler) List(c *gin.Context) {
	_, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	var filter repository.TaskFilter
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId filter"})
			return
		}
		filter.AssigneeID = &id
	}
	if raw := c.Query("teamId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teamId filter"})
			return
		}
		filter.TeamID = &id
	}
	filter.Status = c.Query("status")

	tasks, err := h.tasks.ListByOrganization(c.Request.Context(), orgID, filter)
	if err != nil {
		log.Printf("tasks: list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create creates a task assigned to a user in the caller's organization.
func (h *TaskHandler) Create(c *gin.Context) {
	sess, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	assigneeID, err := uuid.Parse(req.AssigneeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
		return
	}
	assignee, err := h.users.GetByIDInOrg(c.Request.Context(), assigneeID, orgID)
	if err != nil {
		log.Printf("tasks: resolve assignee: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	if assignee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or not in your organization"})
		return
	}

	var team *model.Team
	var teamID *uuid.UUID
	if req.TeamID != "" {
		id, err := uuid.Parse(req.TeamID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
			return
		}
		team, err = h.teams.GetByIDInOrg(c.Request.Context(), id, orgID)
		if err != nil {
			log.Printf("tasks: resolve team: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
			return
		}
		if team == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found or not in your organization"})
			return
		}
		teamID = &id
	}

	status := req.Status
	if status == "" {
		status = model.StatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	creatorID, err := uuid.Parse(sess.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  assignee.ID,
		CreatedByID: creatorID,
		TeamID:      teamID,
	}
	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		log.Printf("tasks: create: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	task.Assignee = *assignee
	task.Creator = model.User{ID: creatorID, Name: sess.Name, Email: sess.Email}
	task.Team = team

	c.JSON(http.StatusCreated, taskResponse(task))
}

// GetByID returns one task. Tasks whose assignee belongs to a foreign
// organization are reported as missing.
func (h *TaskHandler) GetByID(c *gin.Context) {
	sess, _, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("tasks: get: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	if err := authorizeTaskRead(sess, task); err != nil {
		respondTaskAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Update applies a partial update: only fields present in the body
// change. Assignee and team references are re-validated against the
// caller's organization before anything is persisted.
func (h *TaskHandler) Update(c *gin.Context) {
	sess, orgID, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("tasks: get: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}
	if err := authorizeTaskRead(sess, task); err != nil {
		respondTaskAccessError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.AssigneeID != nil {
		id, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		assignee, err := h.users.GetByIDInOrg(c.Request.Context(), id, orgID)
		if err != nil {
			log.Printf("tasks: resolve assignee: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}
		if assignee == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found or not in your organization"})
			return
		}
		task.AssigneeID = assignee.ID
		task.Assignee = *assignee
	}

	if req.TeamID != nil {
		if *req.TeamID == "" {
			task.TeamID = nil
			task.Team = nil
		} else {
			id, err := uuid.Parse(*req.TeamID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
				return
			}
			team, err := h.teams.GetByIDInOrg(c.Request.Context(), id, orgID)
			if err != nil {
				log.Printf("tasks: resolve team: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
				return
			}
			if team == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Team not found or not in your organization"})
				return
			}
			task.TeamID = &team.ID
			task.Team = team
		}
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		log.Printf("tasks: update: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Delete removes a task. Only an admin or the task's creator may do it.
func (h *TaskHandler) Delete(c *gin.Context) {
	sess, _, ok := requireSession(c, h.jwtSecret)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("tasks: get: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		}
		return
	}

	if err := authorizeTaskDelete(sess, task); err != nil {
		respondTaskAccessError(c, err)
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID); err != nil {
		log.Printf("tasks: delete: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
