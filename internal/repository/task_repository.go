package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskhub/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

// TaskFilter narrows a task listing. Nil/empty fields are ignored.
type TaskFilter struct {
	AssigneeID *uuid.UUID
	Status     string
	TeamID     *uuid.UUID
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, filter TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// GetByID retrieves a task by its ID with its assignee, creator and team.
// The assignee carries the organization the task effectively belongs to,
// so callers can apply the tenant check.
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Creator").
		Preload("Team").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListByOrganization retrieves all tasks visible to an organization.
// Tenant scoping goes through the assignee: a task belongs to whatever
// organization its current assignee belongs to.
func (r *TaskRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, filter TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN users assignees ON assignees.id = tasks.assignee_id").
		Where("assignees.organization_id = ?", orgID)

	if filter.AssigneeID != nil {
		q = q.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != "" {
		q = q.Where("tasks.status = ?", filter.Status)
	}
	if filter.TeamID != nil {
		q = q.Where("tasks.team_id = ?", *filter.TeamID)
	}

	var tasks []model.Task
	result := q.
		Preload("Assignee").
		Preload("Creator").
		Preload("Team").
		Order("tasks.updated_at DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
