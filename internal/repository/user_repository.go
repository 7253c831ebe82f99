package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByIDInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.User, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.User, error)
	CountAssignedTasks(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, user *model.User) error
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDInOrg looks a user up inside one organization only. A user in a
// foreign organization is indistinguishable from a missing one.
func (r *UserRepository) GetByIDInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountAssignedTasks returns how many tasks are assigned to a user.
func (r *UserRepository) CountAssignedTasks(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("assignee_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(user)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
