package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

type TeamRepositoryInterface interface {
	Create(ctx context.Context, team *model.Team) error
	GetByIDInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.Team, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Team, error)
	AddMember(ctx context.Context, member *model.TeamMember) error
}

var _ TeamRepositoryInterface = (*TeamRepository)(nil)

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// GetByIDInOrg looks a team up inside one organization only.
func (r *TeamRepository) GetByIDInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Preload("Members.User").
		Where("organization_id = ?", orgID).
		Order("created_at").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, member *model.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}
