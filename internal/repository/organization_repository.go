package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

type OrganizationRepositoryInterface interface {
	Register(ctx context.Context, org *model.Organization, admin *model.User, team *model.Team, membership *model.TeamMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
}

var _ OrganizationRepositoryInterface = (*OrganizationRepository)(nil)

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Register persists a new tenant in one transaction: the organization,
// its founding admin, the default team and the admin's lead membership.
// Either all four rows exist afterward or none do.
func (r *OrganizationRepository) Register(ctx context.Context, org *model.Organization, admin *model.User, team *model.Team, membership *model.TeamMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return tx.Create(membership).Error
	})
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}
