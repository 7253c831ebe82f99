package repository

import (
	"context"
	"time"

	"taskhub/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, session *model.Session) error
	DeleteExpired(ctx context.Context) (int64, error)
}

var _ SessionRepositoryInterface = (*SessionRepository)(nil)

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// DeleteExpired removes session rows past their expiry. The rows are an
// audit trail, not an authorization source, so this is housekeeping only.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.Session{})
	return result.RowsAffected, result.Error
}
