package model

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the root tenant boundary. Every user, team and
// (transitively) task belongs to exactly one organization.
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
