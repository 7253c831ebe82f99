package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleAdmin = "ADMIN" // manages membership of the organization
	RoleUser  = "USER"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string    `gorm:"not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:'USER';check:role IN ('ADMIN', 'USER')"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time

	Organization Organization `gorm:"foreignKey:OrganizationID"`
}
