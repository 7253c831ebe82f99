package model

import (
	"time"

	"github.com/google/uuid"
)

// Team member roles
const (
	TeamRoleLead   = "LEAD"
	TeamRoleMember = "MEMBER"
)

type Team struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string    `gorm:"not null"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`

	Organization Organization `gorm:"foreignKey:OrganizationID"`
	Members      []TeamMember `gorm:"foreignKey:TeamID"`
}

// TeamMember links a user to a team with a team-scoped role.
type TeamMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"not null;check:role IN ('LEAD', 'MEMBER')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Team Team `gorm:"foreignKey:TeamID"`
	User User `gorm:"foreignKey:UserID"`
}
