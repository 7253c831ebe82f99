package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record written alongside every signed
// cookie token. The request path never consults it; it exists as an
// issuance audit trail and a hook for future revocation.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
}
