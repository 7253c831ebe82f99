package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Task priorities
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Task carries no organization column. Its tenant is derived through the
// assignee's organization and re-checked on every read and write.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string     `gorm:"not null"`
	Description string
	Status      string     `gorm:"not null;default:'TODO';check:status IN ('TODO', 'IN_PROGRESS', 'DONE')"`
	Priority    string     `gorm:"not null;default:'MEDIUM';check:priority IN ('LOW', 'MEDIUM', 'HIGH')"`
	AssigneeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null"`
	TeamID      *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Assignee User  `gorm:"foreignKey:AssigneeID"`
	Creator  User  `gorm:"foreignKey:CreatedByID"`
	Team     *Team `gorm:"foreignKey:TeamID"`
}
