package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRoutine binds a routine to a user for a date range.
//
// Invariant: at most one row with IsActive=true exists per user at any time.
// The assignment service enforces it transactionally, and the postgres schema
// backs it with a partial unique index on (user_id) WHERE is_active.
type UserRoutine struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	RoutineID uuid.UUID  `gorm:"type:uuid;not null;index" json:"routineId"`
	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"isActive"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (ur *UserRoutine) BeforeCreate(_ *gorm.DB) error {
	if ur.ID == uuid.Nil {
		ur.ID = uuid.New()
	}
	return nil
}
