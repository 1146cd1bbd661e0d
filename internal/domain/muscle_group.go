package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MuscleGroup is a catalog entry grouping exercises (e.g. "Chest", "Legs").
// Removal is a soft delete: IsActive flips to false, the row stays.
type MuscleGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"` // Unique among active groups, 3-100 chars
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"` // URL of a representative image
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m *MuscleGroup) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
