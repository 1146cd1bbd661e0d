package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageRef points at an image stored externally (object storage or plain URL).
type ImageRef struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Exercise is a catalog definition of a single exercise. It is not the same
// thing as an ExerciseEntry, which is an instance of an exercise inside a
// routine day.
type Exercise struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"` // Unique among active exercises, 3-100 chars
	Description string    `json:"description,omitempty"`
	Image       *ImageRef `gorm:"serializer:json" json:"image,omitempty"`

	MuscleGroupID uuid.UUID `gorm:"type:uuid;not null;index" json:"muscleGroupId"`
	// MuscleGroupName is a denormalized copy of the owning group's title so
	// listings don't need a join. Refreshed whenever MuscleGroupID changes.
	MuscleGroupName string `json:"muscleGroupName"`

	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Exercise) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
