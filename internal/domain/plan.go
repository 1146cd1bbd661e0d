package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanType narrows who a subscription plan is sold to.
type PlanType string

const (
	PlanTypeUser    PlanType = "user"
	PlanTypeTrainer PlanType = "trainer"
)

// Badge is a small decorative label shown on a plan card.
type Badge struct {
	Color string `json:"color,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Plan is a subscription plan. Plain CRUD catalog entity; unlike the
// exercise catalogs, removal is a hard delete.
type Plan struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Price    float64   `gorm:"not null" json:"price"` // >= 0
	Duration string    `gorm:"not null" json:"duration"`
	Type     PlanType  `json:"type,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	Features []string  `gorm:"serializer:json;not null" json:"features"` // ordered, at least one
	Badge    *Badge    `gorm:"serializer:json" json:"badge,omitempty"`
	Image    *ImageRef `gorm:"serializer:json" json:"image,omitempty"`
	IsActive bool      `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Plan) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
