package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// User represents an account in the system (regular user, trainer or admin).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"` // Must be unique
	PasswordHash string    `gorm:"not null" json:"-"`                 // Never expose this via JSON
	Role         Role      `gorm:"not null;default:user" json:"role"`

	// HasRoutine is a denormalized flag: true iff the user currently has at
	// least one active UserRoutine. Recomputed by the assignment service
	// after every assignment-affecting mutation; never written elsewhere.
	HasRoutine bool `gorm:"not null;default:false" json:"hasRoutine"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
