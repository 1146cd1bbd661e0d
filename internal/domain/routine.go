package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Routine is a training template authored by a trainer. It owns its whole
// Week -> Day -> ExerciseEntry subtree (cascade delete) and is independent of
// any user until an assignment binds it to one.
type Routine struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Comments    string    `json:"comments,omitempty"`
	TotalWeeks  int       `gorm:"not null" json:"totalWeeks"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	TrainerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"trainerId"`

	Weeks []Week `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"weeks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Routine) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Week is one week inside a routine.
type Week struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WeekNumber int       `gorm:"not null" json:"weekNumber"`
	Name       string    `json:"name,omitempty"`
	Comments   string    `json:"comments,omitempty"`
	RoutineID  uuid.UUID `gorm:"type:uuid;not null;index" json:"routineId"`

	Days []Day `gorm:"foreignKey:WeekID;constraint:OnDelete:CASCADE" json:"days,omitempty"`
}

func (w *Week) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// Day is one training day inside a week.
type Day struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DayNumber int       `gorm:"not null" json:"dayNumber"`
	Name      string    `json:"name,omitempty"`
	Comments  string    `json:"comments,omitempty"`
	WeekID    uuid.UUID `gorm:"type:uuid;not null;index" json:"weekId"`

	Exercises []ExerciseEntry `gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
}

func (d *Day) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ExerciseEntry is an exercise instance inside a routine day, with the
// prescription (sets, reps, rests) a trainer wrote for it. ExerciseID
// optionally links back to the catalog Exercise it was built from.
type ExerciseEntry struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string     `json:"name,omitempty"`
	ExerciseID           *uuid.UUID `gorm:"type:uuid" json:"exerciseId,omitempty"`
	Sets                 int        `gorm:"not null" json:"sets"`
	Repetitions          int        `gorm:"not null" json:"repetitions"`
	RestBetweenSets      int        `json:"restBetweenSets"`      // seconds
	RestBetweenExercises int        `json:"restBetweenExercises"` // seconds
	Comments             string     `json:"comments,omitempty"`
	Order                int        `gorm:"column:exercise_order;not null" json:"order"`
	DayID                uuid.UUID  `gorm:"type:uuid;not null;index" json:"dayId"`
}

func (e *ExerciseEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
