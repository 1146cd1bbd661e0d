package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Progress rows are per-(user, entity) completion markers. Exactly one row
// ever exists for a pair: the first completion toggle creates it, every
// later toggle updates it in place. Rows are never auto-deleted, so history
// survives a routine deactivation.

// UserExerciseProgress marks completion of one ExerciseEntry for one user.
// ProgressData is free-form JSON the client reports (weights, actual sets...);
// it is stored opaquely and never queried by field.
type UserExerciseProgress struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_exercise,unique" json:"userId"`
	ExerciseEntryID uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_exercise,unique" json:"exerciseEntryId"`
	IsCompleted     bool           `gorm:"not null;default:false" json:"isCompleted"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	ProgressData    datatypes.JSON `json:"progressData,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (UserExerciseProgress) TableName() string { return "user_exercise_progress" }

func (p *UserExerciseProgress) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserDayProgress marks completion of one Day for one user.
type UserDayProgress struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_day,unique" json:"userId"`
	DayID           uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_day,unique" json:"dayId"`
	IsCompleted     bool       `gorm:"not null;default:false" json:"isCompleted"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (UserDayProgress) TableName() string { return "user_day_progress" }

func (p *UserDayProgress) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserWeekProgress marks completion of one Week for one user.
// CompletedDays is a running counter refreshed on every recompute.
type UserWeekProgress struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_week,unique" json:"userId"`
	WeekID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_week,unique" json:"weekId"`
	IsCompleted     bool       `gorm:"not null;default:false" json:"isCompleted"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty"`
	CompletedDays   int        `gorm:"not null;default:0" json:"completedDays"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (UserWeekProgress) TableName() string { return "user_week_progress" }

func (p *UserWeekProgress) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserRoutineProgress marks completion of a whole Routine for one user.
// The counters are refreshed on every routine-level recompute, even when the
// completion flag does not flip.
type UserRoutineProgress struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_routine_prog,unique" json:"userId"`
	RoutineID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_routine_prog,unique" json:"routineId"`
	IsCompleted        bool       `gorm:"not null;default:false" json:"isCompleted"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	TotalMinutes       int        `json:"totalMinutes,omitempty"`
	CompletedWeeks     int        `gorm:"not null;default:0" json:"completedWeeks"`
	CompletedDays      int        `gorm:"not null;default:0" json:"completedDays"`
	CompletedExercises int        `gorm:"not null;default:0" json:"completedExercises"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (UserRoutineProgress) TableName() string { return "user_routine_progress" }

func (p *UserRoutineProgress) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
