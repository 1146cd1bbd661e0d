package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate")
)

// RepositoryError helps distinguish repository errors from everything else.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Every method takes an optional tx; a nil tx means "use the repository's own
// handle". Services open transactions with gorm's db.Transaction and thread
// the tx through the repos involved in the same multi-table write.

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *domain.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*domain.User, error)
	// SetHasRoutine is the single writer of the denormalized User.HasRoutine flag.
	SetHasRoutine(ctx context.Context, tx *gorm.DB, userID uuid.UUID, hasRoutine bool) error
}

// MuscleGroupRepository defines the interface for the muscle group catalog.
type MuscleGroupRepository interface {
	Create(ctx context.Context, tx *gorm.DB, group *domain.MuscleGroup) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.MuscleGroup, error)
	GetActiveByTitle(ctx context.Context, tx *gorm.DB, title string) (*domain.MuscleGroup, error)
	GetAllActive(ctx context.Context, tx *gorm.DB) ([]domain.MuscleGroup, error)
	Save(ctx context.Context, tx *gorm.DB, group *domain.MuscleGroup) error
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, exercise *domain.Exercise) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Exercise, error)
	GetActiveByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Exercise, error)
	GetAllActive(ctx context.Context, tx *gorm.DB) ([]domain.Exercise, error)
	Save(ctx context.Context, tx *gorm.DB, exercise *domain.Exercise) error
}

// RoutineRepository owns the Routine -> Week -> Day -> ExerciseEntry subtree.
type RoutineRepository interface {
	// Create persists the routine together with its whole subtree; owning
	// foreign keys are assigned top-down.
	Create(ctx context.Context, tx *gorm.DB, routine *domain.Routine) error
	// GetByID returns the full tree with weeks ordered by week number, days
	// by day number and exercises by their order field.
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Routine, error)
	GetByTrainerID(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) ([]domain.Routine, error)
	// UpdateScalars saves routine's scalar columns, leaving the subtree alone.
	UpdateScalars(ctx context.Context, tx *gorm.DB, routine *domain.Routine) error
	// ReplaceWeeks deletes the routine's entire week subtree and inserts the
	// given weeks in its place.
	ReplaceWeeks(ctx context.Context, tx *gorm.DB, routineID uuid.UUID, weeks []domain.Week) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	// Subtree lookups used by the progress tracker.
	GetEntryByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.ExerciseEntry, error)
	GetDayByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Day, error)
	GetWeekByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Week, error)
	CountEntriesByDay(ctx context.Context, tx *gorm.DB, dayID uuid.UUID) (int64, error)
	CountDaysByWeek(ctx context.Context, tx *gorm.DB, weekID uuid.UUID) (int64, error)
	CountWeeksByRoutine(ctx context.Context, tx *gorm.DB, routineID uuid.UUID) (int64, error)
}

// UserRoutineRepository manages routine-to-user bindings.
type UserRoutineRepository interface {
	Create(ctx context.Context, tx *gorm.DB, binding *domain.UserRoutine) error
	Save(ctx context.Context, tx *gorm.DB, binding *domain.UserRoutine) error
	GetActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]domain.UserRoutine, error)
	GetActiveByUserAndRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (*domain.UserRoutine, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]domain.UserRoutine, error)
	CountActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	DeleteAllByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	ListUserIDsByRoutine(ctx context.Context, tx *gorm.DB, routineID uuid.UUID) ([]uuid.UUID, error)
	DeleteAllByRoutine(ctx context.Context, tx *gorm.DB, routineID uuid.UUID) error
}

// ProgressRepository manages the four per-(user, entity) progress tables.
// Rows are unique per pair; callers fetch-then-create-or-save.
type ProgressRepository interface {
	GetExercise(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (*domain.UserExerciseProgress, error)
	CreateExercise(ctx context.Context, tx *gorm.DB, row *domain.UserExerciseProgress) error
	SaveExercise(ctx context.Context, tx *gorm.DB, row *domain.UserExerciseProgress) error

	GetDay(ctx context.Context, tx *gorm.DB, userID, dayID uuid.UUID) (*domain.UserDayProgress, error)
	CreateDay(ctx context.Context, tx *gorm.DB, row *domain.UserDayProgress) error
	SaveDay(ctx context.Context, tx *gorm.DB, row *domain.UserDayProgress) error

	GetWeek(ctx context.Context, tx *gorm.DB, userID, weekID uuid.UUID) (*domain.UserWeekProgress, error)
	CreateWeek(ctx context.Context, tx *gorm.DB, row *domain.UserWeekProgress) error
	SaveWeek(ctx context.Context, tx *gorm.DB, row *domain.UserWeekProgress) error

	GetRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (*domain.UserRoutineProgress, error)
	CreateRoutine(ctx context.Context, tx *gorm.DB, row *domain.UserRoutineProgress) error
	SaveRoutine(ctx context.Context, tx *gorm.DB, row *domain.UserRoutineProgress) error

	// Completed-row counts joined against the routine subtree, used by the
	// roll-up recomputes.
	CountCompletedEntriesForDay(ctx context.Context, tx *gorm.DB, userID, dayID uuid.UUID) (int64, error)
	CountCompletedDaysForWeek(ctx context.Context, tx *gorm.DB, userID, weekID uuid.UUID) (int64, error)
	CountCompletedWeeksForRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (int64, error)
	CountCompletedDaysForRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (int64, error)
	CountCompletedEntriesForRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (int64, error)

	// Per-routine listings for the aggregated progress read.
	ListExerciseByRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) ([]domain.UserExerciseProgress, error)
	ListDayByRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) ([]domain.UserDayProgress, error)
	ListWeekByRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) ([]domain.UserWeekProgress, error)
}

// PlanRepository defines the interface for subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, tx *gorm.DB, plan *domain.Plan) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Plan, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]domain.Plan, error)
	Save(ctx context.Context, tx *gorm.DB, plan *domain.Plan) error
	// Delete is a hard delete; plans keep no tombstones.
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

// MediaAssetRepository defines the interface for object-storage metadata rows.
type MediaAssetRepository interface {
	Create(ctx context.Context, tx *gorm.DB, asset *domain.MediaAsset) error
	Save(ctx context.Context, tx *gorm.DB, asset *domain.MediaAsset) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.MediaAsset, error)
	GetByFilePath(ctx context.Context, tx *gorm.DB, filePath string) (*domain.MediaAsset, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]domain.MediaAsset, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

// DocumentRepository defines the interface for trainer document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, doc *domain.TrainerDocument) error
	Save(ctx context.Context, tx *gorm.DB, doc *domain.TrainerDocument) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.TrainerDocument, error)
	GetByTrainer(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, category domain.DocumentCategory) ([]domain.TrainerDocument, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}
