package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

// routineRepository implements repository.RoutineRepository on gorm.
//
// Subtree deletes are spelled out bottom-up (entries, days, weeks) instead of
// leaning on ON DELETE CASCADE, so the behavior is identical on every dialect
// the tests run against.
type routineRepository struct {
	db *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) repository.RoutineRepository {
	return &routineRepository{db: db}
}

func (r *routineRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *routineRepository) Create(ctx context.Context, tx *gorm.DB, routine *domain.Routine) error {
	// gorm persists the associated weeks/days/entries in one pass, assigning
	// owning foreign keys top-down in the order they appear in the slices.
	return r.conn(tx).WithContext(ctx).Create(routine).Error
}

// treeQuery attaches the ordered preloads every tree read must use: weeks by
// week number, days by day number, exercises by their order column.
func treeQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Weeks", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number ASC")
		}).
		Preload("Weeks.Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC")
		}).
		Preload("Weeks.Days.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_order ASC")
		})
}

func (r *routineRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Routine, error) {
	var routine domain.Routine
	err := treeQuery(r.conn(tx).WithContext(ctx)).First(&routine, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

func (r *routineRepository) GetByTrainerID(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) ([]domain.Routine, error) {
	var routines []domain.Routine
	err := treeQuery(r.conn(tx).WithContext(ctx)).
		Where("trainer_id = ?", trainerID).
		Order("created_at ASC").
		Find(&routines).Error
	if err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *routineRepository) UpdateScalars(ctx context.Context, tx *gorm.DB, routine *domain.Routine) error {
	return r.conn(tx).WithContext(ctx).
		Omit(clause.Associations).
		Save(routine).Error
}

func (r *routineRepository) ReplaceWeeks(ctx context.Context, tx *gorm.DB, routineID uuid.UUID, weeks []domain.Week) error {
	db := r.conn(tx)
	if err := r.deleteSubtree(ctx, db, routineID); err != nil {
		return err
	}
	if len(weeks) == 0 {
		return nil
	}
	for i := range weeks {
		weeks[i].ID = uuid.Nil
		weeks[i].RoutineID = routineID
	}
	return db.WithContext(ctx).Create(&weeks).Error
}

func (r *routineRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	db := r.conn(tx)
	if err := r.deleteSubtree(ctx, db, id); err != nil {
		return err
	}
	result := db.WithContext(ctx).Delete(&domain.Routine{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// deleteSubtree removes every entry, day and week under the routine,
// bottom-up so no orphan rows survive a partial pass.
func (r *routineRepository) deleteSubtree(ctx context.Context, db *gorm.DB, routineID uuid.UUID) error {
	weekIDs := db.WithContext(ctx).Model(&domain.Week{}).Select("id").Where("routine_id = ?", routineID)
	dayIDs := db.WithContext(ctx).Model(&domain.Day{}).Select("id").Where("week_id IN (?)", weekIDs)

	if err := db.WithContext(ctx).Where("day_id IN (?)", dayIDs).Delete(&domain.ExerciseEntry{}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("week_id IN (?)", weekIDs).Delete(&domain.Day{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Where("routine_id = ?", routineID).Delete(&domain.Week{}).Error
}

// === Subtree lookups for the progress tracker ===

func (r *routineRepository) GetEntryByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.ExerciseEntry, error) {
	var entry domain.ExerciseEntry
	err := r.conn(tx).WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *routineRepository) GetDayByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Day, error) {
	var day domain.Day
	err := r.conn(tx).WithContext(ctx).First(&day, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

func (r *routineRepository) GetWeekByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Week, error) {
	var week domain.Week
	err := r.conn(tx).WithContext(ctx).First(&week, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

func (r *routineRepository) CountEntriesByDay(ctx context.Context, tx *gorm.DB, dayID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.ExerciseEntry{}).
		Where("day_id = ?", dayID).
		Count(&count).Error
	return count, err
}

func (r *routineRepository) CountDaysByWeek(ctx context.Context, tx *gorm.DB, weekID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.Day{}).
		Where("week_id = ?", weekID).
		Count(&count).Error
	return count, err
}

func (r *routineRepository) CountWeeksByRoutine(ctx context.Context, tx *gorm.DB, routineID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.Week{}).
		Where("routine_id = ?", routineID).
		Count(&count).Error
	return count, err
}
