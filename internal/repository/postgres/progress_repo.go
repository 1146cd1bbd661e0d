package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

// progressRepository implements repository.ProgressRepository on gorm.
// The roll-up counts join the progress tables against the routine subtree so
// a recompute never loads full rows just to count them.
type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// === Exercise level ===

func (r *progressRepository) GetExercise(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (*domain.UserExerciseProgress, error) {
	var row domain.UserExerciseProgress
	err := r.conn(tx).WithContext(ctx).
		First(&row, "user_id = ? AND exercise_entry_id = ?", userID, entryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *progressRepository) CreateExercise(ctx context.Context, tx *gorm.DB, row *domain.UserExerciseProgress) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

func (r *progressRepository) SaveExercise(ctx context.Context, tx *gorm.DB, row *domain.UserExerciseProgress) error {
	return r.conn(tx).WithContext(ctx).Save(row).Error
}

// === Day level ===

func (r *progressRepository) GetDay(ctx context.Context, tx *gorm.DB, userID, dayID uuid.UUID) (*domain.UserDayProgress, error) {
	var row domain.UserDayProgress
	err := r.conn(tx).WithContext(ctx).
		First(&row, "user_id = ? AND day_id = ?", userID, dayID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *progressRepository) CreateDay(ctx context.Context, tx *gorm.DB, row *domain.UserDayProgress) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

func (r *progressRepository) SaveDay(ctx context.Context, tx *gorm.DB, row *domain.UserDayProgress) error {
	return r.conn(tx).WithContext(ctx).Save(row).Error
}

// === Week level ===

func (r *progressRepository) GetWeek(ctx context.Context, tx *gorm.DB, userID, weekID uuid.UUID) (*domain.UserWeekProgress, error) {
	var row domain.UserWeekProgress
	err := r.conn(tx).WithContext(ctx).
		First(&row, "user_id = ? AND week_id = ?", userID, weekID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *progressRepository) CreateWeek(ctx context.Context, tx *gorm.DB, row *domain.UserWeekProgress) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

func (r *progressRepository) SaveWeek(ctx context.Context, tx *gorm.DB, row *domain.UserWeekProgress) error {
	return r.conn(tx).WithContext(ctx).Save(row).Error
}

// === Routine level ===

func (r *progressRepository) GetRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (*domain.UserRoutineProgress, error) {
	var row domain.UserRoutineProgress
	err := r.conn(tx).WithContext(ctx).
		First(&row, "user_id = ? AND routine_id = ?", userID, routineID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *progressRepository) CreateRoutine(ctx context.Context, tx *gorm.DB, row *domain.UserRoutineProgress) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

func (r *progressRepository) SaveRoutine(ctx context.Context, tx *gorm.DB, row *domain.UserRoutineProgress) error {
	return r.conn(tx).WithContext(ctx).Save(row).Error
}

// === Roll-up counts ===

func (r *progressRepository) CountCompletedEntriesForDay(ctx context.Context, tx *gorm.DB, userID, dayID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.UserExerciseProgress{}).
		Joins("JOIN exercise_entries ON exercise_entries.id = user_exercise_progress.exercise_entry_id").
		Where("user_exercise_progress.user_id = ? AND exercise_entries.day_id = ? AND user_exercise_progress.is_completed", userID, dayID).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) CountCompletedDaysForWeek(ctx context.Context, tx *gorm.DB, userID, weekID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.UserDayProgress{}).
		Joins("JOIN days ON days.id = user_day_progress.day_id").
		Where("user_day_progress.user_id = ? AND days.week_id = ? AND user_day_progress.is_completed", userID, weekID).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) CountCompletedWeeksForRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.UserWeekProgress{}).
		Joins("JOIN weeks ON weeks.id = user_week_progress.week_id").
		Where("user_week_progress.user_id = ? AND weeks.routine_id = ? AND user_week_progress.is_completed", userID, routineID).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) CountCompletedDaysForRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.UserDayProgress{}).
		Joins("JOIN days ON days.id = user_day_progress.day_id").
		Joins("JOIN weeks ON weeks.id = days.week_id").
		Where("user_day_progress.user_id = ? AND weeks.routine_id = ? AND user_day_progress.is_completed", userID, routineID).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) CountCompletedEntriesForRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.UserExerciseProgress{}).
		Joins("JOIN exercise_entries ON exercise_entries.id = user_exercise_progress.exercise_entry_id").
		Joins("JOIN days ON days.id = exercise_entries.day_id").
		Joins("JOIN weeks ON weeks.id = days.week_id").
		Where("user_exercise_progress.user_id = ? AND weeks.routine_id = ? AND user_exercise_progress.is_completed", userID, routineID).
		Count(&count).Error
	return count, err
}

// === Per-routine listings ===

func (r *progressRepository) ListExerciseByRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) ([]domain.UserExerciseProgress, error) {
	var rows []domain.UserExerciseProgress
	err := r.conn(tx).WithContext(ctx).
		Joins("JOIN exercise_entries ON exercise_entries.id = user_exercise_progress.exercise_entry_id").
		Joins("JOIN days ON days.id = exercise_entries.day_id").
		Joins("JOIN weeks ON weeks.id = days.week_id").
		Where("user_exercise_progress.user_id = ? AND weeks.routine_id = ?", userID, routineID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepository) ListDayByRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) ([]domain.UserDayProgress, error) {
	var rows []domain.UserDayProgress
	err := r.conn(tx).WithContext(ctx).
		Joins("JOIN days ON days.id = user_day_progress.day_id").
		Joins("JOIN weeks ON weeks.id = days.week_id").
		Where("user_day_progress.user_id = ? AND weeks.routine_id = ?", userID, routineID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepository) ListWeekByRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) ([]domain.UserWeekProgress, error) {
	var rows []domain.UserWeekProgress
	err := r.conn(tx).WithContext(ctx).
		Joins("JOIN weeks ON weeks.id = user_week_progress.week_id").
		Where("user_week_progress.user_id = ? AND weeks.routine_id = ?", userID, routineID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
