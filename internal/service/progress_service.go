package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseEntryNotFound = errors.New("exercise entry not found")
	ErrDayNotFound           = errors.New("day not found")
	ErrWeekNotFound          = errors.New("week not found")
	ErrRoutineNotAssigned    = errors.New("user does not have this routine assigned")
)

// UserProgress aggregates every progress row a user has for one routine.
// Rows come back unsorted; display ordering is the routine tree's concern.
type UserProgress struct {
	Routine   *domain.UserRoutineProgress   `json:"routine,omitempty"`
	Weeks     []domain.UserWeekProgress     `json:"weeks"`
	Days      []domain.UserDayProgress      `json:"days"`
	Exercises []domain.UserExerciseProgress `json:"exercises"`
}

// --- Service Interface ---
//
// Every level has two mark operations: the *Completed variant cascades the
// roll-up recompute to its ancestors when the entity turns complete, while
// the *Simple variant toggles exactly one row and nothing else. Cascades only
// propagate completion upward: un-marking a child never un-completes an
// ancestor that was already rolled up.
type ProgressService interface {
	MarkExerciseCompleted(ctx context.Context, userID, entryID uuid.UUID, completed bool, progressData datatypes.JSON) (*domain.UserExerciseProgress, error)
	MarkExerciseSimple(ctx context.Context, userID, entryID uuid.UUID, completed bool, progressData datatypes.JSON) (*domain.UserExerciseProgress, error)
	MarkDayCompleted(ctx context.Context, userID, dayID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserDayProgress, error)
	MarkDaySimple(ctx context.Context, userID, dayID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserDayProgress, error)
	MarkWeekCompleted(ctx context.Context, userID, weekID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserWeekProgress, error)
	MarkWeekSimple(ctx context.Context, userID, weekID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserWeekProgress, error)
	MarkRoutineSimple(ctx context.Context, userID, routineID uuid.UUID, completed bool, notes string) (*domain.UserRoutineProgress, error)
	GetUserProgress(ctx context.Context, userID, routineID uuid.UUID) (*UserProgress, error)
}

// --- Service Implementation ---

type progressService struct {
	db              *gorm.DB
	routineRepo     repository.RoutineRepository
	userRoutineRepo repository.UserRoutineRepository
	progressRepo    repository.ProgressRepository
	log             *logger.Logger
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(
	db *gorm.DB,
	routineRepo repository.RoutineRepository,
	userRoutineRepo repository.UserRoutineRepository,
	progressRepo repository.ProgressRepository,
	baseLog *logger.Logger,
) ProgressService {
	return &progressService{
		db:              db,
		routineRepo:     routineRepo,
		userRoutineRepo: userRoutineRepo,
		progressRepo:    progressRepo,
		log:             baseLog.With("service", "ProgressService"),
	}
}

// === Chain resolution and access checks ===

// resolveEntryChain walks entry -> day -> week; the week carries the routine
// id the access check needs. A break anywhere in the chain means the entry
// isn't part of a well-formed routine, which callers see as not-found.
func (s *progressService) resolveEntryChain(ctx context.Context, entryID uuid.UUID) (*domain.ExerciseEntry, *domain.Day, *domain.Week, error) {
	entry, err := s.routineRepo.GetEntryByID(ctx, nil, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, ErrExerciseEntryNotFound
		}
		return nil, nil, nil, err
	}
	day, err := s.routineRepo.GetDayByID(ctx, nil, entry.DayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, ErrExerciseEntryNotFound
		}
		return nil, nil, nil, err
	}
	week, err := s.routineRepo.GetWeekByID(ctx, nil, day.WeekID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, ErrExerciseEntryNotFound
		}
		return nil, nil, nil, err
	}
	return entry, day, week, nil
}

// requireActiveBinding is the progress tracker's access rule: you may only
// record progress against a routine you currently have assigned.
func (s *progressService) requireActiveBinding(ctx context.Context, userID, routineID uuid.UUID) error {
	_, err := s.userRoutineRepo.GetActiveByUserAndRoutine(ctx, nil, userID, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoutineNotAssigned
		}
		return err
	}
	return nil
}

// === Row upserts (one row per (user, entity), ever) ===

func (s *progressService) upsertExercise(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID, completed bool, progressData datatypes.JSON) (*domain.UserExerciseProgress, error) {
	row, err := s.progressRepo.GetExercise(ctx, tx, userID, entryID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		row = &domain.UserExerciseProgress{UserID: userID, ExerciseEntryID: entryID}
		if err := s.progressRepo.CreateExercise(ctx, tx, row); err != nil {
			return nil, err
		}
	}

	row.IsCompleted = completed
	if completed {
		now := time.Now()
		row.CompletedAt = &now
	} else {
		row.CompletedAt = nil
	}
	if progressData != nil {
		row.ProgressData = progressData
	}
	if err := s.progressRepo.SaveExercise(ctx, tx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *progressService) upsertDay(ctx context.Context, tx *gorm.DB, userID, dayID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserDayProgress, error) {
	row, err := s.progressRepo.GetDay(ctx, tx, userID, dayID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		row = &domain.UserDayProgress{UserID: userID, DayID: dayID}
		if err := s.progressRepo.CreateDay(ctx, tx, row); err != nil {
			return nil, err
		}
	}

	row.IsCompleted = completed
	if completed {
		now := time.Now()
		row.CompletedAt = &now
	} else {
		row.CompletedAt = nil
	}
	if notes != "" {
		row.Notes = notes
	}
	if durationMinutes > 0 {
		row.DurationMinutes = durationMinutes
	}
	if err := s.progressRepo.SaveDay(ctx, tx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *progressService) upsertWeek(ctx context.Context, tx *gorm.DB, userID, weekID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserWeekProgress, error) {
	row, err := s.progressRepo.GetWeek(ctx, tx, userID, weekID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		row = &domain.UserWeekProgress{UserID: userID, WeekID: weekID}
		if err := s.progressRepo.CreateWeek(ctx, tx, row); err != nil {
			return nil, err
		}
	}

	row.IsCompleted = completed
	if completed {
		now := time.Now()
		row.CompletedAt = &now
	} else {
		row.CompletedAt = nil
	}
	if notes != "" {
		row.Notes = notes
	}
	if durationMinutes > 0 {
		row.DurationMinutes = durationMinutes
	}
	if err := s.progressRepo.SaveWeek(ctx, tx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// === Roll-up recomputes (monotonic: completion only propagates upward) ===

// recomputeDayProgress marks the day complete when every exercise under it is
// complete. It never un-completes a day; that requires an explicit day mark.
func (s *progressService) recomputeDayProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day *domain.Day, week *domain.Week) error {
	total, err := s.routineRepo.CountEntriesByDay(ctx, tx, day.ID)
	if err != nil {
		return err
	}
	done, err := s.progressRepo.CountCompletedEntriesForDay(ctx, tx, userID, day.ID)
	if err != nil {
		return err
	}
	if total == 0 || done < total {
		return nil
	}

	row, err := s.progressRepo.GetDay(ctx, tx, userID, day.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		row = &domain.UserDayProgress{UserID: userID, DayID: day.ID}
		if err := s.progressRepo.CreateDay(ctx, tx, row); err != nil {
			return err
		}
	}
	if row.IsCompleted {
		// Already rolled up; nothing to cascade.
		return nil
	}

	now := time.Now()
	row.IsCompleted = true
	row.CompletedAt = &now
	if err := s.progressRepo.SaveDay(ctx, tx, row); err != nil {
		return err
	}
	s.log.Info("day auto-completed", "userId", userID, "dayId", day.ID)

	return s.recomputeWeekProgress(ctx, tx, userID, week)
}

// recomputeWeekProgress refreshes the completed-days counter and marks the
// week complete when every day under it is complete.
func (s *progressService) recomputeWeekProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, week *domain.Week) error {
	total, err := s.routineRepo.CountDaysByWeek(ctx, tx, week.ID)
	if err != nil {
		return err
	}
	done, err := s.progressRepo.CountCompletedDaysForWeek(ctx, tx, userID, week.ID)
	if err != nil {
		return err
	}

	row, err := s.progressRepo.GetWeek(ctx, tx, userID, week.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		row = &domain.UserWeekProgress{UserID: userID, WeekID: week.ID}
		if err := s.progressRepo.CreateWeek(ctx, tx, row); err != nil {
			return err
		}
	}

	row.CompletedDays = int(done)
	flipped := false
	if total > 0 && done >= total && !row.IsCompleted {
		now := time.Now()
		row.IsCompleted = true
		row.CompletedAt = &now
		flipped = true
	}
	if err := s.progressRepo.SaveWeek(ctx, tx, row); err != nil {
		return err
	}

	if flipped {
		s.log.Info("week auto-completed", "userId", userID, "weekId", week.ID)
		return s.recomputeRoutineProgress(ctx, tx, userID, week.RoutineID)
	}
	return nil
}

// recomputeRoutineProgress refreshes every running counter on the routine
// progress row on every run, whether or not the routine flips complete,
// and marks the routine complete when every week under it is complete.
func (s *progressService) recomputeRoutineProgress(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) error {
	totalWeeks, err := s.routineRepo.CountWeeksByRoutine(ctx, tx, routineID)
	if err != nil {
		return err
	}
	doneWeeks, err := s.progressRepo.CountCompletedWeeksForRoutine(ctx, tx, userID, routineID)
	if err != nil {
		return err
	}
	doneDays, err := s.progressRepo.CountCompletedDaysForRoutine(ctx, tx, userID, routineID)
	if err != nil {
		return err
	}
	doneExercises, err := s.progressRepo.CountCompletedEntriesForRoutine(ctx, tx, userID, routineID)
	if err != nil {
		return err
	}

	row, err := s.progressRepo.GetRoutine(ctx, tx, userID, routineID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		row = &domain.UserRoutineProgress{UserID: userID, RoutineID: routineID}
		if err := s.progressRepo.CreateRoutine(ctx, tx, row); err != nil {
			return err
		}
	}

	row.CompletedWeeks = int(doneWeeks)
	row.CompletedDays = int(doneDays)
	row.CompletedExercises = int(doneExercises)
	if totalWeeks > 0 && doneWeeks >= totalWeeks && !row.IsCompleted {
		now := time.Now()
		row.IsCompleted = true
		row.CompletedAt = &now
		s.log.Info("routine auto-completed", "userId", userID, "routineId", routineID)
	}
	return s.progressRepo.SaveRoutine(ctx, tx, row)
}

// === Mark operations ===

// MarkExerciseCompleted toggles one exercise's progress row and, when the
// exercise turns complete, rolls the completion up the day/week/routine chain.
func (s *progressService) MarkExerciseCompleted(ctx context.Context, userID, entryID uuid.UUID, completed bool, progressData datatypes.JSON) (*domain.UserExerciseProgress, error) {
	_, day, week, err := s.resolveEntryChain(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveBinding(ctx, userID, week.RoutineID); err != nil {
		return nil, err
	}

	var row *domain.UserExerciseProgress
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err = s.upsertExercise(ctx, tx, userID, entryID, completed, progressData)
		if err != nil {
			return err
		}
		if completed {
			return s.recomputeDayProgress(ctx, tx, userID, day, week)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// MarkExerciseSimple toggles one exercise's progress row without cascading.
func (s *progressService) MarkExerciseSimple(ctx context.Context, userID, entryID uuid.UUID, completed bool, progressData datatypes.JSON) (*domain.UserExerciseProgress, error) {
	_, _, week, err := s.resolveEntryChain(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveBinding(ctx, userID, week.RoutineID); err != nil {
		return nil, err
	}
	return s.upsertExercise(ctx, nil, userID, entryID, completed, progressData)
}

// MarkDayCompleted toggles one day's progress row and, when the day turns
// complete, rolls the completion up the week/routine chain.
func (s *progressService) MarkDayCompleted(ctx context.Context, userID, dayID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserDayProgress, error) {
	day, week, err := s.resolveDayChain(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveBinding(ctx, userID, week.RoutineID); err != nil {
		return nil, err
	}

	var row *domain.UserDayProgress
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err = s.upsertDay(ctx, tx, userID, day.ID, completed, notes, durationMinutes)
		if err != nil {
			return err
		}
		if completed {
			return s.recomputeWeekProgress(ctx, tx, userID, week)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// MarkDaySimple toggles one day's progress row without cascading.
func (s *progressService) MarkDaySimple(ctx context.Context, userID, dayID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserDayProgress, error) {
	day, week, err := s.resolveDayChain(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveBinding(ctx, userID, week.RoutineID); err != nil {
		return nil, err
	}
	return s.upsertDay(ctx, nil, userID, day.ID, completed, notes, durationMinutes)
}

// MarkWeekCompleted toggles one week's progress row and, when the week turns
// complete, recomputes the routine roll-up.
func (s *progressService) MarkWeekCompleted(ctx context.Context, userID, weekID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserWeekProgress, error) {
	week, err := s.resolveWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveBinding(ctx, userID, week.RoutineID); err != nil {
		return nil, err
	}

	var row *domain.UserWeekProgress
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err = s.upsertWeek(ctx, tx, userID, week.ID, completed, notes, durationMinutes)
		if err != nil {
			return err
		}
		if completed {
			return s.recomputeRoutineProgress(ctx, tx, userID, week.RoutineID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// MarkWeekSimple toggles one week's progress row without cascading.
func (s *progressService) MarkWeekSimple(ctx context.Context, userID, weekID uuid.UUID, completed bool, notes string, durationMinutes int) (*domain.UserWeekProgress, error) {
	week, err := s.resolveWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveBinding(ctx, userID, week.RoutineID); err != nil {
		return nil, err
	}
	return s.upsertWeek(ctx, nil, userID, week.ID, completed, notes, durationMinutes)
}

// MarkRoutineSimple toggles the routine-level progress row. The routine is
// the top of the chain, so there is nothing to cascade to.
func (s *progressService) MarkRoutineSimple(ctx context.Context, userID, routineID uuid.UUID, completed bool, notes string) (*domain.UserRoutineProgress, error) {
	if _, err := s.routineRepo.GetByID(ctx, nil, routineID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	if err := s.requireActiveBinding(ctx, userID, routineID); err != nil {
		return nil, err
	}

	row, err := s.progressRepo.GetRoutine(ctx, nil, userID, routineID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		row = &domain.UserRoutineProgress{UserID: userID, RoutineID: routineID}
		if err := s.progressRepo.CreateRoutine(ctx, nil, row); err != nil {
			return nil, err
		}
	}

	row.IsCompleted = completed
	if completed {
		now := time.Now()
		row.CompletedAt = &now
	} else {
		row.CompletedAt = nil
	}
	if notes != "" {
		row.Notes = notes
	}
	if err := s.progressRepo.SaveRoutine(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

// GetUserProgress returns every progress row the user has under the routine.
func (s *progressService) GetUserProgress(ctx context.Context, userID, routineID uuid.UUID) (*UserProgress, error) {
	if err := s.requireActiveBinding(ctx, userID, routineID); err != nil {
		return nil, err
	}

	progress := &UserProgress{}

	routineRow, err := s.progressRepo.GetRoutine(ctx, nil, userID, routineID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	progress.Routine = routineRow // nil when nothing recorded yet

	if progress.Weeks, err = s.progressRepo.ListWeekByRoutine(ctx, nil, userID, routineID); err != nil {
		return nil, err
	}
	if progress.Days, err = s.progressRepo.ListDayByRoutine(ctx, nil, userID, routineID); err != nil {
		return nil, err
	}
	if progress.Exercises, err = s.progressRepo.ListExerciseByRoutine(ctx, nil, userID, routineID); err != nil {
		return nil, err
	}
	return progress, nil
}

// === Chain helpers for day/week marks ===

func (s *progressService) resolveDayChain(ctx context.Context, dayID uuid.UUID) (*domain.Day, *domain.Week, error) {
	day, err := s.routineRepo.GetDayByID(ctx, nil, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrDayNotFound
		}
		return nil, nil, err
	}
	week, err := s.routineRepo.GetWeekByID(ctx, nil, day.WeekID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrDayNotFound
		}
		return nil, nil, err
	}
	return day, week, nil
}

func (s *progressService) resolveWeek(ctx context.Context, weekID uuid.UUID) (*domain.Week, error) {
	week, err := s.routineRepo.GetWeekByID(ctx, nil, weekID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	return week, nil
}
