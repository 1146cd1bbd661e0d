package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrRoutineNotFound = errors.New("routine not found")
)

// --- Input types ---

type ExerciseEntryInput struct {
	Name                 string     `json:"name"`
	ExerciseID           *uuid.UUID `json:"exerciseId,omitempty"`
	Sets                 int        `json:"sets"`
	Repetitions          int        `json:"repetitions"`
	RestBetweenSets      int        `json:"restBetweenSets"`
	RestBetweenExercises int        `json:"restBetweenExercises"`
	Comments             string     `json:"comments"`
	Order                int        `json:"order"`
}

type DayInput struct {
	DayNumber int                  `json:"dayNumber"`
	Name      string               `json:"name"`
	Comments  string               `json:"comments"`
	Exercises []ExerciseEntryInput `json:"exercises"`
}

type WeekInput struct {
	WeekNumber int        `json:"weekNumber"`
	Name       string     `json:"name"`
	Comments   string     `json:"comments"`
	Days       []DayInput `json:"days"`
}

type CreateRoutineInput struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Comments    string      `json:"comments"`
	TotalWeeks  int         `json:"totalWeeks"`
	Weeks       []WeekInput `json:"weeks"`
}

// UpdateRoutinePatch patches scalar fields in place. A non-nil Weeks slice
// replaces the whole existing week subtree; there is no partial merge.
type UpdateRoutinePatch struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Comments    *string     `json:"comments"`
	TotalWeeks  *int        `json:"totalWeeks"`
	IsActive    *bool       `json:"isActive"`
	Weeks       []WeekInput `json:"weeks"`
}

// --- Service Interface ---
type RoutineService interface {
	Create(ctx context.Context, trainerID uuid.UUID, input CreateRoutineInput) (*domain.Routine, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Routine, error)
	GetByTrainer(ctx context.Context, trainerID uuid.UUID) ([]domain.Routine, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateRoutinePatch) (*domain.Routine, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// --- Service Implementation ---

type routineService struct {
	db              *gorm.DB
	userRepo        repository.UserRepository
	routineRepo     repository.RoutineRepository
	userRoutineRepo repository.UserRoutineRepository
	log             *logger.Logger
}

// NewRoutineService creates a new instance of routineService.
func NewRoutineService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	routineRepo repository.RoutineRepository,
	userRoutineRepo repository.UserRoutineRepository,
	baseLog *logger.Logger,
) RoutineService {
	return &routineService{
		db:              db,
		userRepo:        userRepo,
		routineRepo:     routineRepo,
		userRoutineRepo: userRoutineRepo,
		log:             baseLog.With("service", "RoutineService"),
	}
}

// buildWeeks maps week inputs to the owned domain subtree, preserving the
// order the caller supplied. Display order is a read-time concern (the
// repository sorts by the number/order columns), so nothing is re-sorted here.
func buildWeeks(inputs []WeekInput) []domain.Week {
	weeks := make([]domain.Week, 0, len(inputs))
	for _, wi := range inputs {
		week := domain.Week{
			WeekNumber: wi.WeekNumber,
			Name:       wi.Name,
			Comments:   wi.Comments,
		}
		for _, di := range wi.Days {
			day := domain.Day{
				DayNumber: di.DayNumber,
				Name:      di.Name,
				Comments:  di.Comments,
			}
			for _, ei := range di.Exercises {
				day.Exercises = append(day.Exercises, domain.ExerciseEntry{
					Name:                 ei.Name,
					ExerciseID:           ei.ExerciseID,
					Sets:                 ei.Sets,
					Repetitions:          ei.Repetitions,
					RestBetweenSets:      ei.RestBetweenSets,
					RestBetweenExercises: ei.RestBetweenExercises,
					Comments:             ei.Comments,
					Order:                ei.Order,
				})
			}
			week.Days = append(week.Days, day)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// Create persists a new routine tree for a trainer and returns it refetched
// from storage so every generated id is populated.
func (s *routineService) Create(ctx context.Context, trainerID uuid.UUID, input CreateRoutineInput) (*domain.Routine, error) {
	// 1. The author must exist and actually be a trainer.
	trainer, err := s.userRepo.GetByID(ctx, nil, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.IsTrainer() {
		return nil, ErrTrainerNotFound
	}

	// 2. Persist the whole tree in one transaction.
	routine := &domain.Routine{
		Name:        input.Name,
		Description: input.Description,
		Comments:    input.Comments,
		TotalWeeks:  input.TotalWeeks,
		IsActive:    true,
		TrainerID:   trainerID,
		Weeks:       buildWeeks(input.Weeks),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.routineRepo.Create(ctx, tx, routine)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("routine created", "routineId", routine.ID, "trainerId", trainerID)

	// 3. Read it back so the response carries the stored tree, sorted.
	return s.routineRepo.GetByID(ctx, nil, routine.ID)
}

func (s *routineService) Get(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *routineService) GetByTrainer(ctx context.Context, trainerID uuid.UUID) ([]domain.Routine, error) {
	return s.routineRepo.GetByTrainerID(ctx, nil, trainerID)
}

// Update patches scalar fields; when the patch carries weeks, the existing
// subtree is dropped and rebuilt from the payload in the same transaction.
func (s *routineService) Update(ctx context.Context, id uuid.UUID, patch UpdateRoutinePatch) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		routine.Name = *patch.Name
	}
	if patch.Description != nil {
		routine.Description = *patch.Description
	}
	if patch.Comments != nil {
		routine.Comments = *patch.Comments
	}
	if patch.TotalWeeks != nil {
		routine.TotalWeeks = *patch.TotalWeeks
	}
	if patch.IsActive != nil {
		routine.IsActive = *patch.IsActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.routineRepo.UpdateScalars(ctx, tx, routine); err != nil {
			return err
		}
		if patch.Weeks != nil {
			return s.routineRepo.ReplaceWeeks(ctx, tx, id, buildWeeks(patch.Weeks))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.routineRepo.GetByID(ctx, nil, id)
}

// Delete removes the routine tree, drops every binding that referenced it and
// recomputes the hasRoutine flag of each affected user.
func (s *routineService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userIDs, err := s.userRoutineRepo.ListUserIDsByRoutine(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.userRoutineRepo.DeleteAllByRoutine(ctx, tx, id); err != nil {
			return err
		}
		if err := s.routineRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		for _, userID := range userIDs {
			active, err := s.userRoutineRepo.CountActiveByUser(ctx, tx, userID)
			if err != nil {
				return err
			}
			if err := s.userRepo.SetHasRoutine(ctx, tx, userID, active > 0); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRoutineNotFound
	}
	return err
}
