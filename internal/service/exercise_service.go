package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("an active exercise with this name already exists")
	ErrInvalidName      = errors.New("name must be between 3 and 100 characters")
)

// CreateExerciseInput carries the fields for a new catalog exercise.
type CreateExerciseInput struct {
	Name          string
	Description   string
	Image         *domain.ImageRef
	MuscleGroupID uuid.UUID
}

// UpdateExercisePatch carries a partial update; nil fields are left untouched.
type UpdateExercisePatch struct {
	Name          *string
	Description   *string
	Image         *domain.ImageRef
	MuscleGroupID *uuid.UUID
}

// ExerciseService manages the exercise catalog.
type ExerciseService interface {
	Create(ctx context.Context, input CreateExerciseInput) (*domain.Exercise, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateExercisePatch) (*domain.Exercise, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	groupRepo    repository.MuscleGroupRepository
	log          *logger.Logger
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, groupRepo repository.MuscleGroupRepository, baseLog *logger.Logger) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		groupRepo:    groupRepo,
		log:          baseLog.With("service", "ExerciseService"),
	}
}

func validateExerciseName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 100 {
		return "", ErrInvalidName
	}
	return name, nil
}

// resolveGroup loads the active muscle group an exercise wants to belong to.
func (s *exerciseService) resolveGroup(ctx context.Context, groupID uuid.UUID) (*domain.MuscleGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, err
	}
	if !group.IsActive {
		return nil, ErrMuscleGroupNotFound
	}
	return group, nil
}

// Create adds a catalog exercise, snapshotting the owning group's title into
// the denormalized MuscleGroupName column.
func (s *exerciseService) Create(ctx context.Context, input CreateExerciseInput) (*domain.Exercise, error) {
	name, err := validateExerciseName(input.Name)
	if err != nil {
		return nil, err
	}

	// 1. Validate the muscle group reference.
	group, err := s.resolveGroup(ctx, input.MuscleGroupID)
	if err != nil {
		return nil, err
	}

	// 2. Name must be unique among active exercises.
	existing, err := s.exerciseRepo.GetActiveByName(ctx, nil, name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrExerciseExists
	}

	// 3. Persist.
	exercise := &domain.Exercise{
		Name:            name,
		Description:     input.Description,
		Image:           input.Image,
		MuscleGroupID:   group.ID,
		MuscleGroupName: group.Title,
		IsActive:        true,
	}
	if err := s.exerciseRepo.Create(ctx, nil, exercise); err != nil {
		return nil, err
	}

	s.log.Info("exercise created", "exerciseId", exercise.ID, "name", exercise.Name)
	return exercise, nil
}

func (s *exerciseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if !exercise.IsActive {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

func (s *exerciseService) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAllActive(ctx, nil)
}

// Update patches the exercise. Changing MuscleGroupID re-validates the target
// group and refreshes the denormalized MuscleGroupName along with it.
func (s *exerciseService) Update(ctx context.Context, id uuid.UUID, patch UpdateExercisePatch) (*domain.Exercise, error) {
	exercise, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		newName, err := validateExerciseName(*patch.Name)
		if err != nil {
			return nil, err
		}
		if newName != exercise.Name {
			conflict, err := s.exerciseRepo.GetActiveByName(ctx, nil, newName)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			if conflict != nil && conflict.ID != exercise.ID {
				return nil, ErrExerciseExists
			}
		}
		exercise.Name = newName
	}
	if patch.Description != nil {
		exercise.Description = *patch.Description
	}
	if patch.Image != nil {
		exercise.Image = patch.Image
	}
	if patch.MuscleGroupID != nil && *patch.MuscleGroupID != exercise.MuscleGroupID {
		group, err := s.resolveGroup(ctx, *patch.MuscleGroupID)
		if err != nil {
			return nil, err
		}
		exercise.MuscleGroupID = group.ID
		exercise.MuscleGroupName = group.Title
	}

	if err := s.exerciseRepo.Save(ctx, nil, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// Delete deactivates the exercise; routine entries keep their own copied
// exercise names and are not affected.
func (s *exerciseService) Delete(ctx context.Context, id uuid.UUID) error {
	exercise, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	exercise.IsActive = false
	if err := s.exerciseRepo.Save(ctx, nil, exercise); err != nil {
		return err
	}

	s.log.Info("exercise deactivated", "exerciseId", exercise.ID)
	return nil
}
