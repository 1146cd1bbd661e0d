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
	ErrMuscleGroupNotFound = errors.New("muscle group not found")
	ErrMuscleGroupExists   = errors.New("an active muscle group with this title already exists")
	ErrInvalidTitle        = errors.New("title must be between 3 and 100 characters")
)

// MuscleGroupService manages the muscle group catalog. Groups are never hard
// deleted; Delete deactivates them so exercises keep a valid reference.
type MuscleGroupService interface {
	Create(ctx context.Context, title, description, image string) (*domain.MuscleGroup, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MuscleGroup, error)
	GetAll(ctx context.Context) ([]domain.MuscleGroup, error)
	Update(ctx context.Context, id uuid.UUID, title, description, image *string) (*domain.MuscleGroup, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type muscleGroupService struct {
	groupRepo repository.MuscleGroupRepository
	log       *logger.Logger
}

// NewMuscleGroupService creates a new instance of muscleGroupService.
func NewMuscleGroupService(groupRepo repository.MuscleGroupRepository, baseLog *logger.Logger) MuscleGroupService {
	return &muscleGroupService{
		groupRepo: groupRepo,
		log:       baseLog.With("service", "MuscleGroupService"),
	}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if len(title) < 3 || len(title) > 100 {
		return "", ErrInvalidTitle
	}
	return title, nil
}

// Create adds a muscle group. Titles are unique among active groups only; a
// deactivated group does not block re-use of its title.
func (s *muscleGroupService) Create(ctx context.Context, title, description, image string) (*domain.MuscleGroup, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	// 1. Check for an active group with the same title.
	existing, err := s.groupRepo.GetActiveByTitle(ctx, nil, title)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMuscleGroupExists
	}

	// 2. Persist.
	group := &domain.MuscleGroup{
		Title:       title,
		Description: description,
		Image:       image,
		IsActive:    true,
	}
	if err := s.groupRepo.Create(ctx, nil, group); err != nil {
		return nil, err
	}

	s.log.Info("muscle group created", "muscleGroupId", group.ID, "title", group.Title)
	return group, nil
}

func (s *muscleGroupService) GetByID(ctx context.Context, id uuid.UUID) (*domain.MuscleGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, nil, id)
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

func (s *muscleGroupService) GetAll(ctx context.Context) ([]domain.MuscleGroup, error) {
	return s.groupRepo.GetAllActive(ctx, nil)
}

// Update patches the given fields; nil pointers leave the field untouched.
func (s *muscleGroupService) Update(ctx context.Context, id uuid.UUID, title, description, image *string) (*domain.MuscleGroup, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		newTitle, err := validateTitle(*title)
		if err != nil {
			return nil, err
		}
		if newTitle != group.Title {
			conflict, err := s.groupRepo.GetActiveByTitle(ctx, nil, newTitle)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			if conflict != nil && conflict.ID != group.ID {
				return nil, ErrMuscleGroupExists
			}
		}
		group.Title = newTitle
	}
	if description != nil {
		group.Description = *description
	}
	if image != nil {
		group.Image = *image
	}

	if err := s.groupRepo.Save(ctx, nil, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete deactivates the group. Exercises referencing it keep their stored
// muscleGroupName, so historical data stays readable.
func (s *muscleGroupService) Delete(ctx context.Context, id uuid.UUID) error {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	group.IsActive = false
	if err := s.groupRepo.Save(ctx, nil, group); err != nil {
		return err
	}

	s.log.Info("muscle group deactivated", "muscleGroupId", group.ID)
	return nil
}
