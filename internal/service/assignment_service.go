package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyAssigned = errors.New("user already has this routine assigned")
	ErrNoActiveAssignment  = errors.New("user has no active assignment for this routine")
	ErrInvalidDateRange    = errors.New("end date must be after start date")
)

// --- Service Interface ---
//
// Two replacement policies coexist deliberately, mirroring the two flows the
// product exposes: a fresh Assign wipes the user's binding history (hard
// delete), while Reassign keeps it (soft deactivate). Both run inside a
// single transaction so an observer never sees a user with zero bindings
// mid-replacement, and both leave at most one active binding per user.
type AssignmentService interface {
	Assign(ctx context.Context, userID, routineID uuid.UUID, startDate time.Time, endDate *time.Time, notes string) (*domain.UserRoutine, error)
	Reassign(ctx context.Context, userID, routineID uuid.UUID, startDate time.Time, endDate *time.Time, notes string) (*domain.UserRoutine, error)
	Deactivate(ctx context.Context, userID, routineID uuid.UUID) (*domain.UserRoutine, error)
	Unassign(ctx context.Context, userID uuid.UUID) error
	UpdateDuration(ctx context.Context, userID uuid.UUID, startDate time.Time, endDate *time.Time) (*domain.UserRoutine, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserRoutine, error)
}

// --- Service Implementation ---

type assignmentService struct {
	db              *gorm.DB
	userRepo        repository.UserRepository
	routineRepo     repository.RoutineRepository
	userRoutineRepo repository.UserRoutineRepository
	log             *logger.Logger
}

// NewAssignmentService creates a new instance of assignmentService.
func NewAssignmentService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	routineRepo repository.RoutineRepository,
	userRoutineRepo repository.UserRoutineRepository,
	baseLog *logger.Logger,
) AssignmentService {
	return &assignmentService{
		db:              db,
		userRepo:        userRepo,
		routineRepo:     routineRepo,
		userRoutineRepo: userRoutineRepo,
		log:             baseLog.With("service", "AssignmentService"),
	}
}

// resolvePair checks that both sides of a binding exist.
func (s *assignmentService) resolvePair(ctx context.Context, userID, routineID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if _, err := s.routineRepo.GetByID(ctx, nil, routineID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}
	return nil
}

// Assign binds a routine to a user, wiping any prior bindings.
func (s *assignmentService) Assign(ctx context.Context, userID, routineID uuid.UUID, startDate time.Time, endDate *time.Time, notes string) (*domain.UserRoutine, error) {
	// 1. Both sides must exist.
	if err := s.resolvePair(ctx, userID, routineID); err != nil {
		return nil, err
	}

	// 2. Re-assigning the exact same routine while it is active is a conflict.
	_, err := s.userRoutineRepo.GetActiveByUserAndRoutine(ctx, nil, userID, routineID)
	if err == nil {
		return nil, ErrUserAlreadyAssigned
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3-4. Hard-delete every existing binding and insert the new active one,
	// atomically, keeping the denormalized flag in step.
	binding := &domain.UserRoutine{
		UserID:    userID,
		RoutineID: routineID,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  true,
		Notes:     notes,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRoutineRepo.DeleteAllByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.userRoutineRepo.Create(ctx, tx, binding); err != nil {
			return err
		}
		return s.userRepo.SetHasRoutine(ctx, tx, userID, true)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("routine assigned", "userId", userID, "routineId", routineID)
	return binding, nil
}

// Reassign replaces the user's active bindings with a new one, preserving
// history: prior bindings are deactivated, not deleted.
func (s *assignmentService) Reassign(ctx context.Context, userID, routineID uuid.UUID, startDate time.Time, endDate *time.Time, notes string) (*domain.UserRoutine, error) {
	if err := s.resolvePair(ctx, userID, routineID); err != nil {
		return nil, err
	}

	now := time.Now()
	binding := &domain.UserRoutine{
		UserID:    userID,
		RoutineID: routineID,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  true,
		Notes:     notes,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := s.userRoutineRepo.GetActiveByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		for i := range active {
			active[i].IsActive = false
			active[i].EndDate = &now
			if err := s.userRoutineRepo.Save(ctx, tx, &active[i]); err != nil {
				return err
			}
		}
		if err := s.userRoutineRepo.Create(ctx, tx, binding); err != nil {
			return err
		}
		return s.userRepo.SetHasRoutine(ctx, tx, userID, true)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("routine reassigned", "userId", userID, "routineId", routineID)
	return binding, nil
}

// Deactivate closes the active binding for the given pair.
func (s *assignmentService) Deactivate(ctx context.Context, userID, routineID uuid.UUID) (*domain.UserRoutine, error) {
	binding, err := s.userRoutineRepo.GetActiveByUserAndRoutine(ctx, nil, userID, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveAssignment
		}
		return nil, err
	}

	now := time.Now()
	binding.IsActive = false
	binding.EndDate = &now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRoutineRepo.Save(ctx, tx, binding); err != nil {
			return err
		}
		active, err := s.userRoutineRepo.CountActiveByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		return s.userRepo.SetHasRoutine(ctx, tx, userID, active > 0)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("routine deactivated", "userId", userID, "routineId", routineID)
	return binding, nil
}

// Unassign hard-deletes every binding the user has.
func (s *assignmentService) Unassign(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRoutineRepo.DeleteAllByUser(ctx, tx, userID); err != nil {
			return err
		}
		return s.userRepo.SetHasRoutine(ctx, tx, userID, false)
	})
}

// UpdateDuration moves the date range of the user's current active binding.
func (s *assignmentService) UpdateDuration(ctx context.Context, userID uuid.UUID, startDate time.Time, endDate *time.Time) (*domain.UserRoutine, error) {
	if endDate != nil && !endDate.After(startDate) {
		return nil, ErrInvalidDateRange
	}

	active, err := s.userRoutineRepo.GetActiveByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrNoActiveAssignment
	}

	binding := &active[0]
	binding.StartDate = startDate
	binding.EndDate = endDate
	if err := s.userRoutineRepo.Save(ctx, nil, binding); err != nil {
		return nil, err
	}
	return binding, nil
}

func (s *assignmentService) GetForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserRoutine, error) {
	if _, err := s.userRepo.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.userRoutineRepo.GetByUser(ctx, nil, userID)
}
