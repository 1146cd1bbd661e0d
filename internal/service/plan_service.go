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
	ErrPlanNotFound    = errors.New("plan not found")
	ErrInvalidPlan     = errors.New("plan requires a name, a duration and a non-negative price")
	ErrPlanNoFeatures  = errors.New("plan requires at least one feature")
	ErrInvalidPlanType = errors.New("invalid plan type")
)

// CreatePlanInput carries the fields for a new subscription plan.
type CreatePlanInput struct {
	Name     string
	Price    float64
	Duration string
	Type     domain.PlanType
	Detail   string
	Features []string
	Badge    *domain.Badge
	Image    *domain.ImageRef
}

// UpdatePlanPatch carries a partial update; nil fields are left untouched.
type UpdatePlanPatch struct {
	Name     *string
	Price    *float64
	Duration *string
	Type     *domain.PlanType
	Detail   *string
	Features []string
	Badge    *domain.Badge
	Image    *domain.ImageRef
	IsActive *bool
}

// PlanService manages subscription plans. Plans are the one catalog that hard
// deletes; there is no tombstone to resurrect.
type PlanService interface {
	Create(ctx context.Context, input CreatePlanInput) (*domain.Plan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
	GetAll(ctx context.Context) ([]domain.Plan, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdatePlanPatch) (*domain.Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type planService struct {
	planRepo repository.PlanRepository
	log      *logger.Logger
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, baseLog *logger.Logger) PlanService {
	return &planService{
		planRepo: planRepo,
		log:      baseLog.With("service", "PlanService"),
	}
}

func validatePlanType(t domain.PlanType) error {
	switch t {
	case "", domain.PlanTypeUser, domain.PlanTypeTrainer:
		return nil
	}
	return ErrInvalidPlanType
}

func (s *planService) Create(ctx context.Context, input CreatePlanInput) (*domain.Plan, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.Duration) == "" || input.Price < 0 {
		return nil, ErrInvalidPlan
	}
	if len(input.Features) == 0 {
		return nil, ErrPlanNoFeatures
	}
	if err := validatePlanType(input.Type); err != nil {
		return nil, err
	}

	plan := &domain.Plan{
		Name:     name,
		Price:    input.Price,
		Duration: input.Duration,
		Type:     input.Type,
		Detail:   input.Detail,
		Features: input.Features,
		Badge:    input.Badge,
		Image:    input.Image,
		IsActive: true,
	}
	if err := s.planRepo.Create(ctx, nil, plan); err != nil {
		return nil, err
	}

	s.log.Info("plan created", "planId", plan.ID, "name", plan.Name)
	return plan, nil
}

func (s *planService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetAll(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.GetAll(ctx, nil)
}

func (s *planService) Update(ctx context.Context, id uuid.UUID, patch UpdatePlanPatch) (*domain.Plan, error) {
	plan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrInvalidPlan
		}
		plan.Name = name
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, ErrInvalidPlan
		}
		plan.Price = *patch.Price
	}
	if patch.Duration != nil {
		if strings.TrimSpace(*patch.Duration) == "" {
			return nil, ErrInvalidPlan
		}
		plan.Duration = *patch.Duration
	}
	if patch.Type != nil {
		if err := validatePlanType(*patch.Type); err != nil {
			return nil, err
		}
		plan.Type = *patch.Type
	}
	if patch.Detail != nil {
		plan.Detail = *patch.Detail
	}
	if patch.Features != nil {
		if len(patch.Features) == 0 {
			return nil, ErrPlanNoFeatures
		}
		plan.Features = patch.Features
	}
	if patch.Badge != nil {
		plan.Badge = patch.Badge
	}
	if patch.Image != nil {
		plan.Image = patch.Image
	}
	if patch.IsActive != nil {
		plan.IsActive = *patch.IsActive
	}

	if err := s.planRepo.Save(ctx, nil, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.planRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	s.log.Info("plan deleted", "planId", id)
	return nil
}
