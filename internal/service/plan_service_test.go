package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
)

func newPlanService(t *testing.T) PlanService {
	t.Helper()
	env := newTestEnv(t)
	return NewPlanService(env.planRepo, logger.NewNop())
}

func TestPlanCreateValidation(t *testing.T) {
	svc := newPlanService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePlanInput{Name: "", Duration: "1 month", Features: []string{"a"}})
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = svc.Create(ctx, CreatePlanInput{Name: "Basic", Duration: "1 month", Price: -1, Features: []string{"a"}})
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = svc.Create(ctx, CreatePlanInput{Name: "Basic", Duration: "1 month"})
	assert.ErrorIs(t, err, ErrPlanNoFeatures)

	_, err = svc.Create(ctx, CreatePlanInput{
		Name: "Basic", Duration: "1 month", Features: []string{"a"}, Type: "vip",
	})
	assert.ErrorIs(t, err, ErrInvalidPlanType)

	// Free plans are fine.
	plan, err := svc.Create(ctx, CreatePlanInput{
		Name:     "Starter",
		Price:    0,
		Duration: "1 month",
		Type:     domain.PlanTypeUser,
		Features: []string{"1 routine", "email support"},
		Badge:    &domain.Badge{Color: "#00ff00", Name: "Popular"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1 routine", "email support"}, plan.Features)
	assert.True(t, plan.IsActive)
}

func TestPlanUpdatePreservesFeatureOrder(t *testing.T) {
	svc := newPlanService(t)
	ctx := context.Background()

	plan, err := svc.Create(ctx, CreatePlanInput{
		Name: "Pro", Price: 29.99, Duration: "1 month",
		Features: []string{"b", "a", "c"},
	})
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, fetched.Features)

	price := 39.99
	updated, err := svc.Update(ctx, plan.ID, UpdatePlanPatch{
		Price:    &price,
		Features: []string{"c", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 39.99, updated.Price)
	assert.Equal(t, []string{"c", "b"}, updated.Features)
}

func TestPlanHardDelete(t *testing.T) {
	svc := newPlanService(t)
	ctx := context.Background()

	plan, err := svc.Create(ctx, CreatePlanInput{
		Name: "Elite", Price: 99, Duration: "1 year", Features: []string{"everything"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, plan.ID))

	_, err = svc.GetByID(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), ErrPlanNotFound)
}
