package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
)

func newMuscleGroupService(t *testing.T) (*testEnv, MuscleGroupService) {
	t.Helper()
	env := newTestEnv(t)
	return env, NewMuscleGroupService(env.muscleGroupRepo, logger.NewNop())
}

func TestMuscleGroupTitleValidation(t *testing.T) {
	_, svc := newMuscleGroupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "ab", "", "")
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = svc.Create(ctx, strings.Repeat("x", 101), "", "")
	assert.ErrorIs(t, err, ErrInvalidTitle)

	group, err := svc.Create(ctx, "  Chest  ", "pectorals", "")
	require.NoError(t, err)
	assert.Equal(t, "Chest", group.Title)
	assert.True(t, group.IsActive)
}

func TestMuscleGroupDuplicateActiveTitle(t *testing.T) {
	_, svc := newMuscleGroupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Back", "", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Back", "", "")
	assert.ErrorIs(t, err, ErrMuscleGroupExists)
}

func TestMuscleGroupSoftDeleteFreesTitle(t *testing.T) {
	_, svc := newMuscleGroupService(t)
	ctx := context.Background()

	group, err := svc.Create(ctx, "Legs", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, group.ID))

	// Deactivated groups disappear from reads...
	_, err = svc.GetByID(ctx, group.ID)
	assert.ErrorIs(t, err, ErrMuscleGroupNotFound)

	groups, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	// ...and no longer block their title.
	_, err = svc.Create(ctx, "Legs", "", "")
	assert.NoError(t, err)
}

func TestMuscleGroupUpdateTitleConflict(t *testing.T) {
	_, svc := newMuscleGroupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Shoulders", "", "")
	require.NoError(t, err)
	arms, err := svc.Create(ctx, "Arms", "", "")
	require.NoError(t, err)

	conflicting := "Shoulders"
	_, err = svc.Update(ctx, arms.ID, &conflicting, nil, nil)
	assert.ErrorIs(t, err, ErrMuscleGroupExists)

	// Re-saving under its own title is not a conflict.
	same := "Arms"
	desc := "biceps and triceps"
	updated, err := svc.Update(ctx, arms.ID, &same, &desc, nil)
	require.NoError(t, err)
	assert.Equal(t, "biceps and triceps", updated.Description)
}

func TestMuscleGroupImageRoundTrip(t *testing.T) {
	_, svc := newMuscleGroupService(t)
	ctx := context.Background()

	group, err := svc.Create(ctx, "Core", "abs and lower back", "https://cdn.example.com/core.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/core.png", group.Image)

	fetched, err := svc.GetByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/core.png", fetched.Image)

	newImage := "https://cdn.example.com/core-v2.png"
	updated, err := svc.Update(ctx, group.ID, nil, nil, &newImage)
	require.NoError(t, err)
	assert.Equal(t, newImage, updated.Image)
	assert.Equal(t, "abs and lower back", updated.Description)
}

func TestMuscleGroupNotFound(t *testing.T) {
	_, svc := newMuscleGroupService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrMuscleGroupNotFound)
}
