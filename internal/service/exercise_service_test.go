package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
)

func newCatalogServices(t *testing.T) (MuscleGroupService, ExerciseService) {
	t.Helper()
	env := newTestEnv(t)
	nop := logger.NewNop()
	return NewMuscleGroupService(env.muscleGroupRepo, nop),
		NewExerciseService(env.exerciseRepo, env.muscleGroupRepo, nop)
}

func TestExerciseCreateSnapshotsGroupName(t *testing.T) {
	groups, exercises := newCatalogServices(t)
	ctx := context.Background()

	chest, err := groups.Create(ctx, "Chest", "", "")
	require.NoError(t, err)

	exercise, err := exercises.Create(ctx, CreateExerciseInput{
		Name:          "Bench Press",
		MuscleGroupID: chest.ID,
		Image:         &domain.ImageRef{Type: "url", URL: "https://cdn.example.com/bench.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Chest", exercise.MuscleGroupName)
}

func TestExerciseCreateRejectsUnknownOrInactiveGroup(t *testing.T) {
	groups, exercises := newCatalogServices(t)
	ctx := context.Background()

	legs, err := groups.Create(ctx, "Legs", "", "")
	require.NoError(t, err)
	require.NoError(t, groups.Delete(ctx, legs.ID))

	_, err = exercises.Create(ctx, CreateExerciseInput{Name: "Squat", MuscleGroupID: legs.ID})
	assert.ErrorIs(t, err, ErrMuscleGroupNotFound)
}

func TestExerciseDuplicateActiveName(t *testing.T) {
	groups, exercises := newCatalogServices(t)
	ctx := context.Background()

	back, err := groups.Create(ctx, "Back", "", "")
	require.NoError(t, err)

	_, err = exercises.Create(ctx, CreateExerciseInput{Name: "Deadlift", MuscleGroupID: back.ID})
	require.NoError(t, err)
	_, err = exercises.Create(ctx, CreateExerciseInput{Name: "Deadlift", MuscleGroupID: back.ID})
	assert.ErrorIs(t, err, ErrExerciseExists)
}

func TestExerciseUpdateRefreshesGroupName(t *testing.T) {
	groups, exercises := newCatalogServices(t)
	ctx := context.Background()

	chest, err := groups.Create(ctx, "Chest", "", "")
	require.NoError(t, err)
	shoulders, err := groups.Create(ctx, "Shoulders", "", "")
	require.NoError(t, err)

	exercise, err := exercises.Create(ctx, CreateExerciseInput{Name: "Overhead Press", MuscleGroupID: chest.ID})
	require.NoError(t, err)
	require.Equal(t, "Chest", exercise.MuscleGroupName)

	updated, err := exercises.Update(ctx, exercise.ID, UpdateExercisePatch{MuscleGroupID: &shoulders.ID})
	require.NoError(t, err)
	assert.Equal(t, shoulders.ID, updated.MuscleGroupID)
	assert.Equal(t, "Shoulders", updated.MuscleGroupName)
}

func TestExerciseSoftDelete(t *testing.T) {
	groups, exercises := newCatalogServices(t)
	ctx := context.Background()

	arms, err := groups.Create(ctx, "Arms", "", "")
	require.NoError(t, err)
	exercise, err := exercises.Create(ctx, CreateExerciseInput{Name: "Curl", MuscleGroupID: arms.ID})
	require.NoError(t, err)

	require.NoError(t, exercises.Delete(ctx, exercise.ID))

	_, err = exercises.GetByID(ctx, exercise.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	all, err := exercises.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
