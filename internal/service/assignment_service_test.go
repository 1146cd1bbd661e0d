package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
)

func TestAssignSetsHasRoutine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)

	assert.False(t, user.HasRoutine)

	binding := env.assign(t, user.ID, routine.ID)
	assert.True(t, binding.IsActive)
	assert.Equal(t, routine.ID, binding.RoutineID)

	reloaded, err := env.userRepo.GetByID(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.HasRoutine)
}

func TestAssignSameActiveRoutineConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)

	env.assign(t, user.ID, routine.ID)

	_, err := env.assignments.Assign(ctx, user.ID, routine.ID, time.Now(), nil, "")
	assert.ErrorIs(t, err, ErrUserAlreadyAssigned)
}

func TestAssignReplacesBindingAndWipesHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	r1 := env.createRoutine(t, trainer.ID, 1, 1, 1)
	r2 := env.createRoutine(t, trainer.ID, 1, 1, 1)

	env.assign(t, user.ID, r1.ID)
	env.assign(t, user.ID, r2.ID)

	// Assign hard-deletes prior bindings: only the new one remains.
	bindings, err := env.assignments.GetForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, r2.ID, bindings[0].RoutineID)
	assert.True(t, bindings[0].IsActive)

	reloaded, err := env.userRepo.GetByID(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.HasRoutine)
}

func TestReassignKeepsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	r1 := env.createRoutine(t, trainer.ID, 1, 1, 1)
	r2 := env.createRoutine(t, trainer.ID, 1, 1, 1)

	env.assign(t, user.ID, r1.ID)

	_, err := env.assignments.Reassign(ctx, user.ID, r2.ID, time.Now(), nil, "switch")
	require.NoError(t, err)

	bindings, err := env.assignments.GetForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, bindings, 2)

	// Exactly one active binding, pointing at the new routine; the old one
	// is closed with an end date.
	var active, inactive *domain.UserRoutine
	for i := range bindings {
		if bindings[i].IsActive {
			active = &bindings[i]
		} else {
			inactive = &bindings[i]
		}
	}
	require.NotNil(t, active)
	require.NotNil(t, inactive)
	assert.Equal(t, r2.ID, active.RoutineID)
	assert.Equal(t, r1.ID, inactive.RoutineID)
	assert.NotNil(t, inactive.EndDate)
}

func TestDeactivateClearsHasRoutine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)

	env.assign(t, user.ID, routine.ID)

	binding, err := env.assignments.Deactivate(ctx, user.ID, routine.ID)
	require.NoError(t, err)
	assert.False(t, binding.IsActive)
	assert.NotNil(t, binding.EndDate)

	reloaded, err := env.userRepo.GetByID(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.HasRoutine)

	// The inactive row survives as history.
	bindings, err := env.assignments.GetForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, bindings, 1)
}

func TestDeactivateWithoutActiveBinding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)

	_, err := env.assignments.Deactivate(ctx, user.ID, routine.ID)
	assert.ErrorIs(t, err, ErrNoActiveAssignment)
}

func TestUnassignRemovesEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	r1 := env.createRoutine(t, trainer.ID, 1, 1, 1)
	r2 := env.createRoutine(t, trainer.ID, 1, 1, 1)

	env.assign(t, user.ID, r1.ID)
	_, err := env.assignments.Reassign(ctx, user.ID, r2.ID, time.Now(), nil, "")
	require.NoError(t, err)

	require.NoError(t, env.assignments.Unassign(ctx, user.ID))

	bindings, err := env.assignments.GetForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, bindings)

	reloaded, err := env.userRepo.GetByID(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.HasRoutine)
}

func TestUpdateDurationValidatesRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)
	env.assign(t, user.ID, routine.ID)

	start := time.Now()
	before := start.Add(-24 * time.Hour)
	_, err := env.assignments.UpdateDuration(ctx, user.ID, start, &before)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	after := start.Add(30 * 24 * time.Hour)
	binding, err := env.assignments.UpdateDuration(ctx, user.ID, start, &after)
	require.NoError(t, err)
	require.NotNil(t, binding.EndDate)
	assert.WithinDuration(t, after, *binding.EndDate, time.Second)
}

func TestAssignUnknownUserOrRoutine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)

	_, err := env.assignments.Assign(ctx, uuid.New(), routine.ID, time.Now(), nil, "")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.assignments.Assign(ctx, user.ID, uuid.New(), time.Now(), nil, "")
	assert.ErrorIs(t, err, ErrRoutineNotFound)
}
