package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
)

func TestCreateRoutineRequiresTrainer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, domain.RoleUser)

	_, err := env.routines.Create(ctx, user.ID, CreateRoutineInput{Name: "Block"})
	assert.ErrorIs(t, err, ErrTrainerNotFound)

	_, err = env.routines.Create(ctx, uuid.New(), CreateRoutineInput{Name: "Block"})
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestCreateRoutineReturnsSortedTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)

	// Supply weeks, days and exercises out of order; reads sort by the
	// number/order columns.
	input := CreateRoutineInput{
		Name:       "Hypertrophy",
		TotalWeeks: 2,
		Weeks: []WeekInput{
			{
				WeekNumber: 2,
				Days: []DayInput{
					{DayNumber: 1, Exercises: []ExerciseEntryInput{
						{Name: "Row", Sets: 3, Repetitions: 8, Order: 1},
					}},
				},
			},
			{
				WeekNumber: 1,
				Days: []DayInput{
					{DayNumber: 2, Exercises: []ExerciseEntryInput{
						{Name: "Curl", Sets: 3, Repetitions: 12, Order: 1},
					}},
					{DayNumber: 1, Exercises: []ExerciseEntryInput{
						{Name: "Press", Sets: 5, Repetitions: 5, Order: 2},
						{Name: "Squat", Sets: 5, Repetitions: 5, Order: 1},
					}},
				},
			},
		},
	}

	routine, err := env.routines.Create(ctx, trainer.ID, input)
	require.NoError(t, err)
	require.Len(t, routine.Weeks, 2)

	assert.Equal(t, 1, routine.Weeks[0].WeekNumber)
	assert.Equal(t, 2, routine.Weeks[1].WeekNumber)

	week1 := routine.Weeks[0]
	require.Len(t, week1.Days, 2)
	assert.Equal(t, 1, week1.Days[0].DayNumber)
	assert.Equal(t, 2, week1.Days[1].DayNumber)

	day1 := week1.Days[0]
	require.Len(t, day1.Exercises, 2)
	assert.Equal(t, "Squat", day1.Exercises[0].Name)
	assert.Equal(t, "Press", day1.Exercises[1].Name)

	// Round trip through Get yields the same ordering.
	fetched, err := env.routines.Get(ctx, routine.ID)
	require.NoError(t, err)
	assert.Equal(t, routine.Weeks[0].ID, fetched.Weeks[0].ID)
}

func TestUpdateRoutineScalarsOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	routine := env.createRoutine(t, trainer.ID, 2, 1, 1)

	name := "Renamed Block"
	inactive := false
	updated, err := env.routines.Update(ctx, routine.ID, UpdateRoutinePatch{
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Block", updated.Name)
	assert.False(t, updated.IsActive)

	// The subtree is untouched when the patch carries no weeks.
	require.Len(t, updated.Weeks, 2)
	assert.Equal(t, routine.Weeks[0].ID, updated.Weeks[0].ID)
}

func TestUpdateRoutineReplacesWeekSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	routine := env.createRoutine(t, trainer.ID, 2, 2, 2)
	oldWeekID := routine.Weeks[0].ID

	updated, err := env.routines.Update(ctx, routine.ID, UpdateRoutinePatch{
		Weeks: []WeekInput{
			{
				WeekNumber: 1,
				Name:       "Deload",
				Days: []DayInput{
					{DayNumber: 1, Exercises: []ExerciseEntryInput{
						{Name: "Walk", Sets: 1, Repetitions: 1, Order: 1},
					}},
				},
			},
		},
	})
	require.NoError(t, err)

	// Full replace: the old tree is gone, ids are fresh.
	require.Len(t, updated.Weeks, 1)
	assert.NotEqual(t, oldWeekID, updated.Weeks[0].ID)
	assert.Equal(t, "Deload", updated.Weeks[0].Name)
	require.Len(t, updated.Weeks[0].Days, 1)
	require.Len(t, updated.Weeks[0].Days[0].Exercises, 1)

	// Nothing from the old subtree survives in the database.
	total, err := env.routineRepo.CountWeeksByRoutine(ctx, nil, routine.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestUpdateRoutineNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.routines.Update(context.Background(), uuid.New(), UpdateRoutinePatch{})
	assert.ErrorIs(t, err, ErrRoutineNotFound)
}

func TestDeleteRoutineDropsBindingsAndRecomputesFlag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)
	env.assign(t, user.ID, routine.ID)

	require.NoError(t, env.routines.Delete(ctx, routine.ID))

	_, err := env.routines.Get(ctx, routine.ID)
	assert.ErrorIs(t, err, ErrRoutineNotFound)

	bindings, err := env.assignments.GetForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, bindings)

	reloaded, err := env.userRepo.GetByID(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.HasRoutine)
}

func TestGetByTrainerScopesToAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t1 := env.createUser(t, domain.RoleTrainer)
	t2 := env.createUser(t, domain.RoleTrainer)
	env.createRoutine(t, t1.ID, 1, 1, 1)
	env.createRoutine(t, t1.ID, 1, 1, 1)
	env.createRoutine(t, t2.ID, 1, 1, 1)

	routines, err := env.routines.GetByTrainer(ctx, t1.ID)
	require.NoError(t, err)
	assert.Len(t, routines, 2)
}
