package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

func TestMarkExerciseRequiresAssignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)
	entryID := routine.Weeks[0].Days[0].Exercises[0].ID

	_, err := env.progress.MarkExerciseCompleted(ctx, user.ID, entryID, true, nil)
	assert.ErrorIs(t, err, ErrRoutineNotAssigned)

	_, err = env.progress.MarkExerciseCompleted(ctx, user.ID, uuid.New(), true, nil)
	assert.ErrorIs(t, err, ErrExerciseEntryNotFound)
}

func TestMarkExerciseCascadesToRoutineCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	// 1 week, 2 days, 2 exercises per day.
	routine := env.createRoutine(t, trainer.ID, 1, 2, 2)
	env.assign(t, user.ID, routine.ID)

	week := routine.Weeks[0]
	day1, day2 := week.Days[0], week.Days[1]

	// Completing one of two exercises does not complete the day.
	_, err := env.progress.MarkExerciseCompleted(ctx, user.ID, day1.Exercises[0].ID, true, nil)
	require.NoError(t, err)
	_, err = env.progressRepo.GetDay(ctx, nil, user.ID, day1.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Completing the second flips the day, feeds the week counter, but the
	// week stays open while day 2 is untouched.
	_, err = env.progress.MarkExerciseCompleted(ctx, user.ID, day1.Exercises[1].ID, true, nil)
	require.NoError(t, err)

	dayRow, err := env.progressRepo.GetDay(ctx, nil, user.ID, day1.ID)
	require.NoError(t, err)
	assert.True(t, dayRow.IsCompleted)
	require.NotNil(t, dayRow.CompletedAt)

	weekRow, err := env.progressRepo.GetWeek(ctx, nil, user.ID, week.ID)
	require.NoError(t, err)
	assert.False(t, weekRow.IsCompleted)
	assert.Equal(t, 1, weekRow.CompletedDays)

	// Finishing day 2 rolls all the way up to the routine.
	for _, entry := range day2.Exercises {
		_, err = env.progress.MarkExerciseCompleted(ctx, user.ID, entry.ID, true, nil)
		require.NoError(t, err)
	}

	weekRow, err = env.progressRepo.GetWeek(ctx, nil, user.ID, week.ID)
	require.NoError(t, err)
	assert.True(t, weekRow.IsCompleted)
	assert.Equal(t, 2, weekRow.CompletedDays)

	routineRow, err := env.progressRepo.GetRoutine(ctx, nil, user.ID, routine.ID)
	require.NoError(t, err)
	assert.True(t, routineRow.IsCompleted)
	assert.Equal(t, 1, routineRow.CompletedWeeks)
	assert.Equal(t, 2, routineRow.CompletedDays)
	assert.Equal(t, 4, routineRow.CompletedExercises)
}

func TestUnmarkExerciseDoesNotUncompleteAncestors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 2)
	env.assign(t, user.ID, routine.ID)

	day := routine.Weeks[0].Days[0]
	for _, entry := range day.Exercises {
		_, err := env.progress.MarkExerciseCompleted(ctx, user.ID, entry.ID, true, nil)
		require.NoError(t, err)
	}

	dayRow, err := env.progressRepo.GetDay(ctx, nil, user.ID, day.ID)
	require.NoError(t, err)
	require.True(t, dayRow.IsCompleted)

	// Un-marking one exercise flips only the exercise row.
	row, err := env.progress.MarkExerciseCompleted(ctx, user.ID, day.Exercises[0].ID, false, nil)
	require.NoError(t, err)
	assert.False(t, row.IsCompleted)
	assert.Nil(t, row.CompletedAt)

	dayRow, err = env.progressRepo.GetDay(ctx, nil, user.ID, day.ID)
	require.NoError(t, err)
	assert.True(t, dayRow.IsCompleted)
}

func TestMarkExerciseIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)
	env.assign(t, user.ID, routine.ID)

	entryID := routine.Weeks[0].Days[0].Exercises[0].ID
	first, err := env.progress.MarkExerciseCompleted(ctx, user.ID, entryID, true, nil)
	require.NoError(t, err)
	second, err := env.progress.MarkExerciseCompleted(ctx, user.ID, entryID, true, nil)
	require.NoError(t, err)

	// One row per (user, entry), updated in place.
	assert.Equal(t, first.ID, second.ID)

	rows, err := env.progressRepo.ListExerciseByRoutine(ctx, nil, user.ID, routine.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMarkExerciseStoresProgressData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)
	env.assign(t, user.ID, routine.ID)

	entryID := routine.Weeks[0].Days[0].Exercises[0].ID
	payload := []byte(`{"weightKg":80,"actualSets":3}`)
	row, err := env.progress.MarkExerciseCompleted(ctx, user.ID, entryID, true, payload)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(row.ProgressData))

	// A later toggle without data keeps the stored payload.
	row, err = env.progress.MarkExerciseCompleted(ctx, user.ID, entryID, true, nil)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(row.ProgressData))
}

func TestSimpleVariantsDoNotCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)
	env.assign(t, user.ID, routine.ID)

	day := routine.Weeks[0].Days[0]
	entryID := day.Exercises[0].ID

	row, err := env.progress.MarkExerciseSimple(ctx, user.ID, entryID, true, nil)
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)

	// The single exercise is the whole day, but the simple variant must not
	// have rolled anything up.
	_, err = env.progressRepo.GetDay(ctx, nil, user.ID, day.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = env.progress.MarkDaySimple(ctx, user.ID, day.ID, true, "felt good", 45)
	require.NoError(t, err)
	_, err = env.progressRepo.GetWeek(ctx, nil, user.ID, routine.Weeks[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMarkDayCompletedCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)
	env.assign(t, user.ID, routine.ID)

	day := routine.Weeks[0].Days[0]
	row, err := env.progress.MarkDayCompleted(ctx, user.ID, day.ID, true, "done", 30)
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)
	assert.Equal(t, "done", row.Notes)
	assert.Equal(t, 30, row.DurationMinutes)

	// Single-day week: the week and routine roll up in the same call.
	weekRow, err := env.progressRepo.GetWeek(ctx, nil, user.ID, routine.Weeks[0].ID)
	require.NoError(t, err)
	assert.True(t, weekRow.IsCompleted)

	routineRow, err := env.progressRepo.GetRoutine(ctx, nil, user.ID, routine.ID)
	require.NoError(t, err)
	assert.True(t, routineRow.IsCompleted)
	assert.Equal(t, 1, routineRow.CompletedDays)
}

func TestGetUserProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 2, 1, 1)
	env.assign(t, user.ID, routine.ID)

	// Nothing recorded yet: empty aggregate, no routine row.
	progress, err := env.progress.GetUserProgress(ctx, user.ID, routine.ID)
	require.NoError(t, err)
	assert.Nil(t, progress.Routine)
	assert.Empty(t, progress.Exercises)

	// Complete week 1 entirely.
	entry := routine.Weeks[0].Days[0].Exercises[0]
	_, err = env.progress.MarkExerciseCompleted(ctx, user.ID, entry.ID, true, nil)
	require.NoError(t, err)

	progress, err = env.progress.GetUserProgress(ctx, user.ID, routine.ID)
	require.NoError(t, err)
	require.NotNil(t, progress.Routine)
	assert.False(t, progress.Routine.IsCompleted)
	assert.Equal(t, 1, progress.Routine.CompletedWeeks)
	assert.Len(t, progress.Exercises, 1)
	assert.Len(t, progress.Days, 1)
	assert.Len(t, progress.Weeks, 1)
}

func TestMarkRoutineSimple(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trainer := env.createUser(t, domain.RoleTrainer)
	user := env.createUser(t, domain.RoleUser)
	routine := env.createRoutine(t, trainer.ID, 1, 1, 1)
	env.assign(t, user.ID, routine.ID)

	row, err := env.progress.MarkRoutineSimple(ctx, user.ID, routine.ID, true, "wrapped up early")
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)
	assert.Equal(t, "wrapped up early", row.Notes)
	// Counters stay at zero: the simple mark does not recompute.
	assert.Equal(t, 0, row.CompletedWeeks)

	row, err = env.progress.MarkRoutineSimple(ctx, user.ID, routine.ID, false, "")
	require.NoError(t, err)
	assert.False(t, row.IsCompleted)
	assert.Nil(t, row.CompletedAt)
}
