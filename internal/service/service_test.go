package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository/postgres"
)

// testEnv wires every repository and service against one in-memory sqlite
// database. Each test gets a fresh database.
type testEnv struct {
	db *gorm.DB

	userRepo        repository.UserRepository
	muscleGroupRepo repository.MuscleGroupRepository
	exerciseRepo    repository.ExerciseRepository
	routineRepo     repository.RoutineRepository
	userRoutineRepo repository.UserRoutineRepository
	progressRepo    repository.ProgressRepository
	planRepo        repository.PlanRepository
	mediaRepo       repository.MediaAssetRepository
	documentRepo    repository.DocumentRepository

	routines    RoutineService
	assignments AssignmentService
	progress    ProgressService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, postgres.Migrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	env := &testEnv{
		db:              db,
		userRepo:        postgres.NewUserRepository(db),
		muscleGroupRepo: postgres.NewMuscleGroupRepository(db),
		exerciseRepo:    postgres.NewExerciseRepository(db),
		routineRepo:     postgres.NewRoutineRepository(db),
		userRoutineRepo: postgres.NewUserRoutineRepository(db),
		progressRepo:    postgres.NewProgressRepository(db),
		planRepo:        postgres.NewPlanRepository(db),
		mediaRepo:       postgres.NewMediaAssetRepository(db),
		documentRepo:    postgres.NewDocumentRepository(db),
	}

	nop := logger.NewNop()
	env.routines = NewRoutineService(db, env.userRepo, env.routineRepo, env.userRoutineRepo, nop)
	env.assignments = NewAssignmentService(db, env.userRepo, env.routineRepo, env.userRoutineRepo, nop)
	env.progress = NewProgressService(db, env.routineRepo, env.userRoutineRepo, env.progressRepo, nop)
	return env
}

func (env *testEnv) createUser(t *testing.T, role domain.Role) *domain.User {
	t.Helper()

	user := &domain.User{
		Name:         "Test " + string(role),
		Email:        fmt.Sprintf("%s-%s@example.com", role, uuid.New().String()[:8]),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, env.userRepo.Create(context.Background(), nil, user))
	return user
}

// createRoutine builds a routine tree through the service: weeks x days x
// exercises per day, all numbered from 1.
func (env *testEnv) createRoutine(t *testing.T, trainerID uuid.UUID, weeks, days, exercises int) *domain.Routine {
	t.Helper()

	input := CreateRoutineInput{
		Name:       "Strength Block",
		TotalWeeks: weeks,
	}
	for w := 1; w <= weeks; w++ {
		week := WeekInput{WeekNumber: w, Name: fmt.Sprintf("Week %d", w)}
		for d := 1; d <= days; d++ {
			day := DayInput{DayNumber: d, Name: fmt.Sprintf("Day %d", d)}
			for e := 1; e <= exercises; e++ {
				day.Exercises = append(day.Exercises, ExerciseEntryInput{
					Name:        fmt.Sprintf("Exercise %d", e),
					Sets:        3,
					Repetitions: 10,
					Order:       e,
				})
			}
			week.Days = append(week.Days, day)
		}
		input.Weeks = append(input.Weeks, week)
	}

	routine, err := env.routines.Create(context.Background(), trainerID, input)
	require.NoError(t, err)
	return routine
}

// assign gives the user an active binding for the routine.
func (env *testEnv) assign(t *testing.T, userID, routineID uuid.UUID) *domain.UserRoutine {
	t.Helper()

	binding, err := env.assignments.Assign(context.Background(), userID, routineID, time.Now(), nil, "")
	require.NoError(t, err)
	return binding
}
