package postgres

import (
	"fmt"
	"log"
	"os"
	"time"

	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
)

// ConnectDB opens a gorm handle against postgres.
func ConnectDB(dsn string) (*gorm.DB, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates/updates the schema for every entity, then installs the
// constraints AutoMigrate can't express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.MuscleGroup{},
		&domain.Exercise{},
		&domain.Routine{},
		&domain.Week{},
		&domain.Day{},
		&domain.ExerciseEntry{},
		&domain.UserRoutine{},
		&domain.UserExerciseProgress{},
		&domain.UserDayProgress{},
		&domain.UserWeekProgress{},
		&domain.UserRoutineProgress{},
		&domain.Plan{},
		&domain.MediaAsset{},
		&domain.TrainerDocument{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial unique index backing the one-active-routine-per-user invariant.
	// Two concurrent assigns can otherwise both pass the service-level check;
	// with this index the second insert fails instead of leaving two active
	// rows. Postgres only; tests on sqlite rely on the service-level guard.
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_routines_one_active
			 ON user_routines (user_id) WHERE is_active`,
		).Error; err != nil {
			return fmt.Errorf("create partial unique index: %w", err)
		}
	}
	return nil
}
