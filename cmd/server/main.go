package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/api"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/config"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository/postgres"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/storage"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	// --- Logger ---
	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("configuration loaded", "mode", cfg.Log.Mode)

	// --- Database Connection ---
	db, err := postgres.ConnectDB(cfg.Database.DSN())
	if err != nil {
		appLog.Fatal("could not connect to database", "error", err)
	}
	if err := postgres.Migrate(db); err != nil {
		appLog.Fatal("could not run migrations", "error", err)
	}
	appLog.Info("database connection established")

	// --- File Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, appLog)
	if err != nil {
		appLog.Fatal("could not initialize S3 storage", "error", err)
	}

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	muscleGroupRepo := postgres.NewMuscleGroupRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	routineRepo := postgres.NewRoutineRepository(db)
	userRoutineRepo := postgres.NewUserRoutineRepository(db)
	progressRepo := postgres.NewProgressRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	mediaRepo := postgres.NewMediaAssetRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)

	// --- Services ---
	svcs := api.Services{
		Auth:        service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Routine:     service.NewRoutineService(db, userRepo, routineRepo, userRoutineRepo, appLog),
		Assignment:  service.NewAssignmentService(db, userRepo, routineRepo, userRoutineRepo, appLog),
		Progress:    service.NewProgressService(db, routineRepo, userRoutineRepo, progressRepo, appLog),
		MuscleGroup: service.NewMuscleGroupService(muscleGroupRepo, appLog),
		Exercise:    service.NewExerciseService(exerciseRepo, muscleGroupRepo, appLog),
		Plan:        service.NewPlanService(planRepo, appLog),
		Media:       service.NewMediaService(mediaRepo, fileStorage, appLog),
		Document:    service.NewDocumentService(documentRepo, userRepo, fileStorage, appLog),
	}

	// --- Router ---
	if cfg.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret, svcs)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Start + Graceful Shutdown ---
	go func() {
		appLog.Info("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("listen and serve error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		appLog.Fatal("server forced to shutdown", "error", err)
	}

	appLog.Info("server exiting")
}
