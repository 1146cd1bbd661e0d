package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// Services bundles everything SetupRoutes wires into handlers.
type Services struct {
	Auth        service.AuthService
	Routine     service.RoutineService
	Assignment  service.AssignmentService
	Progress    service.ProgressService
	MuscleGroup service.MuscleGroupService
	Exercise    service.ExerciseService
	Plan        service.PlanService
	Media       service.MediaService
	Document    service.DocumentService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svcs Services) {
	authHandler := NewAuthHandler(svcs.Auth)
	routineHandler := NewRoutineHandler(svcs.Routine)
	assignmentHandler := NewAssignmentHandler(svcs.Assignment)
	progressHandler := NewProgressHandler(svcs.Progress)
	muscleGroupHandler := NewMuscleGroupHandler(svcs.MuscleGroup)
	exerciseHandler := NewExerciseHandler(svcs.Exercise)
	planHandler := NewPlanHandler(svcs.Plan)
	mediaHandler := NewMediaHandler(svcs.Media)
	documentHandler := NewDocumentHandler(svcs.Document)

	authMiddleware := AuthMiddleware(jwtSecret)
	trainerOnly := RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Public catalog reads.
		apiV1.GET("/plans", planHandler.GetAll)
		apiV1.GET("/plans/:id", planHandler.Get)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
		})

		// --- Routine Routes ---
		routineGroup := protected.Group("/routines")
		{
			routineGroup.POST("", trainerOnly, routineHandler.CreateRoutine)
			routineGroup.GET("", trainerOnly, routineHandler.GetMyRoutines)
			routineGroup.GET("/:id", routineHandler.GetRoutine)
			routineGroup.PATCH("/:id", trainerOnly, routineHandler.UpdateRoutine)
			routineGroup.DELETE("/:id", trainerOnly, routineHandler.DeleteRoutine)
		}

		// --- Assignment Routes (trainer-driven) ---
		assignmentGroup := protected.Group("/assignments")
		assignmentGroup.Use(trainerOnly)
		{
			assignmentGroup.POST("/assign", assignmentHandler.AssignRoutine)
			assignmentGroup.POST("/reassign", assignmentHandler.ReassignRoutine)
			assignmentGroup.POST("/deactivate", assignmentHandler.DeactivateRoutine)
			assignmentGroup.PATCH("/duration", assignmentHandler.UpdateDuration)
			assignmentGroup.GET("/user/:userId", assignmentHandler.GetUserAssignments)
			assignmentGroup.DELETE("/user/:userId", assignmentHandler.UnassignUser)
		}

		// --- Progress Routes (the authenticated user's own progress) ---
		progressGroup := protected.Group("/progress")
		{
			progressGroup.POST("/exercises/:id", progressHandler.MarkExercise)
			progressGroup.POST("/days/:id", progressHandler.MarkDay)
			progressGroup.POST("/weeks/:id", progressHandler.MarkWeek)
			progressGroup.POST("/routines/:id", progressHandler.MarkRoutine)
			progressGroup.GET("/routines/:id", progressHandler.GetMyProgress)
		}

		// --- Catalog Routes ---
		muscleGroupGroup := protected.Group("/muscle-groups")
		{
			muscleGroupGroup.GET("", muscleGroupHandler.GetAll)
			muscleGroupGroup.GET("/:id", muscleGroupHandler.Get)
			muscleGroupGroup.POST("", adminOnly, muscleGroupHandler.Create)
			muscleGroupGroup.PATCH("/:id", adminOnly, muscleGroupHandler.Update)
			muscleGroupGroup.DELETE("/:id", adminOnly, muscleGroupHandler.Delete)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.GetAll)
			exerciseGroup.GET("/:id", exerciseHandler.Get)
			exerciseGroup.POST("", adminOnly, exerciseHandler.Create)
			exerciseGroup.PATCH("/:id", adminOnly, exerciseHandler.Update)
			exerciseGroup.DELETE("/:id", adminOnly, exerciseHandler.Delete)
		}

		planGroup := protected.Group("/plans")
		planGroup.Use(adminOnly)
		{
			planGroup.POST("", planHandler.Create)
			planGroup.PATCH("/:id", planHandler.Update)
			planGroup.DELETE("/:id", planHandler.Delete)
		}

		// --- Media Routes (admin tooling) ---
		mediaGroup := protected.Group("/media")
		mediaGroup.Use(adminOnly)
		{
			mediaGroup.PUT("", mediaHandler.Upsert)
			mediaGroup.GET("", mediaHandler.GetAll)
			mediaGroup.GET("/missing", mediaHandler.Missing)
			mediaGroup.GET("/:id", mediaHandler.Get)
			mediaGroup.GET("/:id/url", mediaHandler.SignedURL)
			mediaGroup.DELETE("/:id", mediaHandler.Delete)
		}

		// --- Trainer Document Routes ---
		documentGroup := protected.Group("/documents")
		documentGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			documentGroup.POST("", documentHandler.Upload)
			documentGroup.GET("", documentHandler.ListMine)
			documentGroup.PATCH("/:id", documentHandler.Update)
			documentGroup.DELETE("/:id", documentHandler.Delete)
		}

		adminDocumentGroup := protected.Group("/admin/documents")
		adminDocumentGroup.Use(adminOnly)
		{
			adminDocumentGroup.GET("/trainer/:trainerId", documentHandler.ListByTrainer)
			adminDocumentGroup.POST("/:id/verification", documentHandler.SetVerification)
		}
	}
}
