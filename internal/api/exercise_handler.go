package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// ExerciseHandler holds the exercise catalog service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

type CreateExerciseRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Image         *domain.ImageRef `json:"image"`
	MuscleGroupID uuid.UUID        `json:"muscleGroupId" binding:"required"`
}

type UpdateExerciseRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Image         *domain.ImageRef `json:"image"`
	MuscleGroupID *uuid.UUID       `json:"muscleGroupId"`
}

func translateExerciseError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrMuscleGroupNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidName):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

func (h *ExerciseHandler) Create(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), service.CreateExerciseInput{
		Name:          req.Name,
		Description:   req.Description,
		Image:         req.Image,
		MuscleGroupID: req.MuscleGroupID,
	})
	if err != nil {
		translateExerciseError(c, err, "Failed to create exercise.")
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), id)
	if err != nil {
		translateExerciseError(c, err, "Failed to retrieve exercise.")
		return
	}

	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) GetAll(c *gin.Context) {
	exercises, err := h.exerciseService.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}

	c.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), id, service.UpdateExercisePatch{
		Name:          req.Name,
		Description:   req.Description,
		Image:         req.Image,
		MuscleGroupID: req.MuscleGroupID,
	})
	if err != nil {
		translateExerciseError(c, err, "Failed to update exercise.")
		return
	}

	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), id); err != nil {
		translateExerciseError(c, err, "Failed to delete exercise.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}
