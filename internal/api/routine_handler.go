package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// RoutineHandler holds the routine service dependency.
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// The routine tree is returned as the domain type directly; it carries no
// sensitive fields and the JSON shape is part of its contract.

// CreateRoutine handles POST /routines. Trainer only.
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	var req service.CreateRoutineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	routine, err := h.routineService.Create(c.Request.Context(), trainerID, req)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create routine.")
		}
		return
	}

	c.JSON(http.StatusCreated, routine)
}

// GetRoutine handles GET /routines/:id.
func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	routine, err := h.routineService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve routine.")
		}
		return
	}

	c.JSON(http.StatusOK, routine)
}

// GetMyRoutines handles GET /routines. Returns the authenticated trainer's
// routines.
func (h *RoutineHandler) GetMyRoutines(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	routines, err := h.routineService.GetByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve routines.")
		return
	}
	if routines == nil {
		routines = []domain.Routine{}
	}

	c.JSON(http.StatusOK, routines)
}

// UpdateRoutine handles PATCH /routines/:id. A weeks array in the body
// replaces the whole subtree.
func (h *RoutineHandler) UpdateRoutine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch service.UpdateRoutinePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	routine, err := h.routineService.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update routine.")
		}
		return
	}

	c.JSON(http.StatusOK, routine)
}

// DeleteRoutine handles DELETE /routines/:id.
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.routineService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete routine.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Routine deleted"})
}
