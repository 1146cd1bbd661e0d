package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

type MarkExerciseRequest struct {
	Completed    bool           `json:"completed"`
	ProgressData datatypes.JSON `json:"progressData"`
}

type MarkWithNotesRequest struct {
	Completed       bool   `json:"completed"`
	Notes           string `json:"notes"`
	DurationMinutes int    `json:"durationMinutes"`
}

type MarkRoutineRequest struct {
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

func translateProgressError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrExerciseEntryNotFound),
		errors.Is(err, service.ErrDayNotFound),
		errors.Is(err, service.ErrWeekNotFound),
		errors.Is(err, service.ErrRoutineNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoutineNotAssigned):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

// MarkExercise handles POST /progress/exercises/:id. The ?simple=true query
// skips the roll-up cascade.
func (h *ProgressHandler) MarkExercise(c *gin.Context) {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req MarkExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var row interface{}
	if c.Query("simple") == "true" {
		row, err = h.progressService.MarkExerciseSimple(c.Request.Context(), userID, entryID, req.Completed, req.ProgressData)
	} else {
		row, err = h.progressService.MarkExerciseCompleted(c.Request.Context(), userID, entryID, req.Completed, req.ProgressData)
	}
	if err != nil {
		translateProgressError(c, err, "Failed to record exercise progress.")
		return
	}

	c.JSON(http.StatusOK, row)
}

// MarkDay handles POST /progress/days/:id.
func (h *ProgressHandler) MarkDay(c *gin.Context) {
	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req MarkWithNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var row interface{}
	if c.Query("simple") == "true" {
		row, err = h.progressService.MarkDaySimple(c.Request.Context(), userID, dayID, req.Completed, req.Notes, req.DurationMinutes)
	} else {
		row, err = h.progressService.MarkDayCompleted(c.Request.Context(), userID, dayID, req.Completed, req.Notes, req.DurationMinutes)
	}
	if err != nil {
		translateProgressError(c, err, "Failed to record day progress.")
		return
	}

	c.JSON(http.StatusOK, row)
}

// MarkWeek handles POST /progress/weeks/:id.
func (h *ProgressHandler) MarkWeek(c *gin.Context) {
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req MarkWithNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var row interface{}
	if c.Query("simple") == "true" {
		row, err = h.progressService.MarkWeekSimple(c.Request.Context(), userID, weekID, req.Completed, req.Notes, req.DurationMinutes)
	} else {
		row, err = h.progressService.MarkWeekCompleted(c.Request.Context(), userID, weekID, req.Completed, req.Notes, req.DurationMinutes)
	}
	if err != nil {
		translateProgressError(c, err, "Failed to record week progress.")
		return
	}

	c.JSON(http.StatusOK, row)
}

// MarkRoutine handles POST /progress/routines/:id.
func (h *ProgressHandler) MarkRoutine(c *gin.Context) {
	routineID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req MarkRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	row, err := h.progressService.MarkRoutineSimple(c.Request.Context(), userID, routineID, req.Completed, req.Notes)
	if err != nil {
		translateProgressError(c, err, "Failed to record routine progress.")
		return
	}

	c.JSON(http.StatusOK, row)
}

// GetMyProgress handles GET /progress/routines/:id.
func (h *ProgressHandler) GetMyProgress(c *gin.Context) {
	routineID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	progress, err := h.progressService.GetUserProgress(c.Request.Context(), userID, routineID)
	if err != nil {
		translateProgressError(c, err, "Failed to retrieve progress.")
		return
	}

	c.JSON(http.StatusOK, progress)
}
