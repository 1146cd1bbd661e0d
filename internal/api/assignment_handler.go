package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// AssignmentHandler holds the assignment service dependency.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// --- DTOs ---

type AssignRoutineRequest struct {
	UserID    uuid.UUID  `json:"userId" binding:"required"`
	RoutineID uuid.UUID  `json:"routineId" binding:"required"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Notes     string     `json:"notes"`
}

type DeactivateRequest struct {
	UserID    uuid.UUID `json:"userId" binding:"required"`
	RoutineID uuid.UUID `json:"routineId" binding:"required"`
}

type UpdateDurationRequest struct {
	UserID    uuid.UUID  `json:"userId" binding:"required"`
	StartDate time.Time  `json:"startDate" binding:"required"`
	EndDate   *time.Time `json:"endDate"`
}

// --- Handler Methods ---

func (req *AssignRoutineRequest) startOrNow() time.Time {
	if req.StartDate != nil {
		return *req.StartDate
	}
	return time.Now()
}

func translateAssignmentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrRoutineNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserAlreadyAssigned):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoActiveAssignment):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDateRange):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// AssignRoutine handles POST /assignments/assign.
func (h *AssignmentHandler) AssignRoutine(c *gin.Context) {
	var req AssignRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	binding, err := h.assignmentService.Assign(c.Request.Context(), req.UserID, req.RoutineID, req.startOrNow(), req.EndDate, req.Notes)
	if err != nil {
		translateAssignmentError(c, err, "Failed to assign routine.")
		return
	}

	c.JSON(http.StatusCreated, binding)
}

// ReassignRoutine handles POST /assignments/reassign.
func (h *AssignmentHandler) ReassignRoutine(c *gin.Context) {
	var req AssignRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	binding, err := h.assignmentService.Reassign(c.Request.Context(), req.UserID, req.RoutineID, req.startOrNow(), req.EndDate, req.Notes)
	if err != nil {
		translateAssignmentError(c, err, "Failed to reassign routine.")
		return
	}

	c.JSON(http.StatusCreated, binding)
}

// DeactivateRoutine handles POST /assignments/deactivate.
func (h *AssignmentHandler) DeactivateRoutine(c *gin.Context) {
	var req DeactivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	binding, err := h.assignmentService.Deactivate(c.Request.Context(), req.UserID, req.RoutineID)
	if err != nil {
		translateAssignmentError(c, err, "Failed to deactivate assignment.")
		return
	}

	c.JSON(http.StatusOK, binding)
}

// UnassignUser handles DELETE /assignments/user/:userId. Removes all of the
// user's bindings, active or not.
func (h *AssignmentHandler) UnassignUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.assignmentService.Unassign(c.Request.Context(), userID); err != nil {
		translateAssignmentError(c, err, "Failed to unassign user.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unassigned"})
}

// UpdateDuration handles PATCH /assignments/duration.
func (h *AssignmentHandler) UpdateDuration(c *gin.Context) {
	var req UpdateDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	binding, err := h.assignmentService.UpdateDuration(c.Request.Context(), req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		translateAssignmentError(c, err, "Failed to update assignment duration.")
		return
	}

	c.JSON(http.StatusOK, binding)
}

// GetUserAssignments handles GET /assignments/user/:userId.
func (h *AssignmentHandler) GetUserAssignments(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	bindings, err := h.assignmentService.GetForUser(c.Request.Context(), userID)
	if err != nil {
		translateAssignmentError(c, err, "Failed to retrieve assignments.")
		return
	}
	if bindings == nil {
		bindings = []domain.UserRoutine{}
	}

	c.JSON(http.StatusOK, bindings)
}
