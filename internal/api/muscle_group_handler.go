package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// MuscleGroupHandler holds the muscle group service dependency.
type MuscleGroupHandler struct {
	groupService service.MuscleGroupService
}

// NewMuscleGroupHandler creates a new MuscleGroupHandler.
func NewMuscleGroupHandler(groupService service.MuscleGroupService) *MuscleGroupHandler {
	return &MuscleGroupHandler{groupService: groupService}
}

// --- DTOs ---

type CreateMuscleGroupRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type UpdateMuscleGroupRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func translateMuscleGroupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMuscleGroupNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMuscleGroupExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidTitle):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

func (h *MuscleGroupHandler) Create(c *gin.Context) {
	var req CreateMuscleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), req.Title, req.Description, req.Image)
	if err != nil {
		translateMuscleGroupError(c, err, "Failed to create muscle group.")
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *MuscleGroupHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.groupService.GetByID(c.Request.Context(), id)
	if err != nil {
		translateMuscleGroupError(c, err, "Failed to retrieve muscle group.")
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *MuscleGroupHandler) GetAll(c *gin.Context) {
	groups, err := h.groupService.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve muscle groups.")
		return
	}

	c.JSON(http.StatusOK, groups)
}

func (h *MuscleGroupHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMuscleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), id, req.Title, req.Description, req.Image)
	if err != nil {
		translateMuscleGroupError(c, err, "Failed to update muscle group.")
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *MuscleGroupHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), id); err != nil {
		translateMuscleGroupError(c, err, "Failed to delete muscle group.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Muscle group deleted"})
}
