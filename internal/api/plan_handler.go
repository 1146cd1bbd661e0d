package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type CreatePlanRequest struct {
	Name     string           `json:"name" binding:"required"`
	Price    float64          `json:"price"`
	Duration string           `json:"duration" binding:"required"`
	Type     domain.PlanType  `json:"type"`
	Detail   string           `json:"detail"`
	Features []string         `json:"features" binding:"required"`
	Badge    *domain.Badge    `json:"badge"`
	Image    *domain.ImageRef `json:"image"`
}

type UpdatePlanRequest struct {
	Name     *string          `json:"name"`
	Price    *float64         `json:"price"`
	Duration *string          `json:"duration"`
	Type     *domain.PlanType `json:"type"`
	Detail   *string          `json:"detail"`
	Features []string         `json:"features"`
	Badge    *domain.Badge    `json:"badge"`
	Image    *domain.ImageRef `json:"image"`
	IsActive *bool            `json:"isActive"`
}

func translatePlanError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrPlanNoFeatures),
		errors.Is(err, service.ErrInvalidPlanType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

func (h *PlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), service.CreatePlanInput{
		Name:     req.Name,
		Price:    req.Price,
		Duration: req.Duration,
		Type:     req.Type,
		Detail:   req.Detail,
		Features: req.Features,
		Badge:    req.Badge,
		Image:    req.Image,
	})
	if err != nil {
		translatePlanError(c, err, "Failed to create plan.")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		translatePlanError(c, err, "Failed to retrieve plan.")
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) GetAll(c *gin.Context) {
	plans, err := h.planService.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), id, service.UpdatePlanPatch{
		Name:     req.Name,
		Price:    req.Price,
		Duration: req.Duration,
		Type:     req.Type,
		Detail:   req.Detail,
		Features: req.Features,
		Badge:    req.Badge,
		Image:    req.Image,
		IsActive: req.IsActive,
	})
	if err != nil {
		translatePlanError(c, err, "Failed to update plan.")
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		translatePlanError(c, err, "Failed to delete plan.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}
