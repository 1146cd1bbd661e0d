package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// MediaHandler holds the media service dependency.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// --- DTOs ---

type UpsertMediaRequest struct {
	FilePath    string `json:"filePath" binding:"required"`
	Folder      string `json:"folder"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func translateMediaError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMediaAssetNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidFilePath):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

// Upsert handles PUT /media. Registers or refreshes metadata for an object
// already sitting in storage.
func (h *MediaHandler) Upsert(c *gin.Context) {
	var req UpsertMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	asset, err := h.mediaService.Upsert(c.Request.Context(), service.UpsertMediaInput{
		FilePath:    req.FilePath,
		Folder:      req.Folder,
		URL:         req.URL,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		translateMediaError(c, err, "Failed to register media asset.")
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *MediaHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	asset, err := h.mediaService.GetByID(c.Request.Context(), id)
	if err != nil {
		translateMediaError(c, err, "Failed to retrieve media asset.")
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *MediaHandler) GetAll(c *gin.Context) {
	assets, err := h.mediaService.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve media assets.")
		return
	}

	c.JSON(http.StatusOK, assets)
}

// Missing handles GET /media/missing?folder=images. Reports storage objects
// with no metadata row or an incomplete one.
func (h *MediaHandler) Missing(c *gin.Context) {
	findings, err := h.mediaService.Missing(c.Request.Context(), c.Query("folder"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to reconcile media assets.")
		return
	}

	c.JSON(http.StatusOK, findings)
}

// SignedURL handles GET /media/:id/url.
func (h *MediaHandler) SignedURL(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.mediaService.SignedURL(c.Request.Context(), id)
	if err != nil {
		translateMediaError(c, err, "Failed to generate URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *MediaHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), id); err != nil {
		translateMediaError(c, err, "Failed to delete media asset.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Media asset deleted"})
}
