package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/service"
)

// DocumentHandler holds the trainer document service dependency.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// --- DTOs ---

type SetVerificationRequest struct {
	Status domain.VerificationStatus `json:"status" binding:"required"`
	Notes  string                    `json:"notes"`
}

func translateDocumentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound), errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAdmin), errors.Is(err, service.ErrDocumentOwnerMismatch):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidVerification),
		errors.Is(err, service.ErrEmptyDocument),
		errors.Is(err, service.ErrDocumentTypeRequired):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// readFormFile pulls the uploaded file's bytes and content type out of a
// multipart form field.
func readFormFile(c *gin.Context, field string) (data []byte, name, mimeType string, err error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", "", err
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, "", "", err
	}
	return data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), nil
}

// --- Handler Methods ---

// Upload handles POST /documents. Multipart form: file + metadata fields.
func (h *DocumentHandler) Upload(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	data, originalName, mimeType, err := readFormFile(c, "file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "A document file is required.")
		return
	}

	doc, err := h.documentService.Upload(c.Request.Context(), service.UploadDocumentInput{
		TrainerID:    trainerID,
		Category:     domain.DocumentCategory(c.PostForm("category")),
		DocumentType: c.PostForm("documentType"),
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		OriginalName: originalName,
		MimeType:     mimeType,
		Data:         data,
	})
	if err != nil {
		translateDocumentError(c, err, "Failed to upload document.")
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// ListMine handles GET /documents?category=education. Lists the
// authenticated trainer's documents.
func (h *DocumentHandler) ListMine(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	docs, err := h.documentService.ListByTrainer(c.Request.Context(), trainerID, domain.DocumentCategory(c.Query("category")))
	if err != nil {
		translateDocumentError(c, err, "Failed to retrieve documents.")
		return
	}
	if docs == nil {
		docs = []domain.TrainerDocument{}
	}

	c.JSON(http.StatusOK, docs)
}

// ListByTrainer handles GET /admin/documents/trainer/:trainerId. Admin
// review view.
func (h *DocumentHandler) ListByTrainer(c *gin.Context) {
	trainerID, ok := parseIDParam(c, "trainerId")
	if !ok {
		return
	}

	docs, err := h.documentService.ListByTrainer(c.Request.Context(), trainerID, domain.DocumentCategory(c.Query("category")))
	if err != nil {
		translateDocumentError(c, err, "Failed to retrieve documents.")
		return
	}
	if docs == nil {
		docs = []domain.TrainerDocument{}
	}

	c.JSON(http.StatusOK, docs)
}

// Update handles PATCH /documents/:id. Multipart form; every field is
// optional, including the replacement file.
func (h *DocumentHandler) Update(c *gin.Context) {
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	patch := service.UpdateDocumentPatch{}
	if v, exists := c.GetPostForm("documentType"); exists {
		patch.DocumentType = &v
	}
	if v, exists := c.GetPostForm("title"); exists {
		patch.Title = &v
	}
	if v, exists := c.GetPostForm("description"); exists {
		patch.Description = &v
	}
	if data, originalName, mimeType, err := readFormFile(c, "file"); err == nil {
		patch.Data = data
		patch.OriginalName = &originalName
		patch.MimeType = &mimeType
	}

	doc, err := h.documentService.Update(c.Request.Context(), trainerID, docID, patch)
	if err != nil {
		translateDocumentError(c, err, "Failed to update document.")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// SetVerification handles POST /admin/documents/:id/verification.
func (h *DocumentHandler) SetVerification(c *gin.Context) {
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify admin from token.")
		return
	}

	var req SetVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	doc, err := h.documentService.SetVerification(c.Request.Context(), adminID, docID, req.Status, req.Notes)
	if err != nil {
		translateDocumentError(c, err, "Failed to set verification status.")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /documents/:id.
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), trainerID, docID); err != nil {
		translateDocumentError(c, err, "Failed to delete document.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
