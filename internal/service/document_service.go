package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/storage"
)

// --- Error Definitions ---
var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrNotAdmin              = errors.New("only admins can verify documents")
	ErrInvalidCategory       = errors.New("invalid document category")
	ErrInvalidVerification   = errors.New("verification status must be accepted or rejected")
	ErrEmptyDocument         = errors.New("document file must not be empty")
	ErrDocumentTypeRequired  = errors.New("document type is required")
	ErrDocumentOwnerMismatch = errors.New("document does not belong to this trainer")
)

// UploadDocumentInput carries a new document's file and metadata.
type UploadDocumentInput struct {
	TrainerID    uuid.UUID
	Category     domain.DocumentCategory
	DocumentType string
	Title        string
	Description  string
	OriginalName string
	MimeType     string
	Data         []byte
}

// UpdateDocumentPatch carries a partial edit. Supplying Data replaces the
// stored file under the same object key.
type UpdateDocumentPatch struct {
	DocumentType *string
	Title        *string
	Description  *string
	OriginalName *string
	MimeType     *string
	Data         []byte
}

// DocumentService manages trainer document uploads and their review
// workflow. Any edit that changes what a reviewer looked at (the file or the
// descriptive fields) resets the document to pending.
type DocumentService interface {
	Upload(ctx context.Context, input UploadDocumentInput) (*domain.TrainerDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainerDocument, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID, category domain.DocumentCategory) ([]domain.TrainerDocument, error)
	Update(ctx context.Context, trainerID, docID uuid.UUID, patch UpdateDocumentPatch) (*domain.TrainerDocument, error)
	// SetVerification moves a document to accepted or rejected. Only admins
	// may call it; the actor's role is checked against the user store.
	SetVerification(ctx context.Context, adminID, docID uuid.UUID, status domain.VerificationStatus, notes string) (*domain.TrainerDocument, error)
	Delete(ctx context.Context, trainerID, docID uuid.UUID) error
}

type documentService struct {
	docRepo  repository.DocumentRepository
	userRepo repository.UserRepository
	storage  storage.FileStorage
	log      *logger.Logger
}

// NewDocumentService creates a new instance of documentService.
func NewDocumentService(
	docRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	baseLog *logger.Logger,
) DocumentService {
	return &documentService{
		docRepo:  docRepo,
		userRepo: userRepo,
		storage:  fileStorage,
		log:      baseLog.With("service", "DocumentService"),
	}
}

func validateCategory(category domain.DocumentCategory) error {
	switch category {
	case domain.DocumentCategoryVerification, domain.DocumentCategoryEducation:
		return nil
	}
	return ErrInvalidCategory
}

// Upload stores the file and inserts the metadata row with status pending.
func (s *documentService) Upload(ctx context.Context, input UploadDocumentInput) (*domain.TrainerDocument, error) {
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.DocumentType) == "" {
		return nil, ErrDocumentTypeRequired
	}
	if len(input.Data) == 0 {
		return nil, ErrEmptyDocument
	}

	// 1. The uploader must be a trainer.
	trainer, err := s.userRepo.GetByID(ctx, nil, input.TrainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.IsTrainer() {
		return nil, ErrTrainerNotFound
	}

	// 2. Store the blob under a key that can't collide across uploads.
	fileName := fmt.Sprintf("%s%s", uuid.New().String(), path.Ext(input.OriginalName))
	objectKey := fmt.Sprintf("trainer-documents/%s/%s/%s", input.TrainerID, input.Category, fileName)
	url, err := s.storage.Upload(ctx, objectKey, input.MimeType, input.Data)
	if err != nil {
		return nil, fmt.Errorf("uploading document: %w", err)
	}

	// 3. Insert the row.
	doc := &domain.TrainerDocument{
		TrainerID:          input.TrainerID,
		Category:           input.Category,
		DocumentType:       input.DocumentType,
		Title:              input.Title,
		Description:        input.Description,
		OriginalName:       input.OriginalName,
		FileName:           fileName,
		FilePath:           objectKey,
		MimeType:           input.MimeType,
		FileSize:           int64(len(input.Data)),
		StorageURL:         url,
		VerificationStatus: domain.VerificationPending,
	}
	if err := s.docRepo.Create(ctx, nil, doc); err != nil {
		// Row insert failed; don't leave the blob orphaned.
		if delErr := s.storage.DeleteObject(ctx, objectKey); delErr != nil {
			s.log.Warn("failed to clean up orphaned document object", "filePath", objectKey, "error", delErr)
		}
		return nil, err
	}

	s.log.Info("trainer document uploaded", "documentId", doc.ID, "trainerId", doc.TrainerID, "category", doc.Category)
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainerDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListByTrainer(ctx context.Context, trainerID uuid.UUID, category domain.DocumentCategory) ([]domain.TrainerDocument, error) {
	if category != "" {
		if err := validateCategory(category); err != nil {
			return nil, err
		}
	}
	return s.docRepo.GetByTrainer(ctx, nil, trainerID, category)
}

// Update edits a document's file or descriptive fields. Any change resets
// the review: status goes back to pending and the prior stamps are cleared.
func (s *documentService) Update(ctx context.Context, trainerID, docID uuid.UUID, patch UpdateDocumentPatch) (*domain.TrainerDocument, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.TrainerID != trainerID {
		return nil, ErrDocumentOwnerMismatch
	}

	touched := false
	if patch.DocumentType != nil && *patch.DocumentType != doc.DocumentType {
		if strings.TrimSpace(*patch.DocumentType) == "" {
			return nil, ErrDocumentTypeRequired
		}
		doc.DocumentType = *patch.DocumentType
		touched = true
	}
	if patch.Title != nil && *patch.Title != doc.Title {
		doc.Title = *patch.Title
		touched = true
	}
	if patch.Description != nil && *patch.Description != doc.Description {
		doc.Description = *patch.Description
		touched = true
	}
	if len(patch.Data) > 0 {
		// Replace the bytes in place; the object key stays stable.
		url, err := s.storage.Upload(ctx, doc.FilePath, doc.MimeType, patch.Data)
		if err != nil {
			return nil, fmt.Errorf("replacing document file: %w", err)
		}
		doc.StorageURL = url
		doc.FileSize = int64(len(patch.Data))
		if patch.OriginalName != nil {
			doc.OriginalName = *patch.OriginalName
		}
		if patch.MimeType != nil {
			doc.MimeType = *patch.MimeType
		}
		touched = true
	}

	if touched {
		doc.VerificationStatus = domain.VerificationPending
		doc.VerificationNotes = ""
		doc.VerifiedBy = nil
		doc.VerifiedAt = nil
	}

	if err := s.docRepo.Save(ctx, nil, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) SetVerification(ctx context.Context, adminID, docID uuid.UUID, status domain.VerificationStatus, notes string) (*domain.TrainerDocument, error) {
	if status != domain.VerificationAccepted && status != domain.VerificationRejected {
		return nil, ErrInvalidVerification
	}

	// 1. The actor must be an admin.
	actor, err := s.userRepo.GetByID(ctx, nil, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAdmin
		}
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, ErrNotAdmin
	}

	// 2. Stamp the document.
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc.VerificationStatus = status
	doc.VerificationNotes = notes
	doc.VerifiedBy = &adminID
	doc.VerifiedAt = &now
	if err := s.docRepo.Save(ctx, nil, doc); err != nil {
		return nil, err
	}

	s.log.Info("trainer document verified", "documentId", doc.ID, "status", status, "adminId", adminID)
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, trainerID, docID uuid.UUID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if doc.TrainerID != trainerID {
		return ErrDocumentOwnerMismatch
	}

	if err := s.storage.DeleteObject(ctx, doc.FilePath); err != nil {
		s.log.Warn("failed to delete document object", "filePath", doc.FilePath, "error", err)
	}
	if err := s.docRepo.Delete(ctx, nil, doc.ID); err != nil {
		return err
	}

	s.log.Info("trainer document deleted", "documentId", doc.ID, "trainerId", trainerID)
	return nil
}
