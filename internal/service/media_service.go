package service

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/storage"
)

// --- Error Definitions ---
var (
	ErrMediaAssetNotFound = errors.New("media asset not found")
	ErrInvalidFilePath    = errors.New("file path must not be empty")
)

// MissingAsset is one finding of the storage reconciliation: an object that
// exists in storage but has no metadata row, or has a row with blank
// descriptive fields.
type MissingAsset struct {
	FilePath string `json:"filePath"`
	Folder   string `json:"folder"`
	// Reason is "no_record" when no row matches the path, or
	// "incomplete_record" when a row exists but name/description are blank.
	Reason string `json:"reason"`
}

// UpsertMediaInput carries the descriptive metadata for one stored object.
type UpsertMediaInput struct {
	FilePath    string
	Folder      string
	URL         string
	Name        string
	Description string
}

// MediaService bridges object storage and the media_assets metadata table.
// Storage holds the bytes; the table holds names and descriptions. Neither
// side enforces the other, so Missing exists to surface drift.
type MediaService interface {
	Upsert(ctx context.Context, input UpsertMediaInput) (*domain.MediaAsset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error)
	GetAll(ctx context.Context) ([]domain.MediaAsset, error)
	// Missing lists storage under rootFolder (including one level of
	// subfolders) and reports objects with no metadata row or an incomplete
	// one. Read-only: it never writes rows or objects.
	Missing(ctx context.Context, rootFolder string) ([]MissingAsset, error)
	// SignedURL returns a presigned download URL for the asset, falling back
	// to the stored URL when presigning fails.
	SignedURL(ctx context.Context, id uuid.UUID) (string, error)
	// Delete removes the blob first, then the row.
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaService struct {
	mediaRepo repository.MediaAssetRepository
	storage   storage.FileStorage
	log       *logger.Logger
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(mediaRepo repository.MediaAssetRepository, fileStorage storage.FileStorage, baseLog *logger.Logger) MediaService {
	return &mediaService{
		mediaRepo: mediaRepo,
		storage:   fileStorage,
		log:       baseLog.With("service", "MediaService"),
	}
}

// Upsert finds the row by file path and overwrites the supplied fields, or
// inserts a fresh row when none exists. FilePath is the natural key; the id
// is stable across upserts.
func (s *mediaService) Upsert(ctx context.Context, input UpsertMediaInput) (*domain.MediaAsset, error) {
	filePath := strings.TrimSpace(input.FilePath)
	if filePath == "" {
		return nil, ErrInvalidFilePath
	}

	asset, err := s.mediaRepo.GetByFilePath(ctx, nil, filePath)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		asset = &domain.MediaAsset{
			FilePath:    filePath,
			Folder:      input.Folder,
			URL:         input.URL,
			Name:        input.Name,
			Description: input.Description,
		}
		if err := s.mediaRepo.Create(ctx, nil, asset); err != nil {
			return nil, err
		}
		s.log.Info("media asset registered", "filePath", filePath)
		return asset, nil
	}

	asset.Folder = input.Folder
	asset.URL = input.URL
	asset.Name = input.Name
	asset.Description = input.Description
	if err := s.mediaRepo.Save(ctx, nil, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *mediaService) GetByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	asset, err := s.mediaRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMediaAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *mediaService) GetAll(ctx context.Context) ([]domain.MediaAsset, error) {
	return s.mediaRepo.GetAll(ctx, nil)
}

// Missing diffs the storage listing against the metadata table.
func (s *mediaService) Missing(ctx context.Context, rootFolder string) ([]MissingAsset, error) {
	prefix := strings.Trim(rootFolder, "/")
	if prefix != "" {
		prefix += "/"
	}

	keys, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	assets, err := s.mediaRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	byPath := make(map[string]*domain.MediaAsset, len(assets))
	for i := range assets {
		byPath[assets[i].FilePath] = &assets[i]
	}

	findings := make([]MissingAsset, 0)
	for _, key := range keys {
		// Folder placeholder objects carry no bytes worth tracking.
		if strings.HasSuffix(key, "/") {
			continue
		}
		// Only the root folder and its direct subfolders are in scope.
		rel := strings.TrimPrefix(key, prefix)
		if strings.Count(rel, "/") > 1 {
			continue
		}

		row, ok := byPath[key]
		if !ok {
			findings = append(findings, MissingAsset{
				FilePath: key,
				Folder:   path.Dir(key),
				Reason:   "no_record",
			})
			continue
		}
		if strings.TrimSpace(row.Name) == "" || strings.TrimSpace(row.Description) == "" {
			findings = append(findings, MissingAsset{
				FilePath: key,
				Folder:   row.Folder,
				Reason:   "incomplete_record",
			})
		}
	}
	return findings, nil
}

// SignedURL degrades to the stored URL on presigning failure. The primary
// lookup never degrades; a missing row is still an error.
func (s *mediaService) SignedURL(ctx context.Context, id uuid.UUID) (string, error) {
	asset, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.storage.GeneratePresignedDownloadURL(ctx, asset.FilePath, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.log.Warn("presign failed, serving stored url", "filePath", asset.FilePath, "error", err)
		return asset.URL, nil
	}
	return url, nil
}

func (s *mediaService) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// 1. Remove the blob. If the object is already gone we still want the
	//    row gone, so storage errors are logged, not fatal.
	if err := s.storage.DeleteObject(ctx, asset.FilePath); err != nil {
		s.log.Warn("failed to delete media object", "filePath", asset.FilePath, "error", err)
	}

	// 2. Remove the row.
	if err := s.mediaRepo.Delete(ctx, nil, asset.ID); err != nil {
		return err
	}

	s.log.Info("media asset deleted", "mediaAssetId", asset.ID, "filePath", asset.FilePath)
	return nil
}
