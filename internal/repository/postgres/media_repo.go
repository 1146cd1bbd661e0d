package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

type mediaAssetRepository struct {
	db *gorm.DB
}

func NewMediaAssetRepository(db *gorm.DB) repository.MediaAssetRepository {
	return &mediaAssetRepository{db: db}
}

func (r *mediaAssetRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *mediaAssetRepository) Create(ctx context.Context, tx *gorm.DB, asset *domain.MediaAsset) error {
	return r.conn(tx).WithContext(ctx).Create(asset).Error
}

func (r *mediaAssetRepository) Save(ctx context.Context, tx *gorm.DB, asset *domain.MediaAsset) error {
	return r.conn(tx).WithContext(ctx).Save(asset).Error
}

func (r *mediaAssetRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.MediaAsset, error) {
	var asset domain.MediaAsset
	err := r.conn(tx).WithContext(ctx).First(&asset, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *mediaAssetRepository) GetByFilePath(ctx context.Context, tx *gorm.DB, filePath string) (*domain.MediaAsset, error) {
	var asset domain.MediaAsset
	err := r.conn(tx).WithContext(ctx).First(&asset, "file_path = ?", filePath).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *mediaAssetRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]domain.MediaAsset, error) {
	var assets []domain.MediaAsset
	err := r.conn(tx).WithContext(ctx).
		Order("file_path ASC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *mediaAssetRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := r.conn(tx).WithContext(ctx).Delete(&domain.MediaAsset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
