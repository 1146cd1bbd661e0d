package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *documentRepository) Create(ctx context.Context, tx *gorm.DB, doc *domain.TrainerDocument) error {
	return r.conn(tx).WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) Save(ctx context.Context, tx *gorm.DB, doc *domain.TrainerDocument) error {
	return r.conn(tx).WithContext(ctx).Save(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.TrainerDocument, error) {
	var doc domain.TrainerDocument
	err := r.conn(tx).WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) GetByTrainer(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, category domain.DocumentCategory) ([]domain.TrainerDocument, error) {
	query := r.conn(tx).WithContext(ctx).Where("trainer_id = ?", trainerID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var docs []domain.TrainerDocument
	if err := query.Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := r.conn(tx).WithContext(ctx).Delete(&domain.TrainerDocument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
