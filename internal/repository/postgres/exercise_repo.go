package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *exerciseRepository) Create(ctx context.Context, tx *gorm.DB, exercise *domain.Exercise) error {
	return r.conn(tx).WithContext(ctx).Create(exercise).Error
}

func (r *exerciseRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.conn(tx).WithContext(ctx).First(&exercise, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) GetActiveByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.conn(tx).WithContext(ctx).
		First(&exercise, "name = ? AND is_active", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) GetAllActive(ctx context.Context, tx *gorm.DB) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.conn(tx).WithContext(ctx).
		Where("is_active").
		Order("name ASC").
		Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) Save(ctx context.Context, tx *gorm.DB, exercise *domain.Exercise) error {
	return r.conn(tx).WithContext(ctx).Save(exercise).Error
}
