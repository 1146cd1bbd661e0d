package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

type muscleGroupRepository struct {
	db *gorm.DB
}

func NewMuscleGroupRepository(db *gorm.DB) repository.MuscleGroupRepository {
	return &muscleGroupRepository{db: db}
}

func (r *muscleGroupRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *muscleGroupRepository) Create(ctx context.Context, tx *gorm.DB, group *domain.MuscleGroup) error {
	return r.conn(tx).WithContext(ctx).Create(group).Error
}

func (r *muscleGroupRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.MuscleGroup, error) {
	var group domain.MuscleGroup
	err := r.conn(tx).WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *muscleGroupRepository) GetActiveByTitle(ctx context.Context, tx *gorm.DB, title string) (*domain.MuscleGroup, error) {
	var group domain.MuscleGroup
	err := r.conn(tx).WithContext(ctx).
		First(&group, "title = ? AND is_active", title).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *muscleGroupRepository) GetAllActive(ctx context.Context, tx *gorm.DB) ([]domain.MuscleGroup, error) {
	var groups []domain.MuscleGroup
	err := r.conn(tx).WithContext(ctx).
		Where("is_active").
		Order("title ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *muscleGroupRepository) Save(ctx context.Context, tx *gorm.DB, group *domain.MuscleGroup) error {
	return r.conn(tx).WithContext(ctx).Save(group).Error
}
