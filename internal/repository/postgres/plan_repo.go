package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *planRepository) Create(ctx context.Context, tx *gorm.DB, plan *domain.Plan) error {
	return r.conn(tx).WithContext(ctx).Create(plan).Error
}

func (r *planRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.conn(tx).WithContext(ctx).First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := r.conn(tx).WithContext(ctx).
		Order("price ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) Save(ctx context.Context, tx *gorm.DB, plan *domain.Plan) error {
	return r.conn(tx).WithContext(ctx).Save(plan).Error
}

func (r *planRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := r.conn(tx).WithContext(ctx).Delete(&domain.Plan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
