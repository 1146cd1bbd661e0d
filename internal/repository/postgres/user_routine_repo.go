package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/repository"
)

type userRoutineRepository struct {
	db *gorm.DB
}

func NewUserRoutineRepository(db *gorm.DB) repository.UserRoutineRepository {
	return &userRoutineRepository{db: db}
}

func (r *userRoutineRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRoutineRepository) Create(ctx context.Context, tx *gorm.DB, binding *domain.UserRoutine) error {
	return r.conn(tx).WithContext(ctx).Create(binding).Error
}

func (r *userRoutineRepository) Save(ctx context.Context, tx *gorm.DB, binding *domain.UserRoutine) error {
	return r.conn(tx).WithContext(ctx).Save(binding).Error
}

func (r *userRoutineRepository) GetActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]domain.UserRoutine, error) {
	var bindings []domain.UserRoutine
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND is_active", userID).
		Find(&bindings).Error
	if err != nil {
		return nil, err
	}
	return bindings, nil
}

func (r *userRoutineRepository) GetActiveByUserAndRoutine(ctx context.Context, tx *gorm.DB, userID, routineID uuid.UUID) (*domain.UserRoutine, error) {
	var binding domain.UserRoutine
	err := r.conn(tx).WithContext(ctx).
		First(&binding, "user_id = ? AND routine_id = ? AND is_active", userID, routineID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &binding, nil
}

func (r *userRoutineRepository) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]domain.UserRoutine, error) {
	var bindings []domain.UserRoutine
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&bindings).Error
	if err != nil {
		return nil, err
	}
	return bindings, nil
}

func (r *userRoutineRepository) CountActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.UserRoutine{}).
		Where("user_id = ? AND is_active", userID).
		Count(&count).Error
	return count, err
}

func (r *userRoutineRepository) DeleteAllByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.UserRoutine{}).Error
}

func (r *userRoutineRepository) ListUserIDsByRoutine(ctx context.Context, tx *gorm.DB, routineID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.UserRoutine{}).
		Distinct("user_id").
		Where("routine_id = ?", routineID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (r *userRoutineRepository) DeleteAllByRoutine(ctx context.Context, tx *gorm.DB, routineID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("routine_id = ?", routineID).
		Delete(&domain.UserRoutine{}).Error
}
