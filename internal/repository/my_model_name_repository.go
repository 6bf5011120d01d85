package repository

import (
	"context"
	"errors"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"gorm.io/gorm"
)

type MyModelNameRepository interface {
	Create(ctx context.Context, m *models.MyModelName) error
	Update(ctx context.Context, m *models.MyModelName) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.MyModelName, error)
	FindAll(ctx context.Context, params ListParams) ([]models.MyModelName, int64, error)
}

type myModelNameRepository struct {
	baseRepository
}

func NewMyModelNameRepository(db *database.Database) MyModelNameRepository {
	return &myModelNameRepository{baseRepository: newBaseRepository(db)}
}

func (r *myModelNameRepository) Create(ctx context.Context, m *models.MyModelName) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
}

func (r *myModelNameRepository) Update(ctx context.Context, m *models.MyModelName) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var existing models.MyModelName
		if err := tx.First(&existing, m.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("MyModelName", m.ID)
			}
			return err
		}
		m.CreatedAt = existing.CreatedAt
		return tx.Save(m).Error
	})
}

func (r *myModelNameRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.MyModelName{}, "MyModelName", id); err != nil {
			return err
		}
		return tx.Delete(&models.MyModelName{}, id).Error
	})
}

func (r *myModelNameRepository) FindByID(ctx context.Context, id uint) (*models.MyModelName, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var m models.MyModelName
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("MyModelName", id)
		}
		return nil, err
	}
	return &m, nil
}

func (r *myModelNameRepository) FindAll(ctx context.Context, params ListParams) ([]models.MyModelName, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var items []models.MyModelName
	var total int64

	query := r.db.WithContext(ctx).Model(&models.MyModelName{})
	if params.Search != "" {
		query = query.Where("LOWER(my_field_name) LIKE ? ESCAPE '\\'", likePattern(params.Search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Order("my_field_name DESC"), params).Find(&items).Error
	return items, total, err
}
