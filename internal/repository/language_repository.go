package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"gorm.io/gorm"
)

type LanguageRepository interface {
	Create(ctx context.Context, language *models.Language) error
	Update(ctx context.Context, language *models.Language) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Language, error)
	FindOrCreate(ctx context.Context, name string) (*models.Language, error)
	FindAll(ctx context.Context, params ListParams) ([]models.Language, int64, error)
}

type languageRepository struct {
	baseRepository
}

func NewLanguageRepository(db *database.Database) LanguageRepository {
	return &languageRepository{baseRepository: newBaseRepository(db)}
}

func (r *languageRepository) Create(ctx context.Context, language *models.Language) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(language).Error
	})
}

func (r *languageRepository) Update(ctx context.Context, language *models.Language) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Language
		if err := tx.First(&existing, language.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Language", language.ID)
			}
			return err
		}
		language.CreatedAt = existing.CreatedAt
		return tx.Save(language).Error
	})
}

// Delete clears the language of every book that references it, then deletes it.
func (r *languageRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Language{}, "Language", id); err != nil {
			return err
		}
		err := tx.Model(&models.Book{}).Where("language_id = ?", id).Update("language_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to clear book languages: %w", err)
		}
		return tx.Delete(&models.Language{}, id).Error
	})
}

func (r *languageRepository) FindByID(ctx context.Context, id uint) (*models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var language models.Language
	err := r.db.WithContext(ctx).First(&language, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Language", id)
		}
		return nil, err
	}
	return &language, nil
}

func (r *languageRepository) FindOrCreate(ctx context.Context, name string) (*models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var language models.Language
	err := r.db.WithContext(ctx).Where(models.Language{Name: name}).FirstOrCreate(&language).Error
	if err != nil {
		return nil, err
	}
	return &language, nil
}

func (r *languageRepository) FindAll(ctx context.Context, params ListParams) ([]models.Language, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var languages []models.Language
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Language{})
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", likePattern(params.Search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Order("id ASC"), params).Find(&languages).Error
	return languages, total, err
}
