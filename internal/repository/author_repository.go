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

type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Author, error)
	FindOrCreate(ctx context.Context, firstName, lastName string) (*models.Author, error)
	FindAll(ctx context.Context, params ListParams) ([]models.Author, int64, error)
}

type authorRepository struct {
	baseRepository
}

func NewAuthorRepository(db *database.Database) AuthorRepository {
	return &authorRepository{baseRepository: newBaseRepository(db)}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(author).Error
	})
}

func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Author
		if err := tx.First(&existing, author.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Author", author.ID)
			}
			return err
		}
		author.CreatedAt = existing.CreatedAt
		return tx.Save(author).Error
	})
}

// Delete clears the author of every book that references it, then deletes it.
// Books are never removed with their author.
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Author{}, "Author", id); err != nil {
			return err
		}
		err := tx.Model(&models.Book{}).Where("author_id = ?", id).Update("author_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to clear book authors: %w", err)
		}
		return tx.Delete(&models.Author{}, id).Error
	})
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*models.Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var author models.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Author", id)
		}
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) FindOrCreate(ctx context.Context, firstName, lastName string) (*models.Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var author models.Author
	err := r.db.WithContext(ctx).
		Where(models.Author{FirstName: firstName, LastName: lastName}).
		FirstOrCreate(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) FindAll(ctx context.Context, params ListParams) ([]models.Author, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var authors []models.Author
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Author{})
	if params.Search != "" {
		pattern := likePattern(params.Search)
		query = query.Where("LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\'", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Order("last_name ASC, first_name ASC"), params).Find(&authors).Error
	return authors, total, err
}
