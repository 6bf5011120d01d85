package repository

import (
	"context"
	"errors"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookInstanceRepository interface {
	Create(ctx context.Context, instance *models.BookInstance) error
	Update(ctx context.Context, instance *models.BookInstance) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BookInstance, error)
	FindAll(ctx context.Context, params InstanceListParams) ([]models.BookInstance, int64, error)
}

// InstanceListParams narrows the instance list to one book or status.
type InstanceListParams struct {
	ListParams
	BookID uint
	Status models.LoanStatus
}

// dueBackOrder sorts instances by due date with undated copies first on every dialect.
const dueBackOrder = "CASE WHEN due_back IS NULL THEN 0 ELSE 1 END, due_back ASC, created_at ASC"

type bookInstanceRepository struct {
	baseRepository
}

func NewBookInstanceRepository(db *database.Database) BookInstanceRepository {
	return &bookInstanceRepository{baseRepository: newBaseRepository(db)}
}

// Create derives the slug from the referenced book's title when none is given.
func (r *bookInstanceRepository) Create(ctx context.Context, instance *models.BookInstance) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		book, err := findBookTx(tx, instance.BookID)
		if err != nil {
			return err
		}

		instance.DeriveSlug(book.Title)
		if err := tx.Omit(clause.Associations).Create(instance).Error; err != nil {
			return err
		}
		instance.Book = book
		return nil
	})
}

func (r *bookInstanceRepository) Update(ctx context.Context, instance *models.BookInstance) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var existing models.BookInstance
		if err := tx.First(&existing, "id = ?", instance.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("BookInstance", instance.ID)
			}
			return err
		}

		book, err := findBookTx(tx, instance.BookID)
		if err != nil {
			return err
		}
		if err := instance.KeepSlug(existing.Slug); err != nil {
			return err
		}
		if instance.Status == "" {
			instance.Status = existing.Status
		}

		instance.CreatedAt = existing.CreatedAt
		if err := tx.Omit(clause.Associations).Save(instance).Error; err != nil {
			return err
		}
		instance.Book = book
		return nil
	})
}

func (r *bookInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.BookInstance{}, "BookInstance", id); err != nil {
			return err
		}
		return tx.Delete(&models.BookInstance{}, "id = ?", id).Error
	})
}

func (r *bookInstanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.BookInstance, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var instance models.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").First(&instance, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("BookInstance", id)
		}
		return nil, err
	}
	return &instance, nil
}

// FindAll lists instances by due date ascending, undated instances first.
func (r *bookInstanceRepository) FindAll(ctx context.Context, params InstanceListParams) ([]models.BookInstance, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var instances []models.BookInstance
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BookInstance{})
	if params.BookID != 0 {
		query = query.Where("book_id = ?", params.BookID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		pattern := likePattern(params.Search)
		query = query.Where("LOWER(imprint) LIKE ? ESCAPE '\\' OR LOWER(slug) LIKE ? ESCAPE '\\'", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Preload("Book").Order(dueBackOrder), params.ListParams).Find(&instances).Error
	return instances, total, err
}

func findBookTx(tx *gorm.DB, id uint) (*models.Book, error) {
	var book models.Book
	if err := tx.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Book", id)
		}
		return nil, err
	}
	return &book, nil
}
