package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository interface {
	// CRUD operations
	Create(ctx context.Context, book *models.Book, genreIDs []uint) error
	Update(ctx context.Context, book *models.Book, genreIDs []uint) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*models.Book, error)
	FindAll(ctx context.Context, params ListParams) ([]models.Book, int64, error)

	// Import log operations
	CreateImportLog(ctx context.Context, log *models.ImportLog) error
	GetLastImportLog(ctx context.Context) (*models.ImportLog, error)
}

type bookRepository struct {
	baseRepository
}

func NewBookRepository(db *database.Database) BookRepository {
	return &bookRepository{baseRepository: newBaseRepository(db)}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book, genreIDs []uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := checkBookReferences(tx, book); err != nil {
			return err
		}
		genres, err := loadGenres(tx, genreIDs)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(book).Error; err != nil {
			return err
		}
		if len(genres) > 0 {
			if err := tx.Model(book).Association("Genres").Append(genres); err != nil {
				return fmt.Errorf("failed to attach genres: %w", err)
			}
		}
		book.Genres = genres
		return nil
	})
}

// Update overwrites every column of the book and replaces its genre set.
func (r *bookRepository) Update(ctx context.Context, book *models.Book, genreIDs []uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Book
		if err := tx.First(&existing, book.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Book", book.ID)
			}
			return err
		}
		if err := checkBookReferences(tx, book); err != nil {
			return err
		}
		genres, err := loadGenres(tx, genreIDs)
		if err != nil {
			return err
		}

		book.CreatedAt = existing.CreatedAt
		if err := tx.Omit(clause.Associations).Save(book).Error; err != nil {
			return err
		}

		association := tx.Model(book).Association("Genres")
		if len(genres) == 0 {
			err = association.Clear()
		} else {
			err = association.Replace(genres)
		}
		if err != nil {
			return fmt.Errorf("failed to replace genres: %w", err)
		}
		book.Genres = genres
		return nil
	})
}

// Delete refuses while any book instance references the book. Otherwise the
// genre associations are cleared and the book is removed.
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Book{}, "Book", id); err != nil {
			return err
		}

		var instances int64
		if err := tx.Model(&models.BookInstance{}).Where("book_id = ?", id).Count(&instances).Error; err != nil {
			return err
		}
		if instances > 0 {
			return apperr.ReferentialIntegrity(fmt.Sprintf(
				"cannot delete book %d: referenced by %d book instance(s)", id, instances))
		}

		if err := tx.Model(&models.Book{ID: id}).Association("Genres").Clear(); err != nil {
			return fmt.Errorf("failed to clear genres: %w", err)
		}
		return tx.Delete(&models.Book{}, id).Error
	})
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*models.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var book models.Book
	err := preloadBook(r.db.WithContext(ctx)).First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Book", id)
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var book models.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// FindAll lists books in insertion order. Search matches the title or the
// author's first or last name.
func (r *bookRepository) FindAll(ctx context.Context, params ListParams) ([]models.Book, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var books []models.Book
	var total int64

	db := r.db.WithContext(ctx)
	query := db.Model(&models.Book{})

	if params.Search != "" {
		pattern := likePattern(params.Search)
		authorIDs := db.Model(&models.Author{}).Select("id").
			Where("LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\'", pattern, pattern)
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\' OR author_id IN (?)", pattern, authorIDs)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(preloadBook(query).Order("id ASC"), params).Find(&books).Error
	return books, total, err
}

func (r *bookRepository) CreateImportLog(ctx context.Context, log *models.ImportLog) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(log).Error
}

func (r *bookRepository) GetLastImportLog(ctx context.Context) (*models.ImportLog, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var log models.ImportLog
	err := r.db.WithContext(ctx).Order("imported_at DESC, id DESC").First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func preloadBook(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Language").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("genres.id ASC")
	})
}

func checkBookReferences(tx *gorm.DB, book *models.Book) error {
	if book.AuthorID != nil {
		if err := mustExist(tx, &models.Author{}, "Author", *book.AuthorID); err != nil {
			return err
		}
	}
	if book.LanguageID != nil {
		if err := mustExist(tx, &models.Language{}, "Language", *book.LanguageID); err != nil {
			return err
		}
	}
	return nil
}

func loadGenres(tx *gorm.DB, ids []uint) ([]models.Genre, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return []models.Genre{}, nil
	}

	var genres []models.Genre
	if err := tx.Where("id IN ?", ids).Order("id ASC").Find(&genres).Error; err != nil {
		return nil, err
	}

	if missing := lo.Without(ids, models.Book{Genres: genres}.GenreIDs()...); len(missing) > 0 {
		return nil, apperr.NotFound("Genre", missing[0])
	}
	return genres, nil
}
