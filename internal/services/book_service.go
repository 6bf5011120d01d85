package services

import (
	"context"

	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CoverStorage removes cover images that the catalog uploaded itself.
type CoverStorage interface {
	IsManagedURL(url string) bool
	DeleteFile(objectPath string) error
}

type BookService interface {
	// Book operations
	CreateBook(ctx context.Context, book *models.Book, genreIDs []uint) error
	UpdateBook(ctx context.Context, id uint, book *models.Book, genreIDs []uint) error
	DeleteBook(ctx context.Context, id uint) error
	GetBookByID(ctx context.Context, id uint) (*models.Book, error)
	GetAllBooks(ctx context.Context, params repository.ListParams) ([]models.Book, int64, error)

	// Book instance operations
	CreateBookInstance(ctx context.Context, instance *models.BookInstance) error
	UpdateBookInstance(ctx context.Context, id uuid.UUID, instance *models.BookInstance) error
	DeleteBookInstance(ctx context.Context, id uuid.UUID) error
	GetBookInstanceByID(ctx context.Context, id uuid.UUID) (*models.BookInstance, error)
	GetAllBookInstances(ctx context.Context, params repository.InstanceListParams) ([]models.BookInstance, int64, error)
}

type bookService struct {
	bookRepo     repository.BookRepository
	instanceRepo repository.BookInstanceRepository
	logger       *logrus.Logger
	covers       CoverStorage
}

func NewBookService(bookRepo repository.BookRepository, instanceRepo repository.BookInstanceRepository, logger *logrus.Logger) BookService {
	return &bookService{
		bookRepo:     bookRepo,
		instanceRepo: instanceRepo,
		logger:       logger,
	}
}

func (s *bookService) SetCoverStorage(covers CoverStorage) {
	s.covers = covers
}

func (s *bookService) CreateBook(ctx context.Context, book *models.Book, genreIDs []uint) error {
	if err := validation.Struct(book); err != nil {
		return err
	}
	return s.bookRepo.Create(ctx, book, genreIDs)
}

func (s *bookService) UpdateBook(ctx context.Context, id uint, book *models.Book, genreIDs []uint) error {
	existing, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	book.ID = id
	book.Author = nil
	book.Language = nil
	if err := validation.Struct(book); err != nil {
		return err
	}
	if err := s.bookRepo.Update(ctx, book, genreIDs); err != nil {
		return err
	}

	if existing.CoverURL != "" && existing.CoverURL != book.CoverURL {
		s.removeCover(existing.CoverURL, "Failed to delete replaced cover from storage")
	}
	return nil
}

// DeleteBook fails with a referential integrity error while copies of the
// book exist.
func (s *bookService) DeleteBook(ctx context.Context, id uint) error {
	existing, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("book_id", id).Warn("Book delete refused")
		return err
	}

	if existing.CoverURL != "" {
		s.removeCover(existing.CoverURL, "Failed to delete cover from storage")
	}
	return nil
}

func (s *bookService) GetBookByID(ctx context.Context, id uint) (*models.Book, error) {
	return s.bookRepo.FindByID(ctx, id)
}

func (s *bookService) GetAllBooks(ctx context.Context, params repository.ListParams) ([]models.Book, int64, error) {
	return s.bookRepo.FindAll(ctx, NormalizeListParams(params))
}

// CreateBookInstance stores a new copy. Without an explicit slug one is
// derived from the book title; without a status the copy starts in maintenance.
func (s *bookService) CreateBookInstance(ctx context.Context, instance *models.BookInstance) error {
	instance.Book = nil
	if err := validation.Struct(instance); err != nil {
		return err
	}
	return s.instanceRepo.Create(ctx, instance)
}

// UpdateBookInstance allows any status change; the slug stays fixed once set.
func (s *bookService) UpdateBookInstance(ctx context.Context, id uuid.UUID, instance *models.BookInstance) error {
	instance.ID = id
	instance.Book = nil
	if err := validation.Struct(instance); err != nil {
		return err
	}
	return s.instanceRepo.Update(ctx, instance)
}

func (s *bookService) DeleteBookInstance(ctx context.Context, id uuid.UUID) error {
	return s.instanceRepo.Delete(ctx, id)
}

func (s *bookService) GetBookInstanceByID(ctx context.Context, id uuid.UUID) (*models.BookInstance, error) {
	return s.instanceRepo.FindByID(ctx, id)
}

func (s *bookService) GetAllBookInstances(ctx context.Context, params repository.InstanceListParams) ([]models.BookInstance, int64, error) {
	params.ListParams = NormalizeListParams(params.ListParams)
	return s.instanceRepo.FindAll(ctx, params)
}

func (s *bookService) removeCover(url, failure string) {
	if s.covers == nil || !s.covers.IsManagedURL(url) {
		return
	}
	if err := s.covers.DeleteFile(url); err != nil {
		s.logger.WithError(err).WithField("cover_url", url).Warn(failure)
	}
}
