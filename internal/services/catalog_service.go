package services

import (
	"context"

	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/validation"

	"github.com/sirupsen/logrus"
)

// CatalogService manages the reference entities books point at: genres,
// languages and authors, plus the demo entity.
type CatalogService interface {
	// Genre operations
	CreateGenre(ctx context.Context, genre *models.Genre) error
	UpdateGenre(ctx context.Context, id uint, genre *models.Genre) error
	DeleteGenre(ctx context.Context, id uint) error
	GetGenreByID(ctx context.Context, id uint) (*models.Genre, error)
	GetAllGenres(ctx context.Context, params repository.ListParams) ([]models.Genre, int64, error)

	// Language operations
	CreateLanguage(ctx context.Context, language *models.Language) error
	UpdateLanguage(ctx context.Context, id uint, language *models.Language) error
	DeleteLanguage(ctx context.Context, id uint) error
	GetLanguageByID(ctx context.Context, id uint) (*models.Language, error)
	GetAllLanguages(ctx context.Context, params repository.ListParams) ([]models.Language, int64, error)

	// Author operations
	CreateAuthor(ctx context.Context, author *models.Author) error
	UpdateAuthor(ctx context.Context, id uint, author *models.Author) error
	DeleteAuthor(ctx context.Context, id uint) error
	GetAuthorByID(ctx context.Context, id uint) (*models.Author, error)
	GetAllAuthors(ctx context.Context, params repository.ListParams) ([]models.Author, int64, error)

	// Demo entity operations
	CreateMyModelName(ctx context.Context, m *models.MyModelName) error
	UpdateMyModelName(ctx context.Context, id uint, m *models.MyModelName) error
	DeleteMyModelName(ctx context.Context, id uint) error
	GetMyModelNameByID(ctx context.Context, id uint) (*models.MyModelName, error)
	GetAllMyModelNames(ctx context.Context, params repository.ListParams) ([]models.MyModelName, int64, error)
}

type catalogService struct {
	genreRepo  repository.GenreRepository
	langRepo   repository.LanguageRepository
	authorRepo repository.AuthorRepository
	demoRepo   repository.MyModelNameRepository
	logger     *logrus.Logger
}

func NewCatalogService(genreRepo repository.GenreRepository, langRepo repository.LanguageRepository, authorRepo repository.AuthorRepository, demoRepo repository.MyModelNameRepository, logger *logrus.Logger) CatalogService {
	return &catalogService{
		genreRepo:  genreRepo,
		langRepo:   langRepo,
		authorRepo: authorRepo,
		demoRepo:   demoRepo,
		logger:     logger,
	}
}

func (s *catalogService) CreateGenre(ctx context.Context, genre *models.Genre) error {
	if err := validation.Struct(genre); err != nil {
		return err
	}
	return s.genreRepo.Create(ctx, genre)
}

func (s *catalogService) UpdateGenre(ctx context.Context, id uint, genre *models.Genre) error {
	genre.ID = id
	if err := validation.Struct(genre); err != nil {
		return err
	}
	return s.genreRepo.Update(ctx, genre)
}

// DeleteGenre also removes the genre from every book that lists it.
func (s *catalogService) DeleteGenre(ctx context.Context, id uint) error {
	if err := s.genreRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("genre_id", id).Info("Genre deleted")
	return nil
}

func (s *catalogService) GetGenreByID(ctx context.Context, id uint) (*models.Genre, error) {
	return s.genreRepo.FindByID(ctx, id)
}

func (s *catalogService) GetAllGenres(ctx context.Context, params repository.ListParams) ([]models.Genre, int64, error) {
	return s.genreRepo.FindAll(ctx, NormalizeListParams(params))
}

func (s *catalogService) CreateLanguage(ctx context.Context, language *models.Language) error {
	if err := validation.Struct(language); err != nil {
		return err
	}
	return s.langRepo.Create(ctx, language)
}

func (s *catalogService) UpdateLanguage(ctx context.Context, id uint, language *models.Language) error {
	language.ID = id
	if err := validation.Struct(language); err != nil {
		return err
	}
	return s.langRepo.Update(ctx, language)
}

// DeleteLanguage clears the language on every book that used it.
func (s *catalogService) DeleteLanguage(ctx context.Context, id uint) error {
	if err := s.langRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("language_id", id).Info("Language deleted")
	return nil
}

func (s *catalogService) GetLanguageByID(ctx context.Context, id uint) (*models.Language, error) {
	return s.langRepo.FindByID(ctx, id)
}

func (s *catalogService) GetAllLanguages(ctx context.Context, params repository.ListParams) ([]models.Language, int64, error) {
	return s.langRepo.FindAll(ctx, NormalizeListParams(params))
}

func (s *catalogService) CreateAuthor(ctx context.Context, author *models.Author) error {
	if err := validation.Struct(author); err != nil {
		return err
	}
	return s.authorRepo.Create(ctx, author)
}

func (s *catalogService) UpdateAuthor(ctx context.Context, id uint, author *models.Author) error {
	author.ID = id
	if err := validation.Struct(author); err != nil {
		return err
	}
	return s.authorRepo.Update(ctx, author)
}

// DeleteAuthor keeps the author's books and clears their author.
func (s *catalogService) DeleteAuthor(ctx context.Context, id uint) error {
	if err := s.authorRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("author_id", id).Info("Author deleted")
	return nil
}

func (s *catalogService) GetAuthorByID(ctx context.Context, id uint) (*models.Author, error) {
	return s.authorRepo.FindByID(ctx, id)
}

func (s *catalogService) GetAllAuthors(ctx context.Context, params repository.ListParams) ([]models.Author, int64, error) {
	return s.authorRepo.FindAll(ctx, NormalizeListParams(params))
}

func (s *catalogService) CreateMyModelName(ctx context.Context, m *models.MyModelName) error {
	if err := validation.Struct(m); err != nil {
		return err
	}
	return s.demoRepo.Create(ctx, m)
}

func (s *catalogService) UpdateMyModelName(ctx context.Context, id uint, m *models.MyModelName) error {
	m.ID = id
	if err := validation.Struct(m); err != nil {
		return err
	}
	return s.demoRepo.Update(ctx, m)
}

func (s *catalogService) DeleteMyModelName(ctx context.Context, id uint) error {
	return s.demoRepo.Delete(ctx, id)
}

func (s *catalogService) GetMyModelNameByID(ctx context.Context, id uint) (*models.MyModelName, error) {
	return s.demoRepo.FindByID(ctx, id)
}

func (s *catalogService) GetAllMyModelNames(ctx context.Context, params repository.ListParams) ([]models.MyModelName, int64, error) {
	return s.demoRepo.FindAll(ctx, NormalizeListParams(params))
}
