package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/config"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	maxImportedGenres = 5
	missingSummary    = "No summary available."
)

// ImportService creates catalog entries from Open Library records.
type ImportService interface {
	ImportByISBN(ctx context.Context, isbn string) (*models.Book, *models.ImportLog, error)
	GetLastImportLog(ctx context.Context) (*models.ImportLog, error)
}

// openLibraryBook matches one entry of api/books?jscmd=data.
type openLibraryBook struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Notes    string `json:"notes"`
	Authors  []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Subjects []struct {
		Name string `json:"name"`
	} `json:"subjects"`
	Languages []struct {
		Key string `json:"key"`
	} `json:"languages"`
	Cover struct {
		Large string `json:"large"`
	} `json:"cover"`
}

type importService struct {
	bookRepo   repository.BookRepository
	genreRepo  repository.GenreRepository
	langRepo   repository.LanguageRepository
	authorRepo repository.AuthorRepository
	config     config.OpenLibraryConfig
	logger     *logrus.Logger
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
}

func NewImportService(bookRepo repository.BookRepository, genreRepo repository.GenreRepository, langRepo repository.LanguageRepository, authorRepo repository.AuthorRepository, cfg config.OpenLibraryConfig, logger *logrus.Logger) ImportService {
	rps := cfg.RequestsPerSecond
	if rps < 1 {
		rps = 1
	}
	return &importService{
		bookRepo:   bookRepo,
		genreRepo:  genreRepo,
		langRepo:   langRepo,
		authorRepo: authorRepo,
		config:     cfg,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ImportByISBN fetches the record, resolves author, language and genres by
// name and stores the book. Every attempt is written to the import log.
func (s *importService) ImportByISBN(ctx context.Context, isbn string) (*models.Book, *models.ImportLog, error) {
	isbn = normalizeISBN(isbn)
	importLog := &models.ImportLog{
		ISBN:       truncate(isbn, models.ImportLogISBNLength),
		Status:     models.ImportStatusFailed,
		ImportedAt: s.now(),
	}

	book, err := s.importByISBN(ctx, isbn)
	if err != nil {
		importLog.ErrorMessage = err.Error()
		s.saveLog(ctx, importLog)
		s.logger.WithError(err).WithField("isbn", isbn).Warn("Open Library import failed")
		return nil, importLog, err
	}

	importLog.Status = models.ImportStatusSuccess
	importLog.BookID = &book.ID
	s.saveLog(ctx, importLog)

	s.logger.WithFields(logrus.Fields{
		"isbn":    isbn,
		"book_id": book.ID,
		"title":   book.Title,
	}).Info("Open Library import completed")

	return book, importLog, nil
}

func (s *importService) importByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	if isbn == "" {
		return nil, apperr.Validation("isbn is required", apperr.FieldError{Field: "isbn", Message: "isbn is required"})
	}

	existing, err := s.bookRepo.FindByISBN(ctx, truncate(isbn, 13))
	if err != nil {
		return nil, fmt.Errorf("failed to check existing book: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict(fmt.Sprintf("book with ISBN %s already exists", existing.ISBN))
	}

	record, err := s.fetchByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:    truncate(strings.TrimSpace(record.Title), 200),
		Summary:  truncate(summaryOf(record), 1000),
		ISBN:     truncate(isbn, 13),
		CoverURL: truncate(record.Cover.Large, 500),
	}

	if len(record.Authors) > 0 && strings.TrimSpace(record.Authors[0].Name) != "" {
		first, last := splitName(record.Authors[0].Name)
		author, err := s.authorRepo.FindOrCreate(ctx, truncate(first, 100), truncate(last, 100))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve author: %w", err)
		}
		book.AuthorID = &author.ID
	}

	if len(record.Languages) > 0 {
		name := languageName(record.Languages[0].Key)
		language, err := s.langRepo.FindOrCreate(ctx, truncate(name, 200))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve language: %w", err)
		}
		book.LanguageID = &language.ID
	}

	var genreIDs []uint
	for _, subject := range record.Subjects {
		if len(genreIDs) == maxImportedGenres {
			break
		}
		name := truncate(strings.TrimSpace(subject.Name), 200)
		if name == "" {
			continue
		}
		genre, err := s.genreRepo.FindOrCreate(ctx, name)
		if err != nil {
			s.logger.WithError(err).WithField("subject", name).Error("Error creating genre")
			continue
		}
		genreIDs = append(genreIDs, genre.ID)
	}

	if book.Title == "" {
		return nil, apperr.Validation("Open Library record has no title")
	}
	if err := s.bookRepo.Create(ctx, book, genreIDs); err != nil {
		return nil, err
	}

	return s.bookRepo.FindByID(ctx, book.ID)
}

func (s *importService) fetchByISBN(ctx context.Context, isbn string) (*openLibraryBook, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	bibkey := "ISBN:" + isbn
	u := fmt.Sprintf("%s/api/books?bibkeys=%s&jscmd=data&format=json",
		strings.TrimRight(s.config.BaseURL, "/"), url.QueryEscape(bibkey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Open Library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("Open Library returned status %d: %s", resp.StatusCode, string(body))
	}

	var records map[string]openLibraryBook
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode Open Library response: %w", err)
	}

	record, ok := records[bibkey]
	if !ok {
		return nil, &apperr.Error{
			Kind:    apperr.KindNotFound,
			Message: fmt.Sprintf("ISBN %s not found on Open Library", isbn),
		}
	}
	return &record, nil
}

func (s *importService) GetLastImportLog(ctx context.Context) (*models.ImportLog, error) {
	return s.bookRepo.GetLastImportLog(ctx)
}

func (s *importService) saveLog(ctx context.Context, importLog *models.ImportLog) {
	if err := s.bookRepo.CreateImportLog(ctx, importLog); err != nil {
		s.logger.WithError(err).Error("Failed to write import log")
	}
}

func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(strings.TrimSpace(isbn), " ", "")
}

// splitName treats the last word as the family name. A single-word name is
// used for both parts.
func splitName(full string) (string, string) {
	full = strings.Join(strings.Fields(full), " ")
	idx := strings.LastIndex(full, " ")
	if idx == -1 {
		return full, full
	}
	return full[:idx], full[idx+1:]
}

func summaryOf(record *openLibraryBook) string {
	switch {
	case strings.TrimSpace(record.Notes) != "":
		return strings.TrimSpace(record.Notes)
	case strings.TrimSpace(record.Subtitle) != "":
		return strings.TrimSpace(record.Subtitle)
	default:
		return missingSummary
	}
}

// languageName maps an Open Library language key such as "/languages/eng".
func languageName(key string) string {
	code := strings.TrimPrefix(key, "/languages/")
	names := map[string]string{
		"eng": "English", "fre": "French", "ger": "German", "spa": "Spanish",
		"ita": "Italian", "por": "Portuguese", "rus": "Russian", "jpn": "Japanese",
		"chi": "Chinese", "kor": "Korean", "dut": "Dutch", "swe": "Swedish",
		"ara": "Arabic", "hin": "Hindi", "pol": "Polish", "ind": "Indonesian",
	}
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
