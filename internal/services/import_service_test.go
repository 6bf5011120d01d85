package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/config"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hobbitRecord = `{
	"ISBN:9780261103344": {
		"title": "The Hobbit",
		"subtitle": "or There and Back Again",
		"authors": [{"name": "J. R. R.  Tolkien"}],
		"subjects": [
			{"name": "Fantasy"}, {"name": "Dragons"}, {"name": ""},
			{"name": "Dwarves"}, {"name": "Wizards"}, {"name": "Quests"}, {"name": "Maps"}
		],
		"languages": [{"key": "/languages/eng"}],
		"cover": {"large": "https://covers.openlibrary.org/b/id/6979861-L.jpg"}
	}
}`

func newImportFixture(t *testing.T, handler http.HandlerFunc) (fixture, *importService) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	f := newFixture(t)
	svc := NewImportService(f.bookRepo, f.genres, f.languages, f.authors, config.OpenLibraryConfig{
		BaseURL:           server.URL,
		UserAgent:         "catalog-test",
		HTTPTimeout:       5 * time.Second,
		RequestsPerSecond: 100,
	}, testutil.NewLogger()).(*importService)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	return f, svc
}

func TestImportService_ImportByISBN(t *testing.T) {
	ctx := context.Background()
	var gotKey, gotAgent string
	f, svc := newImportFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("bibkeys")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, hobbitRecord)
	})

	book, importLog, err := svc.ImportByISBN(ctx, "978-0-261-10334-4")
	require.NoError(t, err)
	assert.Equal(t, "ISBN:9780261103344", gotKey)
	assert.Equal(t, "catalog-test", gotAgent)

	assert.Equal(t, "The Hobbit", book.Title)
	assert.Equal(t, "or There and Back Again", book.Summary)
	assert.Equal(t, "9780261103344", book.ISBN)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/6979861-L.jpg", book.CoverURL)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Tolkien, J. R. R.", book.Author.String())
	require.NotNil(t, book.Language)
	assert.Equal(t, "English", book.Language.Name)
	require.Len(t, book.Genres, maxImportedGenres)
	assert.Equal(t, "Fantasy", book.Genres[0].Name)

	assert.Equal(t, models.ImportStatusSuccess, importLog.Status)
	require.NotNil(t, importLog.BookID)
	assert.Equal(t, book.ID, *importLog.BookID)

	last, err := svc.GetLastImportLog(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, models.ImportStatusSuccess, last.Status)

	// a second import of the same ISBN is refused
	_, importLog, err = svc.ImportByISBN(ctx, "978-0261103344")
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, models.ImportStatusFailed, importLog.Status)

	_, total, err := f.books.GetAllBooks(ctx, repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestImportService_ReusesExistingReferents(t *testing.T) {
	ctx := context.Background()
	f, svc := newImportFixture(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, hobbitRecord)
	})

	author := &models.Author{FirstName: "J. R. R.", LastName: "Tolkien"}
	require.NoError(t, f.catalog.CreateAuthor(ctx, author))
	fantasy := &models.Genre{Name: "Fantasy"}
	require.NoError(t, f.catalog.CreateGenre(ctx, fantasy))

	book, _, err := svc.ImportByISBN(ctx, "9780261103344")
	require.NoError(t, err)
	require.NotNil(t, book.AuthorID)
	assert.Equal(t, author.ID, *book.AuthorID)
	assert.Contains(t, book.GenreIDs(), fantasy.ID)

	_, authors, err := f.catalog.GetAllAuthors(ctx, repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), authors)
}

func TestImportService_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown isbn", func(t *testing.T) {
		_, svc := newImportFixture(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		})
		book, importLog, err := svc.ImportByISBN(ctx, "0000000000")
		assert.Nil(t, book)
		assert.True(t, apperr.IsNotFound(err))
		assert.Equal(t, models.ImportStatusFailed, importLog.Status)
		assert.Contains(t, importLog.ErrorMessage, "not found")
	})

	t.Run("upstream error", func(t *testing.T) {
		_, svc := newImportFixture(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		})
		_, _, err := svc.ImportByISBN(ctx, "9780261103344")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
		_, typed := apperr.KindOf(err)
		assert.False(t, typed)
	})

	t.Run("oversized isbn is logged truncated", func(t *testing.T) {
		_, svc := newImportFixture(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		})
		long := strings.Repeat("9", 64)
		_, importLog, err := svc.ImportByISBN(ctx, long)
		assert.True(t, apperr.IsNotFound(err))
		assert.Equal(t, long[:models.ImportLogISBNLength], importLog.ISBN)

		last, err := svc.GetLastImportLog(ctx)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Len(t, last.ISBN, models.ImportLogISBNLength)
	})

	t.Run("empty isbn", func(t *testing.T) {
		_, svc := newImportFixture(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		_, _, err := svc.ImportByISBN(ctx, " - ")
		assert.True(t, apperr.IsValidation(err))

		last, err := svc.GetLastImportLog(ctx)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, models.ImportStatusFailed, last.Status)
	})
}

func TestImportHelpers(t *testing.T) {
	first, last := splitName("Ursula K. Le Guin")
	assert.Equal(t, "Ursula K. Le", first)
	assert.Equal(t, "Guin", last)

	first, last = splitName("Homer")
	assert.Equal(t, "Homer", first)
	assert.Equal(t, "Homer", last)

	assert.Equal(t, "French", languageName("/languages/fre"))
	assert.Equal(t, "xyz", languageName("/languages/xyz"))

	assert.Equal(t, missingSummary, summaryOf(&openLibraryBook{}))
	assert.Equal(t, "notes", summaryOf(&openLibraryBook{Notes: " notes ", Subtitle: "sub"}))

	assert.Equal(t, "Misé", truncate("Misérables", 4))
	assert.Equal(t, "9780261103344", normalizeISBN(" 978-0 261-10334-4 "))
}
