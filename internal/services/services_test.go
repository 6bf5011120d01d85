package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	catalog   CatalogService
	books     BookService
	dashboard DashboardService
	bookRepo  repository.BookRepository
	genres    repository.GenreRepository
	languages repository.LanguageRepository
	authors   repository.AuthorRepository
}

func newFixture(t *testing.T) fixture {
	db := testutil.NewTestDB(t)
	logger := testutil.NewLogger()

	genres := repository.NewGenreRepository(db)
	languages := repository.NewLanguageRepository(db)
	authors := repository.NewAuthorRepository(db)
	books := repository.NewBookRepository(db)
	instances := repository.NewBookInstanceRepository(db)

	return fixture{
		catalog:   NewCatalogService(genres, languages, authors, repository.NewMyModelNameRepository(db), logger),
		books:     NewBookService(books, instances, logger),
		dashboard: NewDashboardService(repository.NewStatsRepository(db)),
		bookRepo:  books,
		genres:    genres,
		languages: languages,
		authors:   authors,
	}
}

type fakeCovers struct {
	deleted []string
}

func (f *fakeCovers) IsManagedURL(url string) bool {
	return strings.HasPrefix(url, "http://covers.test/")
}

func (f *fakeCovers) DeleteFile(objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	return nil
}

func TestNormalizeListParams(t *testing.T) {
	tests := []struct {
		name string
		in   repository.ListParams
		want repository.ListParams
	}{
		{"defaults", repository.ListParams{}, repository.ListParams{Page: 1, Limit: 20}},
		{"clamps limit", repository.ListParams{Page: 3, Limit: 500}, repository.ListParams{Page: 3, Limit: 100}},
		{"keeps search", repository.ListParams{Page: -1, Limit: 5, Search: "tolk"}, repository.ListParams{Page: 1, Limit: 5, Search: "tolk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeListParams(tt.in))
		})
	}
}

func TestBookService_HobbitLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	author := &models.Author{FirstName: "J.R.R.", LastName: "Tolkien"}
	require.NoError(t, f.catalog.CreateAuthor(ctx, author))

	book := &models.Book{
		Title:    "The Hobbit",
		Summary:  "A hobbit goes there and back again.",
		ISBN:     "9780261103344",
		AuthorID: &author.ID,
	}
	require.NoError(t, f.books.CreateBook(ctx, book, nil))

	copy1 := &models.BookInstance{BookID: book.ID, Imprint: "Allen & Unwin, 1937"}
	require.NoError(t, f.books.CreateBookInstance(ctx, copy1))
	assert.Equal(t, "the-hobbit", copy1.Slug)
	assert.Equal(t, models.StatusMaintenance, copy1.Status)

	err := f.books.DeleteBook(ctx, book.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsReferentialIntegrity(err))

	still, err := f.books.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", still.Title)

	require.NoError(t, f.catalog.DeleteAuthor(ctx, author.ID))
	orphan, err := f.books.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.AuthorID)
	assert.Nil(t, orphan.Author)

	require.NoError(t, f.books.DeleteBookInstance(ctx, copy1.ID))
	require.NoError(t, f.books.DeleteBook(ctx, book.ID))

	_, err = f.books.GetBookByID(ctx, book.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestBookService_ExplicitSlugKeptVerbatim(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	book := &models.Book{Title: "The Hobbit", Summary: "There and back again.", ISBN: "9780261103344"}
	require.NoError(t, f.books.CreateBook(ctx, book, nil))

	for _, explicit := range []string{"first_edition", "First-Edition", "hobbit--1"} {
		inst := &models.BookInstance{BookID: book.ID, Imprint: "Allen & Unwin", Slug: explicit}
		require.NoError(t, f.books.CreateBookInstance(ctx, inst), explicit)

		got, err := f.books.GetBookInstanceByID(ctx, inst.ID)
		require.NoError(t, err)
		assert.Equal(t, explicit, got.Slug)
	}

	derived := &models.BookInstance{BookID: book.ID, Imprint: "Allen & Unwin"}
	require.NoError(t, f.books.CreateBookInstance(ctx, derived))
	assert.Equal(t, "the-hobbit", derived.Slug)

	require.NoError(t, f.books.UpdateBook(ctx, book.ID, &models.Book{
		Title:   "Other",
		Summary: "There and back again.",
		ISBN:    "9780261103344",
	}, nil))

	got, err := f.books.GetBookInstanceByID(ctx, derived.ID)
	require.NoError(t, err)
	assert.Equal(t, "the-hobbit", got.Slug, "slug is never recomputed")
	assert.Equal(t, derived.ID.String()+" (Other)", got.String())
}

func TestBookService_InstanceUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	book := &models.Book{Title: "Dune", Summary: "Spice.", ISBN: "9780441013593"}
	require.NoError(t, f.books.CreateBook(ctx, book, nil))

	inst := &models.BookInstance{BookID: book.ID, Imprint: "Chilton, 1965"}
	require.NoError(t, f.books.CreateBookInstance(ctx, inst))

	due := testutil.Date(t, "2026-11-01")
	require.NoError(t, f.books.UpdateBookInstance(ctx, inst.ID, &models.BookInstance{
		BookID:  book.ID,
		Imprint: "Chilton, 1965",
		Status:  models.StatusOnLoan,
		DueBack: due,
	}))

	got, err := f.books.GetBookInstanceByID(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnLoan, got.Status)
	assert.Equal(t, "dune", got.Slug)
	require.NotNil(t, got.DueBack)
	assert.Equal(t, "2026-11-01", got.DueBack.Format("2006-01-02"))

	// status may move back to any value
	require.NoError(t, f.books.UpdateBookInstance(ctx, inst.ID, &models.BookInstance{
		BookID:  book.ID,
		Imprint: "Chilton, 1965",
		Status:  models.StatusMaintenance,
	}))

	err = f.books.UpdateBookInstance(ctx, inst.ID, &models.BookInstance{
		BookID:  book.ID,
		Imprint: "Chilton, 1965",
		Slug:    "something-else",
	})
	assert.True(t, apperr.IsValidation(err))

	err = f.books.UpdateBookInstance(ctx, inst.ID, &models.BookInstance{
		BookID:  book.ID,
		Imprint: "Chilton, 1965",
		Status:  models.LoanStatus("lost"),
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestBookService_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.books.CreateBook(ctx, &models.Book{Title: "No summary", ISBN: "1"}, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "summary", appErr.Details[0].Field)

	err = f.books.CreateBookInstance(ctx, &models.BookInstance{Imprint: "x"})
	assert.True(t, apperr.IsValidation(err))

	err = f.books.CreateBookInstance(ctx, &models.BookInstance{BookID: 99, Imprint: "x"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestBookService_CoverCleanup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	svc := f.books.(*bookService)
	covers := &fakeCovers{}
	svc.SetCoverStorage(covers)

	book := &models.Book{
		Title:    "Emma",
		Summary:  "Matchmaking.",
		ISBN:     "9780141439587",
		CoverURL: "http://covers.test/covers/covers/emma_1.jpg",
	}
	require.NoError(t, f.books.CreateBook(ctx, book, nil))

	require.NoError(t, f.books.UpdateBook(ctx, book.ID, &models.Book{
		Title:    "Emma",
		Summary:  "Matchmaking.",
		ISBN:     "9780141439587",
		CoverURL: "http://covers.test/covers/covers/emma_2.jpg",
	}, nil))
	assert.Equal(t, []string{"http://covers.test/covers/covers/emma_1.jpg"}, covers.deleted)

	require.NoError(t, f.books.DeleteBook(ctx, book.ID))
	assert.Equal(t, []string{
		"http://covers.test/covers/covers/emma_1.jpg",
		"http://covers.test/covers/covers/emma_2.jpg",
	}, covers.deleted)

	external := &models.Book{
		Title:    "Persuasion",
		Summary:  "Second chances.",
		ISBN:     "9780141439686",
		CoverURL: "https://covers.openlibrary.org/b/id/1-L.jpg",
	}
	require.NoError(t, f.books.CreateBook(ctx, external, nil))
	require.NoError(t, f.books.DeleteBook(ctx, external.ID))
	assert.Len(t, covers.deleted, 2)
}

func TestCatalogService_CRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.catalog.CreateGenre(ctx, &models.Genre{})
	assert.True(t, apperr.IsValidation(err))

	genre := &models.Genre{Name: "Science Fiction"}
	require.NoError(t, f.catalog.CreateGenre(ctx, genre))
	require.NoError(t, f.catalog.UpdateGenre(ctx, genre.ID, &models.Genre{Name: "Sci-Fi"}))

	got, err := f.catalog.GetGenreByID(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sci-Fi", got.String())

	err = f.catalog.UpdateGenre(ctx, 999, &models.Genre{Name: "Ghost"})
	assert.True(t, apperr.IsNotFound(err))

	lang := &models.Language{Name: "Esperanto"}
	require.NoError(t, f.catalog.CreateLanguage(ctx, lang))
	book := &models.Book{Title: "Gerda", Summary: "s", ISBN: "1", LanguageID: &lang.ID}
	require.NoError(t, f.books.CreateBook(ctx, book, []uint{genre.ID}))

	require.NoError(t, f.catalog.DeleteLanguage(ctx, lang.ID))
	require.NoError(t, f.catalog.DeleteGenre(ctx, genre.ID))

	after, err := f.books.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, after.LanguageID)
	assert.Empty(t, after.Genres)

	for _, name := range []string{"alpha", "gamma", "beta"} {
		require.NoError(t, f.catalog.CreateMyModelName(ctx, &models.MyModelName{MyFieldName: name}))
	}
	items, total, err := f.catalog.GetAllMyModelNames(ctx, repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, "gamma", items[0].MyFieldName)
	assert.Equal(t, "alpha", items[2].MyFieldName)
}

func TestDashboardService_OverdueUsesCurrentDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	book := &models.Book{Title: "Ulysses", Summary: "One day.", ISBN: "9780199535675"}
	require.NoError(t, f.books.CreateBook(ctx, book, nil))

	for _, due := range []string{"2026-10-18", "2026-10-19", "2026-10-25"} {
		require.NoError(t, f.books.CreateBookInstance(ctx, &models.BookInstance{
			BookID:  book.ID,
			Imprint: "OUP",
			Status:  models.StatusOnLoan,
			DueBack: testutil.Date(t, due),
		}))
	}
	require.NoError(t, f.books.CreateBookInstance(ctx, &models.BookInstance{
		BookID: book.ID, Imprint: "OUP", Status: models.StatusAvailable,
	}))

	svc := f.dashboard.(*dashboardService)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC) }

	stats, err := f.dashboard.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalBooks)
	assert.Equal(t, int64(4), stats.TotalInstances)
	assert.Equal(t, int64(1), stats.AvailableInstances)
	assert.Equal(t, int64(1), stats.OverdueInstances)

	byStatus, err := f.dashboard.GetInstancesByStatus(ctx)
	require.NoError(t, err)
	require.Len(t, byStatus, len(models.LoanStatuses))
}
