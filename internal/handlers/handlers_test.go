package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-backend/internal/admin"
	"catalog-backend/internal/apperr"
	"catalog-backend/internal/config"
	"catalog-backend/internal/handlers"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/routes"
	"catalog-backend/internal/services"
	"catalog-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

type fakeUploader struct{}

func (fakeUploader) GeneratePresignedURL(_ context.Context, filename, contentType string) (string, string, error) {
	if contentType != "image/png" {
		return "", "", apperr.Validation("unsupported cover content type")
	}
	return "http://storage.test/covers/covers/" + filename + "?sig=1", "http://storage.test/covers/covers/" + filename, nil
}

func newApp(t *testing.T, openLibrary http.HandlerFunc) *fiber.App {
	db := testutil.NewTestDB(t)
	logger := testutil.NewLogger()

	genreRepo := repository.NewGenreRepository(db)
	langRepo := repository.NewLanguageRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	bookRepo := repository.NewBookRepository(db)
	instanceRepo := repository.NewBookInstanceRepository(db)

	catalog := services.NewCatalogService(genreRepo, langRepo, authorRepo, repository.NewMyModelNameRepository(db), logger)
	books := services.NewBookService(bookRepo, instanceRepo, logger)
	dashboard := services.NewDashboardService(repository.NewStatsRepository(db))

	olCfg := config.OpenLibraryConfig{BaseURL: "http://127.0.0.1:1", HTTPTimeout: time.Second, RequestsPerSecond: 100}
	if openLibrary != nil {
		server := httptest.NewServer(openLibrary)
		t.Cleanup(server.Close)
		olCfg.BaseURL = server.URL
	}
	imports := services.NewImportService(bookRepo, genreRepo, langRepo, authorRepo, olCfg, logger)

	site, err := admin.Catalog(map[models.Kind]admin.CRUDHandler{
		models.KindGenre:        handlers.NewGenreHandler(catalog, logger),
		models.KindLanguage:     handlers.NewLanguageHandler(catalog, logger),
		models.KindAuthor:       handlers.NewAuthorHandler(catalog, logger),
		models.KindBook:         handlers.NewBookHandler(books, logger),
		models.KindBookInstance: handlers.NewBookInstanceHandler(books, logger),
		models.KindMyModelName:  handlers.NewMyModelNameHandler(catalog, logger),
	})
	require.NoError(t, err)

	app := fiber.New()
	routes.Setup(app, site,
		handlers.NewDashboardHandler(dashboard, logger),
		handlers.NewImportHandler(imports, logger),
		handlers.NewUploadHandler(fakeUploader{}, logger),
	)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(payload, &env), string(payload))
	return resp, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func TestGenreRoutes(t *testing.T) {
	app := newApp(t, nil)

	resp, env := do(t, app, "POST", "/api/v1/genres", map[string]string{"name": "Fantasy"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	genre := decode[models.Genre](t, env)
	assert.Equal(t, fmt.Sprintf("/api/v1/genres/%d", genre.ID), resp.Header.Get("Location"))

	resp, env = do(t, app, "POST", "/api/v1/genres", map[string]string{"name": ""})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	details := decode[[]apperr.FieldError](t, env)
	require.Len(t, details, 1)
	assert.Equal(t, "name", details[0].Field)

	resp, _ = do(t, app, "POST", "/api/v1/genres", "{not json")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, "GET", "/api/v1/genres/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = do(t, app, "GET", "/api/v1/genres/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error", env.Status)

	resp, env = do(t, app, "GET", "/api/v1/genres?page=1&limit=5", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Genre](t, env), 1)
	assert.JSONEq(t, `{"page":1,"limit":5,"total":1,"total_pages":1,"has_next":false,"has_previous":false}`, string(env.Meta))

	resp, _ = do(t, app, "DELETE", fmt.Sprintf("/api/v1/genres/%d", genre.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBookAndInstanceRoutes(t *testing.T) {
	app := newApp(t, nil)

	_, env := do(t, app, "POST", "/api/v1/authors", map[string]string{
		"first_name": "J.R.R.", "last_name": "Tolkien", "date_of_birth": "1892-01-03",
	})
	author := decode[models.Author](t, env)
	require.NotNil(t, author.DateOfBirth)

	resp, _ := do(t, app, "POST", "/api/v1/authors", map[string]string{
		"first_name": "A", "last_name": "B", "date_of_birth": "03/01/1892",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	_, env = do(t, app, "POST", "/api/v1/genres", map[string]string{"name": "Fantasy"})
	genre := decode[models.Genre](t, env)

	resp, env = do(t, app, "POST", "/api/v1/books", map[string]interface{}{
		"title":     "The Hobbit",
		"summary":   "There and back again.",
		"isbn":      "9780261103344",
		"author_id": author.ID,
		"genre_ids": []uint{genre.ID},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	book := decode[models.Book](t, env)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Tolkien", book.Author.LastName)
	assert.Equal(t, []uint{genre.ID}, book.GenreIDs())

	resp, _ = do(t, app, "POST", "/api/v1/books", map[string]interface{}{
		"title": "Ghost", "summary": "s", "isbn": "1", "genre_ids": []uint{404},
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, env = do(t, app, "POST", "/api/v1/book-instances", map[string]interface{}{
		"book_id": book.ID,
		"imprint": "Allen & Unwin, 1937",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	instance := decode[models.BookInstance](t, env)
	assert.Equal(t, "the-hobbit", instance.Slug)
	assert.Equal(t, models.StatusMaintenance, instance.Status)
	assert.Equal(t, "/api/v1/book-instances/"+instance.ID.String(), resp.Header.Get("Location"))

	resp, env = do(t, app, "PUT", "/api/v1/book-instances/"+instance.ID.String(), map[string]interface{}{
		"book_id":  book.ID,
		"imprint":  "Allen & Unwin, 1937",
		"status":   "on-loan",
		"due_back": "2026-11-01",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	updated := decode[models.BookInstance](t, env)
	assert.Equal(t, models.StatusOnLoan, updated.Status)
	assert.Equal(t, "the-hobbit", updated.Slug)

	resp, _ = do(t, app, "PUT", "/api/v1/book-instances/"+instance.ID.String(), map[string]interface{}{
		"book_id": book.ID,
		"imprint": "Allen & Unwin, 1937",
		"slug":    "renamed",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = do(t, app, "GET", "/api/v1/book-instances?status=on-loan", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.BookInstance](t, env), 1)

	resp, _ = do(t, app, "GET", "/api/v1/book-instances?status=lost", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, "GET", "/api/v1/book-instances/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	bookPath := fmt.Sprintf("/api/v1/books/%d", book.ID)
	resp, env = do(t, app, "DELETE", bookPath, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, env.Message, "book instance")

	resp, _ = do(t, app, "DELETE", fmt.Sprintf("/api/v1/authors/%d", author.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, env = do(t, app, "GET", bookPath, nil)
	orphan := decode[models.Book](t, env)
	assert.Nil(t, orphan.AuthorID)
	assert.Nil(t, orphan.Author)

	resp, _ = do(t, app, "DELETE", "/api/v1/book-instances/"+instance.ID.String(), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, "DELETE", bookPath, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, "GET", bookPath, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMyModelNameRoutes(t *testing.T) {
	app := newApp(t, nil)

	for _, name := range []string{"b", "c", "a"} {
		resp, _ := do(t, app, "POST", "/api/v1/my-model-names", map[string]string{"my_field_name": name})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	_, env := do(t, app, "GET", "/api/v1/my-model-names", nil)
	items := decode[[]models.MyModelName](t, env)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{items[0].MyFieldName, items[1].MyFieldName, items[2].MyFieldName})
}

func TestAdminModelsRoute(t *testing.T) {
	app := newApp(t, nil)

	resp, env := do(t, app, "GET", "/api/v1/admin/models", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	infos := decode[[]routes.ModelInfo](t, env)
	require.Len(t, infos, len(models.Kinds))
	assert.Equal(t, "genre", infos[0].Kind)
	assert.Equal(t, "/api/v1/genres", infos[0].Path)
	assert.Equal(t, "/api/v1/book-instances", infos[4].Path)
}

func TestDashboardRoutes(t *testing.T) {
	app := newApp(t, nil)

	_, env := do(t, app, "POST", "/api/v1/books", map[string]interface{}{
		"title": "Emma", "summary": "Matchmaking.", "isbn": "9780141439587",
	})
	book := decode[models.Book](t, env)
	do(t, app, "POST", "/api/v1/book-instances", map[string]interface{}{
		"book_id": book.ID, "imprint": "Penguin", "status": "available",
	})

	resp, env := do(t, app, "GET", "/api/v1/dashboard/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decode[models.DashboardStats](t, env)
	assert.Equal(t, int64(1), stats.TotalBooks)
	assert.Equal(t, int64(1), stats.AvailableInstances)

	resp, env = do(t, app, "GET", "/api/v1/charts/status", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.PieChartData](t, env), len(models.LoanStatuses))

	resp, env = do(t, app, "GET", "/api/v1/charts/language", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	byLanguage := decode[[]models.PieChartData](t, env)
	require.Len(t, byLanguage, 1)
	assert.Equal(t, "Unknown", byLanguage[0].Label)
}

func TestImportRoutes(t *testing.T) {
	app := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ISBN:9780441013593": {"title": "Dune", "authors": [{"name": "Frank Herbert"}]}}`)
	})

	resp, env := do(t, app, "GET", "/api/v1/import/last-log", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "No import logs found", env.Message)

	resp, env = do(t, app, "POST", "/api/v1/import/isbn/9780441013593", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	book := decode[models.Book](t, env)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, fmt.Sprintf("/api/v1/books/%d", book.ID), resp.Header.Get("Location"))

	resp, _ = do(t, app, "POST", "/api/v1/import/isbn/9780441013593", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = do(t, app, "POST", "/api/v1/import/isbn/0000000000", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, env = do(t, app, "GET", "/api/v1/import/last-log", nil)
	last := decode[models.ImportLog](t, env)
	assert.Equal(t, models.ImportStatusFailed, last.Status)
	assert.Equal(t, "0000000000", last.ISBN)
}

func TestUploadRoute(t *testing.T) {
	app := newApp(t, nil)

	resp, env := do(t, app, "GET", "/api/v1/upload/presign?filename=dune.png&contentType=image/png", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	urls := decode[map[string]string](t, env)
	assert.Equal(t, "http://storage.test/covers/covers/dune.png", urls["public_url"])

	resp, _ = do(t, app, "GET", "/api/v1/upload/presign", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, "GET", "/api/v1/upload/presign?filename=x.gif&contentType=image/gif", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
