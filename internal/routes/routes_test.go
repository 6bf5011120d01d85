package routes

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	_ "catalog-backend/docs"
	"catalog-backend/internal/admin"
	"catalog-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type stub struct{}

func (stub) List(c *fiber.Ctx) error              { return nil }
func (stub) Get(c *fiber.Ctx) error               { return nil }
func (stub) Create(c *fiber.Ctx) error            { return nil }
func (stub) Update(c *fiber.Ctx) error            { return nil }
func (stub) Delete(c *fiber.Ctx) error            { return nil }
func (stub) GetDashboardStats(c *fiber.Ctx) error { return nil }
func (stub) GetStatusChart(c *fiber.Ctx) error    { return nil }
func (stub) GetLanguageChart(c *fiber.Ctx) error  { return nil }
func (stub) ImportByISBN(c *fiber.Ctx) error      { return nil }
func (stub) GetLastImportLog(c *fiber.Ctx) error  { return nil }
func (stub) GetPresignedURL(c *fiber.Ctx) error   { return nil }

var pathParam = regexp.MustCompile(`:(\w+)`)

func TestSetup_EveryRouteIsDocumented(t *testing.T) {
	handlers := make(map[models.Kind]admin.CRUDHandler, len(models.Kinds))
	for _, k := range models.Kinds {
		handlers[k] = stub{}
	}
	site, err := admin.Catalog(handlers)
	require.NoError(t, err)

	app := fiber.New()
	Setup(app, site, stub{}, stub{}, stub{})

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	documented := 0
	for _, r := range app.GetRoutes(true) {
		switch r.Method {
		case fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete:
		default:
			continue
		}
		path := strings.TrimSuffix(strings.TrimPrefix(r.Path, APIPrefix), "/")
		path = pathParam.ReplaceAllString(path, "{$1}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "%s %s has no swagger path", r.Method, path) {
			assert.Contains(t, ops, strings.ToLower(r.Method), "%s %s", r.Method, path)
		}
		documented++
	}
	assert.Equal(t, len(models.Kinds)*5+7, documented)
}

func TestSetup_UploadIsOptional(t *testing.T) {
	handlers := make(map[models.Kind]admin.CRUDHandler, len(models.Kinds))
	for _, k := range models.Kinds {
		handlers[k] = stub{}
	}
	site, err := admin.Catalog(handlers)
	require.NoError(t, err)

	app := fiber.New()
	Setup(app, site, stub{}, stub{}, nil)

	for _, r := range app.GetRoutes(true) {
		assert.NotContains(t, r.Path, "/upload")
	}
}
