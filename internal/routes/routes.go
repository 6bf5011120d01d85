package routes

import (
	"catalog-backend/internal/admin"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardRoutes interface {
	GetDashboardStats(c *fiber.Ctx) error
	GetStatusChart(c *fiber.Ctx) error
	GetLanguageChart(c *fiber.Ctx) error
}

type ImportRoutes interface {
	ImportByISBN(c *fiber.Ctx) error
	GetLastImportLog(c *fiber.Ctx) error
}

type UploadRoutes interface {
	GetPresignedURL(c *fiber.Ctx) error
}

// ModelInfo describes one admin registration to API clients.
type ModelInfo struct {
	Kind         string   `json:"kind" example:"book"`
	VerboseName  string   `json:"verbose_name" example:"book"`
	Path         string   `json:"path" example:"/api/v1/books"`
	ListDisplay  []string `json:"list_display"`
	SearchFields []string `json:"search_fields"`
	Ordering     []string `json:"ordering"`
}

// Setup mounts every admin registration and the auxiliary routes. upload may
// be nil when cover storage is not configured.
func Setup(app *fiber.App, site *admin.Site, dashboard DashboardRoutes, imports ImportRoutes, upload UploadRoutes) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Entity routes - one CRUD group per registration
	for _, reg := range site.Registrations() {
		group := v1.Group("/" + Segment(reg.Kind))
		{
			group.Get("/", reg.Handler.List)
			group.Get("/:id", reg.Handler.Get)
			group.Post("/", reg.Handler.Create)
			group.Put("/:id", reg.Handler.Update)
			group.Delete("/:id", reg.Handler.Delete)
		}
	}

	adminGroup := v1.Group("/admin")
	{
		adminGroup.Get("/models", listModels(site))
	}

	// Import routes - Open Library
	importGroup := v1.Group("/import")
	{
		importGroup.Post("/isbn/:isbn", imports.ImportByISBN)
		importGroup.Get("/last-log", imports.GetLastImportLog)
	}

	// Dashboard routes - Analytics and statistics
	dashboardGroup := v1.Group("/dashboard")
	{
		dashboardGroup.Get("/stats", dashboard.GetDashboardStats)
	}

	// Chart routes - Visualization data
	charts := v1.Group("/charts")
	{
		charts.Get("/status", dashboard.GetStatusChart)
		charts.Get("/language", dashboard.GetLanguageChart)
	}

	if upload != nil {
		uploadGroup := v1.Group("/upload")
		{
			uploadGroup.Get("/presign", upload.GetPresignedURL)
		}
	}
}

// listModels godoc
// @Summary List admin registrations
// @Description Every managed entity kind with its list view configuration
// @Tags admin
// @Produce json
// @Success 200 {object} utils.StandardResponse "Registered models"
// @Router /admin/models [get]
func listModels(site *admin.Site) fiber.Handler {
	return func(c *fiber.Ctx) error {
		regs := site.Registrations()
		out := make([]ModelInfo, 0, len(regs))
		for _, reg := range regs {
			out = append(out, ModelInfo{
				Kind:         string(reg.Kind),
				VerboseName:  reg.VerboseName,
				Path:         CollectionPath(reg.Kind),
				ListDisplay:  reg.ListDisplay,
				SearchFields: reg.SearchFields,
				Ordering:     reg.Ordering,
			})
		}
		return utils.SuccessResponse(c, fiber.StatusOK, "Admin models retrieved successfully", out)
	}
}
