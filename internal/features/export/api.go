package export

import (
	"formdash/internal/common/api"
	"formdash/internal/config"
	"formdash/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	ExportController *ExportController
	Config           *config.Config
}

func NewExportApi(exportController *ExportController, cfg *config.Config) api.Route {
	return &ExportApi{
		ExportController: exportController,
		Config:           cfg,
	}
}

func (api *ExportApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(api.Config.SkipAuth)

	dashboards := app.Group("/api/v1/dashboards", auth)
	dashboards.Get("/:id/export/xlsx", api.ExportController.ExportWorkbook)
	dashboards.Post("/:id/export/snapshot", api.ExportController.ExportSnapshot)

	schedules := app.Group("/api/v1/export/schedules", auth)
	schedules.Post("/", api.ExportController.CreateSchedule)
	schedules.Get("/", api.ExportController.ListSchedules)
	schedules.Delete("/:id", api.ExportController.DeleteSchedule)
}
