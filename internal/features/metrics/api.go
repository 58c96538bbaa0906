package metrics

import (
	"formdash/internal/common/api"
	"formdash/internal/config"
	"formdash/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MetricsApi struct {
	Controller *MetricsController
	Config     *config.Config
}

func NewMetricsApi(controller *MetricsController, cfg *config.Config) api.Route {
	return &MetricsApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (api *MetricsApi) Setup(app *fiber.App) {
	group := app.Group("/api/v1/dashboards/:id/metrics", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.Controller.CreateDefinition)
	group.Get("/", api.Controller.ListDefinitions)
	group.Post("/evaluate", api.Controller.EvaluateAll)
	group.Post("/materialize", api.Controller.Materialize)
	group.Put("/:metricId", api.Controller.UpdateDefinition)
	group.Delete("/:metricId", api.Controller.DeleteDefinition)
}
