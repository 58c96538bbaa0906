package template

import (
	"formdash/internal/common/api"
	"formdash/internal/config"
	"formdash/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TemplateApi struct {
	Controller *TemplateController
	Config     *config.Config
}

func NewTemplateApi(controller *TemplateController, cfg *config.Config) api.Route {
	return &TemplateApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (api *TemplateApi) Setup(app *fiber.App) {
	group := app.Group("/api/v1/templates", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.Controller.ListTemplates)
	group.Post("/custom", api.Controller.CreateCustomTemplate)
	group.Get("/custom/my", api.Controller.ListMyTemplates)
	group.Delete("/custom/:id", api.Controller.DeleteCustomTemplate)
	group.Get("/:id", api.Controller.GetTemplate)
}
