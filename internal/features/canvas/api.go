package canvas

import (
	"formdash/internal/common/api"
	"formdash/internal/config"
	"formdash/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CanvasApi struct {
	Controller *CanvasController
	Config     *config.Config
}

func NewCanvasApi(controller *CanvasController, cfg *config.Config) api.Route {
	return &CanvasApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (api *CanvasApi) Setup(app *fiber.App) {
	group := app.Group("/api/v1/canvas", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/library", api.Controller.GetLibrary)

	group.Post("/sessions", api.Controller.StartSession)
	group.Get("/sessions/:id", api.Controller.GetSession)
	group.Delete("/sessions/:id", api.Controller.CloseSession)

	group.Post("/sessions/:id/drop", api.Controller.HandleDrop)
	group.Post("/sessions/:id/widgets", api.Controller.AddWidget)
	group.Put("/sessions/:id/widgets/:widgetId", api.Controller.UpdateWidget)
	group.Delete("/sessions/:id/widgets/:widgetId", api.Controller.RemoveWidget)

	group.Post("/sessions/:id/preview", api.Controller.TogglePreview)
	group.Post("/sessions/:id/save", api.Controller.SaveSession)
	group.Get("/sessions/:id/html", api.Controller.RenderSession)
}
