package share

import (
	"formdash/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type ShareApi struct {
	Controller *ShareController
}

func NewShareApi(controller *ShareController) api.Route {
	return &ShareApi{Controller: controller}
}

// Setup registers the public share routes. These are deliberately outside the
// authenticated API group.
func (api *ShareApi) Setup(app *fiber.App) {
	app.Get("/share/:token", api.Controller.ViewShared)
	app.Get("/share/:token/data", api.Controller.GetSharedData)
}
