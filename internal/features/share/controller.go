package share

import (
	"errors"

	"formdash/internal/features/dashboard"
	"formdash/internal/features/render"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ShareController struct {
	DashboardService dashboard.DashboardService
	Logger           *zap.Logger
}

func NewShareController(dashboardService dashboard.DashboardService, logger *zap.Logger) *ShareController {
	return &ShareController{
		DashboardService: dashboardService,
		Logger:           logger,
	}
}

// ViewShared godoc
// @Summary View shared dashboard
// @Description Public, read-only HTML view of a shared dashboard. No authentication.
// @Tags share
// @Produce html
// @Param token path string true "Share token"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} map[string]interface{}
// @Router /share/{token} [get]
func (ctrl *ShareController) ViewShared(ctx *fiber.Ctx) error {
	token := ctx.Params("token")

	d, err := ctrl.DashboardService.GetSharedDashboard(ctx.UserContext(), token)
	if err != nil {
		if errors.Is(err, dashboard.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shared dashboard not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Counting is best effort; the page renders either way.
	ctrl.DashboardService.RecordShareView(ctx.UserContext(), d.ID)

	html, err := render.Document(render.Page{
		Title:   d.Name,
		Widgets: d.Widgets,
		Theme:   d.Theme,
		Layout:  d.Layout,
	})
	if err != nil {
		ctrl.Logger.Error("failed to render shared dashboard",
			zap.String("dashboard_id", d.ID), zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}

// GetSharedData godoc
// @Summary Shared dashboard data
// @Description Public JSON view of a shared dashboard for embedding clients
// @Tags share
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dashboard.Dashboard
// @Failure 404 {object} map[string]interface{}
// @Router /share/{token}/data [get]
func (ctrl *ShareController) GetSharedData(ctx *fiber.Ctx) error {
	d, err := ctrl.DashboardService.GetSharedDashboard(ctx.UserContext(), ctx.Params("token"))
	if err != nil {
		if errors.Is(err, dashboard.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shared dashboard not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// The owner-only fields stay private on the public surface.
	d.UserID = ""
	d.ShareToken = ""
	return ctx.JSON(d)
}
