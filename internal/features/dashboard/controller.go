package dashboard

import (
	"errors"

	"formdash/internal/features/render"
	"formdash/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	DashboardService DashboardService
}

func NewDashboardController(dashboardService DashboardService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
	}
}

func currentUser(ctx *fiber.Ctx) (*utils.UserClaims, bool) {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims, ok && claims != nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAccessDenied):
		return fiber.StatusForbidden
	case errors.Is(err, ErrVersionConflict):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// CreateDashboard godoc
// @Summary Create dashboard
// @Description Create a new dashboard, empty or from the request body
// @Tags dashboard
// @Accept json
// @Produce json
// @Param dashboard body Dashboard true "Dashboard"
// @Success 201 {object} Dashboard
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/dashboards [post]
func (ctrl *DashboardController) CreateDashboard(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var dashboard Dashboard
	if err := ctx.BodyParser(&dashboard); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	dashboard.ID = ""

	if err := ctrl.DashboardService.CreateDashboard(ctx.UserContext(), &dashboard, claims.UserID); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(dashboard)
}

// ListDashboards godoc
// @Summary List dashboards
// @Description List the current user's dashboards, most recently updated first
// @Tags dashboard
// @Produce json
// @Success 200 {array} Dashboard
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/dashboards [get]
func (ctrl *DashboardController) ListDashboards(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	dashboards, err := ctrl.DashboardService.ListUserDashboards(ctx.UserContext(), claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if dashboards == nil {
		dashboards = []Dashboard{}
	}

	return ctx.JSON(dashboards)
}

// GetDashboard godoc
// @Summary Get dashboard
// @Tags dashboard
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {object} Dashboard
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/dashboards/{id} [get]
func (ctrl *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	dashboard, err := ctrl.DashboardService.GetDashboard(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(dashboard)
}

// UpdateDashboard godoc
// @Summary Update dashboard
// @Description Replace the dashboard's widgets, theme and layout. The body
// @Description version must match the stored version or a 409 is returned.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param dashboard body Dashboard true "Dashboard"
// @Success 200 {object} Dashboard
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/dashboards/{id} [put]
func (ctrl *DashboardController) UpdateDashboard(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var dashboard Dashboard
	if err := ctx.BodyParser(&dashboard); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := ctrl.DashboardService.UpdateDashboard(ctx.UserContext(), ctx.Params("id"), &dashboard, claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(updated)
}

// DeleteDashboard godoc
// @Summary Delete dashboard
// @Tags dashboard
// @Param id path string true "Dashboard ID"
// @Success 204 {object} nil
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/dashboards/{id} [delete]
func (ctrl *DashboardController) DeleteDashboard(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.DashboardService.DeleteDashboard(ctx.UserContext(), ctx.Params("id"), claims.UserID); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// EnableSharing godoc
// @Summary Enable sharing
// @Description Generate (or keep) the dashboard's share token
// @Tags dashboard
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/dashboards/{id}/share [post]
func (ctrl *DashboardController) EnableSharing(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	token, err := ctrl.DashboardService.EnableSharing(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"shareToken": token,
		"shareUrl":   "/share/" + token,
	})
}

// DisableSharing godoc
// @Summary Disable sharing
// @Tags dashboard
// @Param id path string true "Dashboard ID"
// @Success 204 {object} nil
// @Router /api/v1/dashboards/{id}/share [delete]
func (ctrl *DashboardController) DisableSharing(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.DashboardService.DisableSharing(ctx.UserContext(), ctx.Params("id"), claims.UserID); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// PreviewDashboard godoc
// @Summary Preview dashboard
// @Description Render the dashboard as a standalone HTML page
// @Tags dashboard
// @Produce html
// @Param id path string true "Dashboard ID"
// @Success 200 {string} string "HTML document"
// @Router /api/v1/dashboards/{id}/preview [get]
func (ctrl *DashboardController) PreviewDashboard(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	dashboard, err := ctrl.DashboardService.GetDashboard(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	html, err := render.Document(render.Page{
		Title:   dashboard.Name,
		Widgets: dashboard.Widgets,
		Theme:   dashboard.Theme,
		Layout:  dashboard.Layout,
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}
