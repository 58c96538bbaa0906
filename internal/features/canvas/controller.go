package canvas

import (
	"errors"

	"formdash/internal/features/dashboard"
	"formdash/internal/features/template"
	"formdash/internal/features/widget"
	"formdash/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type CanvasController struct {
	Service CanvasService
}

func NewCanvasController(service CanvasService) *CanvasController {
	return &CanvasController{Service: service}
}

func currentUser(ctx *fiber.Ctx) (*utils.UserClaims, bool) {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims, ok && claims != nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, dashboard.ErrNotFound),
		errors.Is(err, template.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNotEditing), errors.Is(err, ErrUnknownWidget):
		return fiber.StatusBadRequest
	case errors.Is(err, dashboard.ErrAccessDenied):
		return fiber.StatusForbidden
	case errors.Is(err, dashboard.ErrVersionConflict):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// GetLibrary godoc
// @Summary Widget library
// @Description The catalog of placeable widget types with their size bounds
// @Tags canvas
// @Produce json
// @Success 200 {array} widget.LibraryItem
// @Router /api/v1/canvas/library [get]
func (ctrl *CanvasController) GetLibrary(ctx *fiber.Ctx) error {
	return ctx.JSON(widget.Library())
}

// StartSession godoc
// @Summary Start editor session
// @Description Open an editor session, optionally seeded from a dashboard or template
// @Tags canvas
// @Accept json
// @Produce json
// @Success 201 {object} Session
// @Router /api/v1/canvas/sessions [post]
func (ctrl *CanvasController) StartSession(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body struct {
		DashboardID string `json:"dashboardId"`
		TemplateID  string `json:"templateId"`
	}
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&body); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	session, err := ctrl.Service.StartSession(ctx.UserContext(), body.DashboardID, body.TemplateID, claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(session)
}

// GetSession godoc
// @Summary Get editor session
// @Tags canvas
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Session
// @Router /api/v1/canvas/sessions/{id} [get]
func (ctrl *CanvasController) GetSession(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	session, err := ctrl.Service.GetSession(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(session)
}

// HandleDrop godoc
// @Summary Apply drag gesture
// @Description Apply one completed drag: library to canvas inserts, canvas to canvas reorders, no destination is a no-op
// @Tags canvas
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param drop body Drop true "Drop"
// @Success 200 {object} Session
// @Router /api/v1/canvas/sessions/{id}/drop [post]
func (ctrl *CanvasController) HandleDrop(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var drop Drop
	if err := ctx.BodyParser(&drop); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := ctrl.Service.HandleDrop(ctx.UserContext(), ctx.Params("id"), claims.UserID, drop)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(session)
}

// AddWidget godoc
// @Summary Add widget
// @Description Append a new widget of the given type to the canvas
// @Tags canvas
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Session
// @Router /api/v1/canvas/sessions/{id}/widgets [post]
func (ctrl *CanvasController) AddWidget(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body struct {
		Type widget.Type `json:"type"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := ctrl.Service.AddWidget(ctx.UserContext(), ctx.Params("id"), claims.UserID, body.Type)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(session)
}

// UpdateWidget godoc
// @Summary Update widget
// @Tags canvas
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param widgetId path string true "Widget ID"
// @Success 200 {object} Session
// @Router /api/v1/canvas/sessions/{id}/widgets/{widgetId} [put]
func (ctrl *CanvasController) UpdateWidget(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var w widget.Widget
	if err := ctx.BodyParser(&w); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	w.ID = ctx.Params("widgetId")

	session, err := ctrl.Service.UpdateWidget(ctx.UserContext(), ctx.Params("id"), claims.UserID, w)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(session)
}

// RemoveWidget godoc
// @Summary Remove widget
// @Tags canvas
// @Produce json
// @Param id path string true "Session ID"
// @Param widgetId path string true "Widget ID"
// @Success 200 {object} Session
// @Router /api/v1/canvas/sessions/{id}/widgets/{widgetId} [delete]
func (ctrl *CanvasController) RemoveWidget(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	session, err := ctrl.Service.RemoveWidget(ctx.UserContext(), ctx.Params("id"), claims.UserID, ctx.Params("widgetId"))
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(session)
}

// TogglePreview godoc
// @Summary Toggle preview
// @Description Flip the session between editing and previewing
// @Tags canvas
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Session
// @Router /api/v1/canvas/sessions/{id}/preview [post]
func (ctrl *CanvasController) TogglePreview(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	session, err := ctrl.Service.TogglePreview(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(session)
}

// SaveSession godoc
// @Summary Save session
// @Description Persist the working copy; returns 409 when the dashboard changed underneath the session
// @Tags canvas
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dashboard.Dashboard
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/canvas/sessions/{id}/save [post]
func (ctrl *CanvasController) SaveSession(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	saved, err := ctrl.Service.Save(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(saved)
}

// RenderSession godoc
// @Summary Render session
// @Description Render the working copy as HTML, with edit affordances while editing
// @Tags canvas
// @Produce html
// @Param id path string true "Session ID"
// @Success 200 {string} string "HTML document"
// @Router /api/v1/canvas/sessions/{id}/html [get]
func (ctrl *CanvasController) RenderSession(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	html, err := ctrl.Service.RenderSession(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}

// CloseSession godoc
// @Summary Close session
// @Tags canvas
// @Param id path string true "Session ID"
// @Success 204 {object} nil
// @Router /api/v1/canvas/sessions/{id} [delete]
func (ctrl *CanvasController) CloseSession(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.Service.CloseSession(ctx.UserContext(), ctx.Params("id"), claims.UserID); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
