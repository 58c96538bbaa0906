package template

import (
	"errors"

	"formdash/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TemplateController struct {
	Service TemplateService
}

func NewTemplateController(service TemplateService) *TemplateController {
	return &TemplateController{Service: service}
}

func currentUser(ctx *fiber.Ctx) (*utils.UserClaims, bool) {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims, ok && claims != nil
}

// ListTemplates godoc
// @Summary List templates
// @Description List system and public custom templates
// @Tags template
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {array} Template
// @Router /api/v1/templates [get]
func (ctrl *TemplateController) ListTemplates(ctx *fiber.Ctx) error {
	templates, err := ctrl.Service.ListTemplates(ctx.UserContext(), ctx.Query("category"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(templates)
}

// GetTemplate godoc
// @Summary Get template
// @Tags template
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} Template
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/templates/{id} [get]
func (ctrl *TemplateController) GetTemplate(ctx *fiber.Ctx) error {
	template, err := ctrl.Service.GetTemplate(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(template)
}

// CreateCustomTemplate godoc
// @Summary Save custom template
// @Description Save the request body's widgets, theme and layout as a reusable template
// @Tags template
// @Accept json
// @Produce json
// @Param template body Template true "Template"
// @Success 201 {object} Template
// @Router /api/v1/templates/custom [post]
func (ctrl *TemplateController) CreateCustomTemplate(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var template Template
	if err := ctx.BodyParser(&template); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if template.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "template name is required"})
	}

	if err := ctrl.Service.CreateCustom(ctx.UserContext(), &template, claims.UserID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(template)
}

// ListMyTemplates godoc
// @Summary List my custom templates
// @Tags template
// @Produce json
// @Success 200 {array} Template
// @Router /api/v1/templates/custom/my [get]
func (ctrl *TemplateController) ListMyTemplates(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	templates, err := ctrl.Service.ListMyTemplates(ctx.UserContext(), claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if templates == nil {
		templates = []Template{}
	}
	return ctx.JSON(templates)
}

// DeleteCustomTemplate godoc
// @Summary Delete custom template
// @Tags template
// @Param id path string true "Template ID"
// @Success 204 {object} nil
// @Router /api/v1/templates/custom/{id} [delete]
func (ctrl *TemplateController) DeleteCustomTemplate(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.Service.DeleteCustom(ctx.UserContext(), ctx.Params("id"), claims.UserID); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
