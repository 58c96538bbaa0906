package metrics

import (
	"errors"

	"formdash/internal/features/dashboard"
	"formdash/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type MetricsController struct {
	Service MetricsService
}

func NewMetricsController(service MetricsService) *MetricsController {
	return &MetricsController{Service: service}
}

func currentUser(ctx *fiber.Ctx) (*utils.UserClaims, bool) {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims, ok && claims != nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, dashboard.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, dashboard.ErrAccessDenied):
		return fiber.StatusForbidden
	case errors.Is(err, dashboard.ErrVersionConflict):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// CreateDefinition godoc
// @Summary Create metric definition
// @Description Attach a named formula to a dashboard
// @Tags metrics
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param definition body Definition true "Definition"
// @Success 201 {object} Definition
// @Router /api/v1/dashboards/{id}/metrics [post]
func (ctrl *MetricsController) CreateDefinition(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var def Definition
	if err := ctx.BodyParser(&def); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	def.DashboardID = ctx.Params("id")
	if def.Name == "" || def.Formula == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and formula are required"})
	}

	if err := ctrl.Service.CreateDefinition(ctx.UserContext(), &def, claims.UserID); err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			// Formula compile errors land here.
			status = fiber.StatusBadRequest
		}
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(def)
}

// ListDefinitions godoc
// @Summary List metric definitions
// @Tags metrics
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {array} Definition
// @Router /api/v1/dashboards/{id}/metrics [get]
func (ctrl *MetricsController) ListDefinitions(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	defs, err := ctrl.Service.ListDefinitions(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if defs == nil {
		defs = []Definition{}
	}
	return ctx.JSON(defs)
}

// UpdateDefinition godoc
// @Summary Update metric definition
// @Tags metrics
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param metricId path string true "Definition ID"
// @Success 200 {object} Definition
// @Router /api/v1/dashboards/{id}/metrics/{metricId} [put]
func (ctrl *MetricsController) UpdateDefinition(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var def Definition
	if err := ctx.BodyParser(&def); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	def.ID = ctx.Params("metricId")

	if err := ctrl.Service.UpdateDefinition(ctx.UserContext(), &def, claims.UserID); err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(def)
}

// DeleteDefinition godoc
// @Summary Delete metric definition
// @Tags metrics
// @Param id path string true "Dashboard ID"
// @Param metricId path string true "Definition ID"
// @Success 204 {object} nil
// @Router /api/v1/dashboards/{id}/metrics/{metricId} [delete]
func (ctrl *MetricsController) DeleteDefinition(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.Service.DeleteDefinition(ctx.UserContext(), ctx.Params("metricId"), claims.UserID); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// EvaluateAll godoc
// @Summary Evaluate metrics
// @Description Evaluate every definition on the dashboard; per-formula errors are reported inline
// @Tags metrics
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {array} Result
// @Router /api/v1/dashboards/{id}/metrics/evaluate [post]
func (ctrl *MetricsController) EvaluateAll(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	results, err := ctrl.Service.EvaluateAll(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(results)
}

// Materialize godoc
// @Summary Materialize metrics
// @Description Write evaluated values into the linked widgets and save the dashboard
// @Tags metrics
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {object} dashboard.Dashboard
// @Router /api/v1/dashboards/{id}/metrics/materialize [post]
func (ctrl *MetricsController) Materialize(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	d, err := ctrl.Service.Materialize(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(d)
}
