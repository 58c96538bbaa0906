package export

import (
	"errors"

	"formdash/internal/features/dashboard"
	"formdash/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	ExportService ExportService
}

func NewExportController(exportService ExportService) *ExportController {
	return &ExportController{
		ExportService: exportService,
	}
}

func currentUser(ctx *fiber.Ctx) (*utils.UserClaims, bool) {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims, ok && claims != nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrNotFound), errors.Is(err, ErrScheduleNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, dashboard.ErrAccessDenied):
		return fiber.StatusForbidden
	case errors.Is(err, ErrSnapshotsDisabled):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// ExportWorkbook godoc
// @Summary Export dashboard to Excel
// @Description Download the dashboard as an XLSX workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Dashboard ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/dashboards/{id}/export/xlsx [get]
func (ctrl *ExportController) ExportWorkbook(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	data, filename, err := ctrl.ExportService.ExportWorkbook(ctx.UserContext(), ctx.Params("id"), claims.UserID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(data)
}

// ExportSnapshot godoc
// @Summary Snapshot dashboard
// @Description Write a dashboard snapshot row into the export database
// @Tags export
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 202 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/dashboards/{id}/export/snapshot [post]
func (ctrl *ExportController) ExportSnapshot(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.ExportService.ExportSnapshot(ctx.UserContext(), ctx.Params("id"), claims.UserID); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "snapshot saved"})
}

// CreateSchedule godoc
// @Summary Create export schedule
// @Description Schedule a recurring export with a standard cron expression
// @Tags export
// @Accept json
// @Produce json
// @Param schedule body Schedule true "Schedule"
// @Success 201 {object} Schedule
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/export/schedules [post]
func (ctrl *ExportController) CreateSchedule(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var schedule Schedule
	if err := ctx.BodyParser(&schedule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.ExportService.CreateSchedule(ctx.UserContext(), &schedule, claims.UserID); err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(schedule)
}

// ListSchedules godoc
// @Summary List export schedules
// @Tags export
// @Produce json
// @Success 200 {array} Schedule
// @Router /api/v1/export/schedules [get]
func (ctrl *ExportController) ListSchedules(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	schedules, err := ctrl.ExportService.ListSchedules(ctx.UserContext(), claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if schedules == nil {
		schedules = []Schedule{}
	}

	return ctx.JSON(schedules)
}

// DeleteSchedule godoc
// @Summary Delete export schedule
// @Tags export
// @Param id path string true "Schedule ID"
// @Success 204 {object} nil
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/export/schedules/{id} [delete]
func (ctrl *ExportController) DeleteSchedule(ctx *fiber.Ctx) error {
	claims, ok := currentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.ExportService.DeleteSchedule(ctx.UserContext(), ctx.Params("id"), claims.UserID); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
