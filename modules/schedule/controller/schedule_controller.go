package controller

import (
	"meetmatch/core/controller"
	"meetmatch/core/errors"
	"meetmatch/modules/schedule/dto"
	"meetmatch/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// ScheduleController handles scheduling HTTP requests.
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

// Suggest handles POST /schedule/suggest
// @Summary Suggest meeting times
// @Description Rank candidate meeting slots for a set of participants on one day
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SuggestRequest true "Scheduling parameters"
// @Success 200 {object} dto.SuggestResponse
// @Failure 400 {object} errors.AppError
// @Router /private/schedule/suggest [post]
func (c *ScheduleController) Suggest(ctx echo.Context) error {
	var req dto.SuggestRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.Suggest(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Suggestions computed")
}

// FreeSlots handles POST /schedule/free-slots
// @Summary List free time windows
// @Description Aggregate contiguous fully-free windows per day over a date range
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.FreeSlotsRequest true "Range parameters"
// @Success 200 {object} dto.FreeSlotsResponse
// @Failure 400 {object} errors.AppError
// @Router /private/schedule/free-slots [post]
func (c *ScheduleController) FreeSlots(ctx echo.Context) error {
	var req dto.FreeSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.FreeSlots(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Free slots computed")
}
