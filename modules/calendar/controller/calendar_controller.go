package controller

import (
	"meetmatch/core/constants"
	"meetmatch/core/controller"
	"meetmatch/core/errors"
	"meetmatch/core/utils"
	"meetmatch/modules/calendar/dto"
	"meetmatch/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CalendarController handles calendar connection HTTP requests.
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarServiceInterface
}

func NewCalendarController(svc service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
	}
}

func currentUserID(ctx echo.Context) (uuid.UUID, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// GetConnections handles GET /calendar/connections
// @Summary List calendar connections
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ConnectionDTO
// @Router /private/calendar/connections [get]
func (c *CalendarController) GetConnections(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}

	result, appErr := c.CalendarService.GetConnections(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Connections retrieved")
}

// Disconnect handles DELETE /calendar/connections/:provider
// @Summary Disconnect a calendar provider
// @Tags Calendar
// @Security BearerAuth
// @Param provider path string true "Provider name"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/connections/{provider} [delete]
func (c *CalendarController) Disconnect(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}

	provider := ctx.Param("provider")
	if provider == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Provider is required")
	}

	if appErr := c.CalendarService.Disconnect(ctx.Request().Context(), userID, provider); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Calendar disconnected")
}

// FreeBusy handles GET /calendar/free-busy
// @Summary Query own busy intervals
// @Description Raw busy intervals from the connected calendar for an RFC3339 range
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {object} dto.FreeBusyResponse
// @Router /private/calendar/free-busy [get]
func (c *CalendarController) FreeBusy(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}

	var req dto.FreeBusyRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	result, appErr := c.CalendarService.FreeBusy(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Busy intervals retrieved")
}
