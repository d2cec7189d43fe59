package controller

import (
	"meetmatch/core/constants"
	"meetmatch/core/controller"
	"meetmatch/core/errors"
	"meetmatch/core/params"
	"meetmatch/core/utils"
	"meetmatch/modules/meeting/dto"
	"meetmatch/modules/meeting/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MeetingController handles meeting HTTP requests.
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

func currentUserID(ctx echo.Context) (uuid.UUID, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

func meetingIDParam(ctx echo.Context) (uuid.UUID, error) {
	return uuid.Parse(ctx.Param("id"))
}

// Create handles POST /meetings
// @Summary Create a meeting
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRequest true "Meeting details"
// @Success 200 {object} dto.MeetingDTO
// @Router /private/meetings [post]
func (c *MeetingController) Create(ctx echo.Context) error {
	hostID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}

	var req dto.CreateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.MeetingService.Create(ctx.Request().Context(), hostID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Meeting created")
}

// List handles GET /meetings
// @Summary List own meetings
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.MeetingDTO
// @Router /private/meetings [get]
func (c *MeetingController) List(ctx echo.Context) error {
	hostID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}

	result, appErr := c.MeetingService.List(ctx.Request().Context(), hostID, params.Parse(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Meetings retrieved")
}

// Get handles GET /meetings/:id
// @Summary Get a meeting
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingDTO
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/{id} [get]
func (c *MeetingController) Get(ctx echo.Context) error {
	hostID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	meetingID, err := meetingIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	result, appErr := c.MeetingService.Get(ctx.Request().Context(), hostID, meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Meeting retrieved")
}

// GetBySlug handles GET /public/meetings/:slug
// @Summary Get a meeting by its public slug
// @Tags Meeting
// @Produce json
// @Param slug path string true "Public slug"
// @Success 200 {object} dto.PublicMeetingDTO
// @Failure 404 {object} errors.AppError
// @Router /public/meetings/{slug} [get]
func (c *MeetingController) GetBySlug(ctx echo.Context) error {
	result, appErr := c.MeetingService.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Meeting retrieved")
}

// Update handles PATCH /meetings/:id
// @Summary Update a meeting
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.UpdateMeetingRequest true "Fields to update"
// @Success 200 {object} dto.MeetingDTO
// @Router /private/meetings/{id} [patch]
func (c *MeetingController) Update(ctx echo.Context) error {
	hostID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	meetingID, err := meetingIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	var req dto.UpdateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.MeetingService.Update(ctx.Request().Context(), hostID, meetingID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Meeting updated")
}

// Delete handles DELETE /meetings/:id
// @Summary Delete a meeting
// @Tags Meeting
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/meetings/{id} [delete]
func (c *MeetingController) Delete(ctx echo.Context) error {
	hostID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	meetingID, err := meetingIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	if appErr := c.MeetingService.Delete(ctx.Request().Context(), hostID, meetingID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Meeting deleted")
}

// AddParticipant handles POST /meetings/:id/participants
// @Summary Add a participant
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Param id path string true "Meeting ID"
// @Param request body dto.AddParticipantRequest true "Participant"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/meetings/{id}/participants [post]
func (c *MeetingController) AddParticipant(ctx echo.Context) error {
	hostID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	meetingID, err := meetingIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	var req dto.AddParticipantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.MeetingService.AddParticipant(ctx.Request().Context(), hostID, meetingID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Participant added")
}

// RemoveParticipant handles DELETE /meetings/:id/participants/:userId
// @Summary Remove a participant
// @Tags Meeting
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Param userId path string true "User ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/meetings/{id}/participants/{userId} [delete]
func (c *MeetingController) RemoveParticipant(ctx echo.Context) error {
	hostID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	meetingID, err := meetingIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}
	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user id")
	}

	if appErr := c.MeetingService.RemoveParticipant(ctx.Request().Context(), hostID, meetingID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Participant removed")
}

// FindSlots handles POST /meetings/:id/find-slots
// @Summary Suggest times for a meeting
// @Description Recompute ranked suggestions for the meeting's participants
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} scheduleDto.SuggestResponse
// @Router /private/meetings/{id}/find-slots [post]
func (c *MeetingController) FindSlots(ctx echo.Context) error {
	hostID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	meetingID, err := meetingIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting id")
	}

	result, appErr := c.MeetingService.FindSlots(ctx.Request().Context(), hostID, meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Suggestions computed")
}
