package controller

import (
	"meetmatch/core/constants"
	"meetmatch/core/controller"
	"meetmatch/core/errors"
	"meetmatch/core/params"
	"meetmatch/core/utils"
	"meetmatch/modules/group/dto"
	"meetmatch/modules/group/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GroupController handles participant-group HTTP requests.
type GroupController struct {
	controller.BaseController
	GroupService service.GroupServiceInterface
}

func NewGroupController(svc service.GroupServiceInterface) *GroupController {
	return &GroupController{
		BaseController: controller.NewBaseController(),
		GroupService:   svc,
	}
}

func currentUserID(ctx echo.Context) (uuid.UUID, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// Create handles POST /groups
func (c *GroupController) Create(ctx echo.Context) error {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}

	var req dto.CreateGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.GroupService.Create(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Group created")
}

// List handles GET /groups
func (c *GroupController) List(ctx echo.Context) error {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}

	result, appErr := c.GroupService.List(ctx.Request().Context(), ownerID, params.Parse(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Groups retrieved")
}

// Get handles GET /groups/:id
func (c *GroupController) Get(ctx echo.Context) error {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group id")
	}

	result, appErr := c.GroupService.Get(ctx.Request().Context(), ownerID, groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Group retrieved")
}

// Delete handles DELETE /groups/:id
func (c *GroupController) Delete(ctx echo.Context) error {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group id")
	}

	if appErr := c.GroupService.Delete(ctx.Request().Context(), ownerID, groupID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Group deleted")
}

// AddMember handles POST /groups/:id/members
func (c *GroupController) AddMember(ctx echo.Context) error {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group id")
	}

	var req dto.AddMemberRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.GroupService.AddMember(ctx.Request().Context(), ownerID, groupID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Member added")
}

// RemoveMember handles DELETE /groups/:id/members/:userId
func (c *GroupController) RemoveMember(ctx echo.Context) error {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group id")
	}
	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user id")
	}

	if appErr := c.GroupService.RemoveMember(ctx.Request().Context(), ownerID, groupID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Member removed")
}
