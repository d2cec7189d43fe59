package controller

import (
	"meetmatch/core/constants"
	"meetmatch/core/controller"
	"meetmatch/core/errors"
	"meetmatch/core/utils"
	"meetmatch/modules/auth/dto"
	"meetmatch/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// AuthController handles authentication HTTP requests.
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

// Register handles POST /auth/register
// @Summary Register with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account details"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} errors.AppError
// @Router /public/auth/register [post]
func (c *AuthController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AuthService.Register(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Account created")
}

// Login handles POST /auth/login
// @Summary Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} errors.AppError
// @Router /public/auth/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AuthService.Login(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Signed in")
}

// GoogleLogin handles GET /auth/google/login
// @Summary Start Google sign-in
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.GoogleLoginURLResponse
// @Router /public/auth/google/login [get]
func (c *AuthController) GoogleLogin(ctx echo.Context) error {
	result, appErr := c.AuthService.GoogleLoginURL(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Consent URL created")
}

// GoogleCallback handles GET /auth/google/callback
// @Summary Finish Google sign-in
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State nonce"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} errors.AppError
// @Router /public/auth/google/callback [get]
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	var req dto.GoogleCallbackRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	result, appErr := c.AuthService.GoogleCallback(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Signed in")
}

// Me handles GET /private/auth/me
// @Summary Current user profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserDTO
// @Router /private/auth/me [get]
func (c *AuthController) Me(ctx echo.Context) error {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing authentication")
	}

	result, appErr := c.AuthService.Me(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Profile retrieved")
}
