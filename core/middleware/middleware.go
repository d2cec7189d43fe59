package middleware

import (
	"strings"

	"meetmatch/core/constants"
	"meetmatch/core/controller"
	"meetmatch/core/errors"
	"meetmatch/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles route middlewares that need shared construction.
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the Bearer token and stores its claims in the
// request context under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Authorization header missing")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Authorization header must be 'Bearer {token}'")
			}

			claims, err := utils.ValidateAndParseToken(parts[1])
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
