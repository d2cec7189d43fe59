package router

import (
	"meetmatch/core/middleware"
	"meetmatch/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles authentication routes.
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers authentication routes.
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public/auth")
	publicRoutes.POST("/register", r.AuthController.Register)
	publicRoutes.POST("/login", r.AuthController.Login)
	publicRoutes.GET("/google/login", r.AuthController.GoogleLogin)
	publicRoutes.GET("/google/callback", r.AuthController.GoogleCallback)

	privateRoutes := v1.Group("/private/auth", mw.AuthMiddleware())
	privateRoutes.GET("/me", r.AuthController.Me)
}
