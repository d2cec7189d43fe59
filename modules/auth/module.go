package auth

import (
	"meetmatch/core/cache"
	"meetmatch/core/database"
	"meetmatch/core/middleware"
	"meetmatch/modules/auth/controller"
	"meetmatch/modules/auth/repository"
	"meetmatch/modules/auth/router"
	"meetmatch/modules/auth/service"
	calendar "meetmatch/modules/calendar"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes.
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, c, calendar.GetService(db, c))
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
