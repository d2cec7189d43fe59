package group

import (
	"meetmatch/core/database"
	"meetmatch/core/middleware"
	"meetmatch/modules/group/controller"
	"meetmatch/modules/group/repository"
	"meetmatch/modules/group/router"
	"meetmatch/modules/group/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the group module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewGroupRepository(db)
	svc := service.NewGroupService(repo)
	ctrl := controller.NewGroupController(svc)
	rtr := router.NewGroupRouter(ctrl)

	rtr.Setup(e, mw)
}
