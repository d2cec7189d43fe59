package meeting

import (
	"meetmatch/core/cache"
	"meetmatch/core/database"
	"meetmatch/core/middleware"
	"meetmatch/modules/meeting/controller"
	"meetmatch/modules/meeting/repository"
	"meetmatch/modules/meeting/router"
	"meetmatch/modules/meeting/service"
	schedule "meetmatch/modules/schedule"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes.
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo, schedule.GetService(db, c))
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
}
