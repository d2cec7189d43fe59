package schedule

import (
	"meetmatch/core/cache"
	"meetmatch/core/database"
	"meetmatch/core/middleware"
	calendarRepository "meetmatch/modules/calendar/repository"
	calendarService "meetmatch/modules/calendar/service"
	"meetmatch/modules/schedule/controller"
	"meetmatch/modules/schedule/router"
	"meetmatch/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the schedule module and registers routes.
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	calRepo := calendarRepository.NewCalendarRepository(db)
	calSvc := calendarService.NewCalendarService(calRepo, c)

	svc := service.NewScheduleService(calSvc)
	ctrl := controller.NewScheduleController(svc)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e, mw)
}

// GetService creates a ScheduleService for use by other modules.
func GetService(db database.Database, c cache.Cache) service.ScheduleServiceInterface {
	calRepo := calendarRepository.NewCalendarRepository(db)
	calSvc := calendarService.NewCalendarService(calRepo, c)
	return service.NewScheduleService(calSvc)
}
