package calendar

import (
	"context"

	"meetmatch/core/cache"
	"meetmatch/core/database"
	"meetmatch/core/middleware"
	"meetmatch/modules/calendar/controller"
	"meetmatch/modules/calendar/repository"
	"meetmatch/modules/calendar/router"
	"meetmatch/modules/calendar/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and registers routes.
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	svc := GetService(db, c)
	ctrl := controller.NewCalendarController(svc)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)
}

// GetService creates a CalendarService for use by other modules.
func GetService(db database.Database, c cache.Cache) service.CalendarServiceInterface {
	repo := repository.NewCalendarRepository(db)
	return service.NewCalendarService(repo, c)
}

// HandleRefreshTokens is the background task handler that refreshes soon
// to expire Google tokens.
func HandleRefreshTokens(svc service.CalendarServiceInterface) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		return svc.RefreshExpiringTokens(ctx)
	}
}
