package router

import (
	"meetmatch/core/middleware"
	"meetmatch/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

// ScheduleRouter handles scheduling routes.
type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{
		ScheduleController: scheduleController,
	}
}

// Setup registers scheduling routes.
func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	scheduleRoutes := privateRoutes.Group("/schedule", mw.AuthMiddleware())
	scheduleRoutes.POST("/suggest", r.ScheduleController.Suggest)
	scheduleRoutes.POST("/free-slots", r.ScheduleController.FreeSlots)
}
