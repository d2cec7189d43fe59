package router

import (
	"meetmatch/core/middleware"
	"meetmatch/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

// MeetingRouter handles meeting routes.
type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{
		MeetingController: meetingController,
	}
}

// Setup registers meeting routes.
func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public")
	publicRoutes.GET("/meetings/:slug", r.MeetingController.GetBySlug)

	meetingRoutes := v1.Group("/private/meetings", mw.AuthMiddleware())
	meetingRoutes.POST("", r.MeetingController.Create)
	meetingRoutes.GET("", r.MeetingController.List)
	meetingRoutes.GET("/:id", r.MeetingController.Get)
	meetingRoutes.PATCH("/:id", r.MeetingController.Update)
	meetingRoutes.DELETE("/:id", r.MeetingController.Delete)
	meetingRoutes.POST("/:id/participants", r.MeetingController.AddParticipant)
	meetingRoutes.DELETE("/:id/participants/:userId", r.MeetingController.RemoveParticipant)
	meetingRoutes.POST("/:id/find-slots", r.MeetingController.FindSlots)
}
