package router

import (
	"meetmatch/core/middleware"
	"meetmatch/modules/group/controller"

	"github.com/labstack/echo/v4"
)

// GroupRouter handles participant-group routes.
type GroupRouter struct {
	GroupController *controller.GroupController
}

func NewGroupRouter(groupController *controller.GroupController) *GroupRouter {
	return &GroupRouter{
		GroupController: groupController,
	}
}

// Setup registers group routes.
func (r *GroupRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	groupRoutes := v1.Group("/private/groups", mw.AuthMiddleware())
	groupRoutes.POST("", r.GroupController.Create)
	groupRoutes.GET("", r.GroupController.List)
	groupRoutes.GET("/:id", r.GroupController.Get)
	groupRoutes.DELETE("/:id", r.GroupController.Delete)
	groupRoutes.POST("/:id/members", r.GroupController.AddMember)
	groupRoutes.DELETE("/:id/members/:userId", r.GroupController.RemoveMember)
}
