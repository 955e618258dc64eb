package routes

import (
	"dive_trails/internal/controllers"
	"dive_trails/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RouteRoutes(r *gin.Engine) {
	routes := r.Group("/routes")
	routes.Use(middleware.RequireAuth())
	{
		routes.POST("", controllers.CreateRoute)
		routes.GET("", controllers.ListRoutes)
		routes.GET("/:id", controllers.GetRoute)
		routes.PUT("/:id", controllers.UpdateRoute)
		routes.DELETE("/:id", controllers.DeleteRoute)
	}
}
