package routes

import (
	"dive_trails/internal/controllers"
	"dive_trails/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SiteRoutes(r *gin.Engine) {
	sites := r.Group("/sites")
	{
		sites.GET("", controllers.ListSites)
		sites.GET("/:id", controllers.GetSite)
	}

	manage := r.Group("/sites")
	manage.Use(middleware.RequireAuthWithRole("operator", "admin"))
	{
		manage.POST("", controllers.CreateSite)
		manage.PUT("/:id", controllers.UpdateSite)
		manage.DELETE("/:id", controllers.DeleteSite)
	}
}
