package routes

import (
	"dive_trails/internal/controllers"
	"dive_trails/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TripRoutes(r *gin.Engine) {
	trips := r.Group("/trips")
	{
		trips.GET("", controllers.ListTrips)
	}

	manage := r.Group("/trips")
	manage.Use(middleware.RequireAuthWithRole("operator"))
	{
		manage.POST("", controllers.CreateTrip)
		manage.DELETE("/:id", controllers.DeleteTrip)
	}
}
