package routes

import (
	"dive_trails/internal/controllers"
	"dive_trails/internal/middleware"

	"github.com/gin-gonic/gin"
)

func OperatorRoutes(r *gin.Engine) {
	operators := r.Group("/operators")
	{
		operators.GET("", controllers.ListOperators)
		operators.GET("/:id", controllers.GetOperator)
	}

	manage := r.Group("/operators")
	manage.Use(middleware.RequireAuthWithRole("operator"))
	{
		manage.PUT("/me", controllers.UpdateOperator)
	}
}
