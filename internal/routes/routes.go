package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Request logging and recovery run before any handler
	r.Use(ginlog.SetLogger())
	r.Use(gin.Recovery())

	AuthRoutes(r)
	SiteRoutes(r)
	OperatorRoutes(r)
	TripRoutes(r)
	RouteRoutes(r)
	EditorRoutes(r)

	return r
}
