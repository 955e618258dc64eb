package routes

import (
	"dive_trails/internal/controllers"

	"github.com/gin-gonic/gin"
)

func EditorRoutes(r *gin.Engine) {
	// Auth happens inside the handler via the token query parameter;
	// browsers cannot set headers on websocket upgrades.
	r.GET("/editor/ws", controllers.EditorSocket)
}
