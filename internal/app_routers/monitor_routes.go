package approuters

import (
	"github.com/gin-gonic/gin"

	"chatline/internal/configuration"
)

// MonitorRouters sets up monitoring API routes.
func MonitorRouters(router *gin.Engine, container *configuration.Container) {
	monitorGroup := router.Group("/api/monitor")
	{
		monitorGroup.GET("/stats", container.MonitorHandler.GetHubStats)
	}
}
