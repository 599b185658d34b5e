package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/feichai0017/floorplan-processor/api/handlers"
	"github.com/feichai0017/floorplan-processor/api/middleware"
)

// SetupRoutes registers the floor-plan API.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")

	floors := v1.Group("/floors")
	{
		floors.GET("/:floorId", h.Floorplan.GetFloor)
		floors.GET("/:floorId/scene", h.Floorplan.GetFloorScene)
		floors.POST("/prewarm", h.Floorplan.Prewarm)
		floors.GET("/status/:taskId", h.Floorplan.GetStatus)
		floors.DELETE("/cache", h.Floorplan.ClearCache)
	}
}
