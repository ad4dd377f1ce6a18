package routes

import (
	"time"

	"skischool/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterScheduleRoutes sets up the endpoints for the schedule engine.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	scheduleGroup := r.Group("/api/schedule")
	{
		scheduleGroup.POST("/availability", hb.CheckAvailabilityHandler)
		scheduleGroup.POST("/slots/search", hb.SearchSlotHandler)
		scheduleGroup.POST("/monitors/eligible", hb.EligibleMonitorsHandler)
		scheduleGroup.POST("/assignments", hb.AssignMonitorHandler)
		scheduleGroup.POST("/assignments/check", hb.CheckAssignmentHandler)
		scheduleGroup.POST("/nwd/:id/drill", hb.DrillNwdHandler)
		scheduleGroup.POST("/revalidate", hb.RevalidateHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterScheduleRoutes(r, hb)
}
