// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Schedule endpoints
	CheckAvailabilityHandler gin.HandlerFunc
	SearchSlotHandler        gin.HandlerFunc
	EligibleMonitorsHandler  gin.HandlerFunc
	AssignMonitorHandler     gin.HandlerFunc
	CheckAssignmentHandler   gin.HandlerFunc
	DrillNwdHandler          gin.HandlerFunc
	RevalidateHandler        gin.HandlerFunc

	// Health
	HealthHandler gin.HandlerFunc
}
