package handlers

import (
	"net/http"

	"skischool/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check. It answers 503 once a
// check has run and found a dependency down.
func HealthHandler(c *gin.Context) {
	h := utils.GetHealthStatus()
	status := http.StatusOK
	if !h.CheckedAt.IsZero() && !h.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "dependencies": h})
}
