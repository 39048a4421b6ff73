package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/database"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c *gin.Context) {
	status, code := "ok", http.StatusOK
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "issue-tracker",
		"version": "1.0.0",
	})
}
