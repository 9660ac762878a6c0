package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/ws"
)

// HealthCheck reports database reachability and websocket hub stats.
func HealthCheck(c *gin.Context) {
	dbStatus := "ok"
	sqlDB, err := config.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":    dbStatus,
		"websocket": ws.H.GetStats(),
	})
}
