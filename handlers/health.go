package handlers

import (
	"net/http"

	"roombook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the latest dependency snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"dependencies": utils.GetHealthStatus(),
	})
}
