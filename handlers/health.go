package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sylt/utils"
)

// HealthHandler returns the latest health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
}
