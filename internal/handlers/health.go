package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck answers 200 with an empty body as long as the process serves requests.
func HealthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}
