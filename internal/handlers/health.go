package handlers

import (
	"net/http"

	"baudok-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// HealthHandler godoc
// @Summary     Health check
// @Description Returns the health status of the API
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

// RootHandler godoc
// @Summary     API banner
// @Description Returns the service banner
// @Tags        health
// @Produce     json
// @Success     200 {object} models.MessageResponse
// @Router      / [get]
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "BauDok API"})
}
