package handlers

import (
	"errors"
	"net/http"

	"baudok-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// writeError maps the service error taxonomy onto HTTP statuses: NotFound to
// 404, invalid category to 400, everything else to 500.
func writeError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: what + " not found",
		})
	case errors.Is(err, models.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "invalid category",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal error",
			Message: err.Error(),
		})
	}
}
