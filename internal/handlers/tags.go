package handlers

import (
	"net/http"

	"baudok-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// TagsHandler godoc
// @Summary     List suggested tags
// @Description Returns the advisory tag vocabulary for UI population. Tags on
// @Description images are free-form; this list is not enforced.
// @Tags        tags
// @Produce     json
// @Success     200 {object} models.TagsResponse
// @Router      /tags [get]
func TagsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.TagsResponse{Tags: models.PredefinedTags})
}
