package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"baudok-backend/internal/models"
	"baudok-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ImagesHandler struct {
	coordinator *services.Coordinator
}

func NewImagesHandler(coordinator *services.Coordinator) *ImagesHandler {
	return &ImagesHandler{coordinator: coordinator}
}

// UploadImage godoc
// @Summary     Upload a photograph
// @Description Stores a photograph under a project. The category must be one
// @Description of phase-1, phase-2 or phase-3; a location is recorded only
// @Description when both lat and lng are present; a floorplan pin requires an
// @Description existing floorplan.
// @Tags        images
// @Accept      multipart/form-data
// @Produce     json
// @Param       project_id path string true "Project ID"
// @Param       file formData file true "Photograph"
// @Param       category formData string true "Work phase (phase-1, phase-2, phase-3)"
// @Param       description formData string false "Description"
// @Param       tags formData string false "Comma-separated tags"
// @Param       lat formData number false "Latitude"
// @Param       lng formData number false "Longitude"
// @Param       address formData string false "Address"
// @Param       floorplan_id formData string false "Floorplan to pin to"
// @Param       floorplan_x formData number false "Pin X (0-100)"
// @Param       floorplan_y formData number false "Pin Y (0-100)"
// @Success     200 {object} models.Image
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/images [post]
func (h *ImagesHandler) UploadImage(c *gin.Context) {
	filename, contentType, data, err := readUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no file uploaded",
			Message: err.Error(),
		})
		return
	}

	in := services.UploadImageInput{
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		Tags:        splitTags(c.PostForm("tags")),
		Address:     c.PostForm("address"),
		FloorplanID: c.PostForm("floorplan_id"),
		Lat:         formFloat(c, "lat"),
		Lng:         formFloat(c, "lng"),
		FloorplanX:  formFloat(c, "floorplan_x"),
		FloorplanY:  formFloat(c, "floorplan_y"),
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}

	img, err := h.coordinator.UploadImage(c.Param("project_id"), in)
	if err != nil {
		writeError(c, err, "project or floorplan")
		return
	}

	c.JSON(http.StatusOK, img)
}

// ListImages godoc
// @Summary     List a project's images
// @Description Returns images newest first. Filters: exact category match,
// @Description tag membership, and inclusive created_at date bounds
// @Description (date_to covers the whole day).
// @Tags        images
// @Produce     json
// @Param       project_id path string true "Project ID"
// @Param       category query string false "Work phase filter"
// @Param       tag query string false "Tag filter"
// @Param       date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success     200 {array} models.Image
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/images [get]
func (h *ImagesHandler) ListImages(c *gin.Context) {
	filter := models.ImageFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	images, err := h.coordinator.ListImages(c.Param("project_id"), filter)
	if err != nil {
		writeError(c, err, "image")
		return
	}

	c.JSON(http.StatusOK, images)
}

// GetImageData godoc
// @Summary     Download image data
// @Description Returns the photograph's binary data with its content type
// @Tags        images
// @Produce     octet-stream
// @Param       image_id path string true "Image ID"
// @Success     200 {file} binary
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /images/{image_id}/data [get]
func (h *ImagesHandler) GetImageData(c *gin.Context) {
	data, contentType, err := h.coordinator.GetImageData(c.Param("image_id"))
	if err != nil {
		writeError(c, err, "image")
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// UpdateImage godoc
// @Summary     Update an image
// @Description Applies the provided fields only. An empty string on
// @Description linked_image_id or floorplan_id clears the reference; a
// @Description non-empty value must name an existing row.
// @Tags        images
// @Accept      json
// @Produce     json
// @Param       image_id path string true "Image ID"
// @Param       image body models.ImageUpdate true "Fields to update"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /images/{image_id} [put]
func (h *ImagesHandler) UpdateImage(c *gin.Context) {
	var update models.ImageUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.coordinator.UpdateImage(c.Param("image_id"), &update); err != nil {
		writeError(c, err, "image or reference target")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "image updated"})
}

// DeleteImage godoc
// @Summary     Delete an image
// @Description Deletes the photograph; any image linked to it as a
// @Description before/after counterpart loses that link
// @Tags        images
// @Produce     json
// @Param       image_id path string true "Image ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /images/{image_id} [delete]
func (h *ImagesHandler) DeleteImage(c *gin.Context) {
	if err := h.coordinator.DeleteImage(c.Param("image_id")); err != nil {
		writeError(c, err, "image")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "image deleted"})
}

// splitTags parses the comma-separated tags form field, trimming whitespace
// and dropping empties.
func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func formFloat(c *gin.Context, field string) *float64 {
	raw := c.PostForm(field)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
