package handlers

import (
	"io"
	"net/http"

	"baudok-backend/internal/models"
	"baudok-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type FloorplansHandler struct {
	coordinator *services.Coordinator
}

func NewFloorplansHandler(coordinator *services.Coordinator) *FloorplansHandler {
	return &FloorplansHandler{coordinator: coordinator}
}

// UploadFloorplan godoc
// @Summary     Upload a floorplan
// @Description Stores a floorplan image under a project
// @Tags        floorplans
// @Accept      multipart/form-data
// @Produce     json
// @Param       project_id path string true "Project ID"
// @Param       file formData file true "Floorplan image"
// @Param       name formData string true "Floorplan name"
// @Success     200 {object} models.Floorplan
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/floorplans [post]
func (h *FloorplansHandler) UploadFloorplan(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}

	filename, contentType, data, err := readUpload(c, "floorplan")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no file uploaded",
			Message: err.Error(),
		})
		return
	}

	fp, err := h.coordinator.CreateFloorplan(c.Param("project_id"), name, filename, contentType, data)
	if err != nil {
		writeError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, fp)
}

// ListFloorplans godoc
// @Summary     List floorplans
// @Description Returns a project's floorplans newest first, each annotated
// @Description with its current marker_count
// @Tags        floorplans
// @Produce     json
// @Param       project_id path string true "Project ID"
// @Success     200 {array} models.Floorplan
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/floorplans [get]
func (h *FloorplansHandler) ListFloorplans(c *gin.Context) {
	floorplans, err := h.coordinator.ListFloorplans(c.Param("project_id"))
	if err != nil {
		writeError(c, err, "floorplan")
		return
	}

	c.JSON(http.StatusOK, floorplans)
}

// GetFloorplanData godoc
// @Summary     Download floorplan image
// @Description Returns the floorplan's binary data with its content type
// @Tags        floorplans
// @Produce     octet-stream
// @Param       floorplan_id path string true "Floorplan ID"
// @Success     200 {file} binary
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /floorplans/{floorplan_id}/data [get]
func (h *FloorplansHandler) GetFloorplanData(c *gin.Context) {
	data, contentType, err := h.coordinator.GetFloorplanData(c.Param("floorplan_id"))
	if err != nil {
		writeError(c, err, "floorplan")
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// ListFloorplanImages godoc
// @Summary     List images pinned to a floorplan
// @Tags        floorplans
// @Produce     json
// @Param       floorplan_id path string true "Floorplan ID"
// @Success     200 {array} models.Image
// @Failure     500 {object} models.ErrorResponse
// @Router      /floorplans/{floorplan_id}/images [get]
func (h *FloorplansHandler) ListFloorplanImages(c *gin.Context) {
	images, err := h.coordinator.ListFloorplanImages(c.Param("floorplan_id"))
	if err != nil {
		writeError(c, err, "floorplan")
		return
	}

	c.JSON(http.StatusOK, images)
}

// DeleteFloorplan godoc
// @Summary     Delete a floorplan
// @Description Deletes the floorplan; every image pinned to it keeps existing
// @Description but loses its floorplan reference and coordinates
// @Tags        floorplans
// @Produce     json
// @Param       floorplan_id path string true "Floorplan ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /floorplans/{floorplan_id} [delete]
func (h *FloorplansHandler) DeleteFloorplan(c *gin.Context) {
	if err := h.coordinator.DeleteFloorplan(c.Param("floorplan_id")); err != nil {
		writeError(c, err, "floorplan")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "floorplan deleted"})
}

// readUpload pulls the uploaded file out of the multipart form, trying the
// common field names, and returns its name, content type and bytes.
func readUpload(c *gin.Context, defaultName string) (string, string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader, err = c.FormFile("image")
	}
	if err != nil {
		return "", "", nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", nil, err
	}

	filename := fileHeader.Filename
	if filename == "" {
		filename = defaultName
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return filename, contentType, data, nil
}
