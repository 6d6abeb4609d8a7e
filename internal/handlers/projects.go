package handlers

import (
	"net/http"

	"baudok-backend/internal/models"
	"baudok-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ProjectsHandler struct {
	coordinator *services.Coordinator
}

func NewProjectsHandler(coordinator *services.Coordinator) *ProjectsHandler {
	return &ProjectsHandler{coordinator: coordinator}
}

// CreateProject godoc
// @Summary     Create a project
// @Description Creates a construction project with an image count of zero
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       project body models.CreateProjectRequest true "Project fields"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	project, err := h.coordinator.CreateProject(req.Name, req.Description)
	if err != nil {
		writeError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects godoc
// @Summary     List projects
// @Description Returns projects newest first, optionally filtered by a
// @Description case-insensitive name substring
// @Tags        projects
// @Produce     json
// @Param       search query string false "Name substring filter"
// @Success     200 {array} models.Project
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	projects, err := h.coordinator.ListProjects(c.Query("search"))
	if err != nil {
		writeError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary     Get a project
// @Description Returns the project with its images and floorplans embedded;
// @Description each floorplan carries a freshly computed marker_count
// @Tags        projects
// @Produce     json
// @Param       project_id path string true "Project ID"
// @Success     200 {object} models.ProjectDetail
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	detail, err := h.coordinator.GetProjectDetail(c.Param("project_id"))
	if err != nil {
		writeError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateProject godoc
// @Summary     Update a project
// @Description Merges the provided fields and refreshes updated_at
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       project_id path string true "Project ID"
// @Param       project body models.UpdateProjectRequest true "Fields to update"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id} [put]
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	project, err := h.coordinator.UpdateProject(c.Param("project_id"), req.Name, req.Description)
	if err != nil {
		writeError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary     Delete a project
// @Description Deletes the project and cascades to all of its images and
// @Description floorplans
// @Tags        projects
// @Produce     json
// @Param       project_id path string true "Project ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	if err := h.coordinator.DeleteProject(c.Param("project_id")); err != nil {
		writeError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "project deleted"})
}
