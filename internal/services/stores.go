package services

import "baudok-backend/internal/models"

// The coordinator consumes the three repositories through these interfaces.
// database.Client satisfies all of them; tests substitute in-memory fakes.
// Get* methods return models.ErrNotFound when the row is absent.

type ProjectStore interface {
	CreateProject(project *models.Project) error
	ListProjects(search string) ([]models.Project, error)
	GetProject(id string) (*models.Project, error)
	UpdateProject(id string, name, description *string, updatedAt string) error
	DeleteProject(id string) error
	SetProjectImageCount(id string, count int, updatedAt string) error
}

type FloorplanStore interface {
	CreateFloorplan(fp *models.Floorplan) error
	ListFloorplans(projectID string) ([]models.Floorplan, error)
	GetFloorplan(id string) (*models.Floorplan, error)
	DeleteFloorplan(id string) error
	DeleteFloorplansByProject(projectID string) error
}

type ImageStore interface {
	CreateImage(img *models.Image) error
	ListImages(projectID string, filter models.ImageFilter) ([]models.Image, error)
	ListImagesByFloorplan(floorplanID string) ([]models.Image, error)
	GetImage(id string) (*models.Image, error)
	UpdateImage(id string, update *models.ImageUpdate) error
	DeleteImage(id string) error
	DeleteImagesByProject(projectID string) error
	CountImagesByProject(projectID string) (int, error)
	CountImagesByFloorplan(floorplanID string) (int, error)
	ClearLinkedImageRefs(imageID string) error
	ClearFloorplanRefs(floorplanID string) error
}
