package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"baudok-backend/internal/models"
	"baudok-backend/internal/storage"
)

// Coordinator sequences every mutation that touches more than one collection:
// cascading deletes, image_count recomputation and dangling-reference cleanup.
// Each protocol is a short ordered sequence of repository calls with no
// transaction around it; a step only runs once the previous one returned, and
// the first failure propagates with nothing rolled back. See DESIGN.md for the
// accepted weak-consistency consequences.
type Coordinator struct {
	projects   ProjectStore
	floorplans FloorplanStore
	images     ImageStore
	blobs      storage.BlobStore
}

func NewCoordinator(projects ProjectStore, floorplans FloorplanStore, images ImageStore, blobs storage.BlobStore) *Coordinator {
	return &Coordinator{
		projects:   projects,
		floorplans: floorplans,
		images:     images,
		blobs:      blobs,
	}
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// UploadImageInput carries everything an image upload needs. FloorplanID is
// the empty string when the image is not pinned; Lat/Lng must both be present
// for a location to be recorded.
type UploadImageInput struct {
	Category    string
	Description string
	Tags        []string
	Lat         *float64
	Lng         *float64
	Address     string
	FloorplanID string
	FloorplanX  *float64
	FloorplanY  *float64
	Filename    string
	ContentType string
	Data        []byte
}

// --- projects ---

func (s *Coordinator) CreateProject(name, description string) (*models.Project, error) {
	now := nowISO()
	project := &models.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		ImageCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.CreateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Coordinator) ListProjects(search string) ([]models.Project, error) {
	return s.projects.ListProjects(search)
}

// GetProjectDetail returns the project with its images and floorplans
// embedded, each floorplan annotated with a freshly counted marker_count.
func (s *Coordinator) GetProjectDetail(id string) (*models.ProjectDetail, error) {
	project, err := s.projects.GetProject(id)
	if err != nil {
		return nil, err
	}

	images, err := s.images.ListImages(id, models.ImageFilter{})
	if err != nil {
		return nil, err
	}
	floorplans, err := s.ListFloorplans(id)
	if err != nil {
		return nil, err
	}

	return &models.ProjectDetail{
		Project:    *project,
		Images:     images,
		Floorplans: floorplans,
	}, nil
}

func (s *Coordinator) UpdateProject(id string, name, description *string) (*models.Project, error) {
	if _, err := s.projects.GetProject(id); err != nil {
		return nil, err
	}
	if err := s.projects.UpdateProject(id, name, description, nowISO()); err != nil {
		return nil, err
	}
	return s.projects.GetProject(id)
}

// DeleteProject cascades: all owned images, then all owned floorplans, then
// the project row. Blob removal is best-effort and never blocks the cascade.
func (s *Coordinator) DeleteProject(id string) error {
	if _, err := s.projects.GetProject(id); err != nil {
		return err
	}

	images, err := s.images.ListImages(id, models.ImageFilter{})
	if err != nil {
		return err
	}
	floorplans, err := s.floorplans.ListFloorplans(id)
	if err != nil {
		return err
	}
	for _, img := range images {
		_ = s.blobs.Delete(img.ID)
	}
	for _, fp := range floorplans {
		_ = s.blobs.Delete(fp.ID)
	}

	if err := s.images.DeleteImagesByProject(id); err != nil {
		return err
	}
	if err := s.floorplans.DeleteFloorplansByProject(id); err != nil {
		return err
	}
	return s.projects.DeleteProject(id)
}

// --- floorplans ---

func (s *Coordinator) CreateFloorplan(projectID, name, filename, contentType string, data []byte) (*models.Floorplan, error) {
	if _, err := s.projects.GetProject(projectID); err != nil {
		return nil, err
	}

	fp := &models.Floorplan{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Name:        name,
		Filename:    filename,
		ContentType: contentType,
		CreatedAt:   nowISO(),
		MarkerCount: 0,
	}
	if err := s.blobs.Put(fp.ID, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to store floorplan blob: %w", err)
	}
	if err := s.floorplans.CreateFloorplan(fp); err != nil {
		return nil, err
	}
	return fp, nil
}

func (s *Coordinator) ListFloorplans(projectID string) ([]models.Floorplan, error) {
	floorplans, err := s.floorplans.ListFloorplans(projectID)
	if err != nil {
		return nil, err
	}
	for i := range floorplans {
		count, err := s.images.CountImagesByFloorplan(floorplans[i].ID)
		if err != nil {
			return nil, err
		}
		floorplans[i].MarkerCount = count
	}
	return floorplans, nil
}

// GetFloorplanData returns the floorplan's stored bytes and content type.
func (s *Coordinator) GetFloorplanData(id string) ([]byte, string, error) {
	fp, err := s.floorplans.GetFloorplan(id)
	if err != nil {
		return nil, "", err
	}
	data, err := s.blobs.Get(id)
	if err != nil {
		return nil, "", err
	}
	return data, fp.ContentType, nil
}

func (s *Coordinator) ListFloorplanImages(floorplanID string) ([]models.Image, error) {
	return s.images.ListImagesByFloorplan(floorplanID)
}

// DeleteFloorplan clears the floorplan pin from every image referencing it,
// then removes the floorplan row itself. Pinned images survive unpinned.
func (s *Coordinator) DeleteFloorplan(id string) error {
	if _, err := s.floorplans.GetFloorplan(id); err != nil {
		return err
	}
	if err := s.images.ClearFloorplanRefs(id); err != nil {
		return err
	}
	if err := s.floorplans.DeleteFloorplan(id); err != nil {
		return err
	}
	_ = s.blobs.Delete(id)
	return nil
}

// --- images ---

// UploadImage validates the project, the category and any floorplan reference
// before writing, then creates the image and recomputes the owning project's
// image_count.
func (s *Coordinator) UploadImage(projectID string, in UploadImageInput) (*models.Image, error) {
	if _, err := s.projects.GetProject(projectID); err != nil {
		return nil, err
	}
	if !models.ValidCategory(in.Category) {
		return nil, models.ErrInvalidCategory
	}
	if in.FloorplanID != "" {
		if _, err := s.floorplans.GetFloorplan(in.FloorplanID); err != nil {
			return nil, err
		}
	}

	var location *models.Location
	if in.Lat != nil && in.Lng != nil {
		location = &models.Location{Lat: *in.Lat, Lng: *in.Lng, Address: in.Address}
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	img := &models.Image{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Category:    in.Category,
		Description: in.Description,
		Filename:    in.Filename,
		ContentType: in.ContentType,
		Tags:        tags,
		Location:    location,
		FloorplanX:  in.FloorplanX,
		FloorplanY:  in.FloorplanY,
		CreatedAt:   nowISO(),
	}
	if in.FloorplanID != "" {
		fpID := in.FloorplanID
		img.FloorplanID = &fpID
	}

	if err := s.blobs.Put(img.ID, in.Data, in.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store image blob: %w", err)
	}
	if err := s.images.CreateImage(img); err != nil {
		return nil, err
	}
	if err := s.recomputeImageCount(projectID); err != nil {
		return nil, err
	}
	return img, nil
}

// ListImages applies the filter. A date-only DateTo bound is extended to the
// end of that day so the bound is inclusive of the whole date.
func (s *Coordinator) ListImages(projectID string, filter models.ImageFilter) ([]models.Image, error) {
	if filter.DateTo != "" && len(filter.DateTo) == len("2006-01-02") {
		filter.DateTo += "T23:59:59"
	}
	return s.images.ListImages(projectID, filter)
}

func (s *Coordinator) GetImageData(id string) ([]byte, string, error) {
	img, err := s.images.GetImage(id)
	if err != nil {
		return nil, "", err
	}
	data, err := s.blobs.Get(id)
	if err != nil {
		return nil, "", err
	}
	return data, img.ContentType, nil
}

// UpdateImage applies a partial update after validating that any newly set
// linked image or floorplan reference points at an existing row. The empty
// string clears a reference; nil leaves it untouched.
func (s *Coordinator) UpdateImage(id string, update *models.ImageUpdate) error {
	if _, err := s.images.GetImage(id); err != nil {
		return err
	}
	if update.LinkedImageID != nil && *update.LinkedImageID != "" {
		if _, err := s.images.GetImage(*update.LinkedImageID); err != nil {
			return err
		}
	}
	if update.FloorplanID != nil && *update.FloorplanID != "" {
		if _, err := s.floorplans.GetFloorplan(*update.FloorplanID); err != nil {
			return err
		}
	}
	return s.images.UpdateImage(id, update)
}

// DeleteImage clears the back-references of any image linked to this one,
// removes the row, then recomputes the owning project's image_count.
func (s *Coordinator) DeleteImage(id string) error {
	img, err := s.images.GetImage(id)
	if err != nil {
		return err
	}
	if err := s.images.ClearLinkedImageRefs(id); err != nil {
		return err
	}
	if err := s.images.DeleteImage(id); err != nil {
		return err
	}
	_ = s.blobs.Delete(id)
	return s.recomputeImageCount(img.ProjectID)
}

// recomputeImageCount persists a fresh COUNT over the live rows. The stored
// value is always a snapshot, never an increment.
func (s *Coordinator) recomputeImageCount(projectID string) error {
	count, err := s.images.CountImagesByProject(projectID)
	if err != nil {
		return err
	}
	return s.projects.SetProjectImageCount(projectID, count, nowISO())
}
