package services_test

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baudok-backend/internal/models"
	"baudok-backend/internal/services"
	"baudok-backend/internal/storage"
)

// fakeStore is an in-memory stand-in for database.Client implementing all
// three store interfaces with the same semantics the SQL repositories have.
type fakeStore struct {
	projects   []models.Project
	floorplans []models.Floorplan
	images     []models.Image
}

func (f *fakeStore) CreateProject(p *models.Project) error {
	f.projects = append(f.projects, *p)
	return nil
}

func (f *fakeStore) ListProjects(search string) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range f.projects {
		if search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (f *fakeStore) GetProject(id string) (*models.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) UpdateProject(id string, name, description *string, updatedAt string) error {
	for i := range f.projects {
		if f.projects[i].ID == id {
			if name != nil {
				f.projects[i].Name = *name
			}
			if description != nil {
				f.projects[i].Description = *description
			}
			f.projects[i].UpdatedAt = updatedAt
		}
	}
	return nil
}

func (f *fakeStore) DeleteProject(id string) error {
	out := f.projects[:0]
	for _, p := range f.projects {
		if p.ID != id {
			out = append(out, p)
		}
	}
	f.projects = out
	return nil
}

func (f *fakeStore) SetProjectImageCount(id string, count int, updatedAt string) error {
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].ImageCount = count
			f.projects[i].UpdatedAt = updatedAt
		}
	}
	return nil
}

func (f *fakeStore) CreateFloorplan(fp *models.Floorplan) error {
	f.floorplans = append(f.floorplans, *fp)
	return nil
}

func (f *fakeStore) ListFloorplans(projectID string) ([]models.Floorplan, error) {
	out := []models.Floorplan{}
	for _, fp := range f.floorplans {
		if fp.ProjectID == projectID {
			out = append(out, fp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (f *fakeStore) GetFloorplan(id string) (*models.Floorplan, error) {
	for i := range f.floorplans {
		if f.floorplans[i].ID == id {
			fp := f.floorplans[i]
			return &fp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) DeleteFloorplan(id string) error {
	out := f.floorplans[:0]
	for _, fp := range f.floorplans {
		if fp.ID != id {
			out = append(out, fp)
		}
	}
	f.floorplans = out
	return nil
}

func (f *fakeStore) DeleteFloorplansByProject(projectID string) error {
	out := f.floorplans[:0]
	for _, fp := range f.floorplans {
		if fp.ProjectID != projectID {
			out = append(out, fp)
		}
	}
	f.floorplans = out
	return nil
}

func (f *fakeStore) CreateImage(img *models.Image) error {
	f.images = append(f.images, *img)
	return nil
}

func matchesFilter(img models.Image, filter models.ImageFilter) bool {
	if filter.Category != "" && img.Category != filter.Category {
		return false
	}
	if filter.Tag != "" {
		found := false
		for _, t := range img.Tags {
			if t == filter.Tag {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.DateFrom != "" && img.CreatedAt < filter.DateFrom {
		return false
	}
	if filter.DateTo != "" && img.CreatedAt > filter.DateTo {
		return false
	}
	return true
}

func (f *fakeStore) ListImages(projectID string, filter models.ImageFilter) ([]models.Image, error) {
	out := []models.Image{}
	for _, img := range f.images {
		if img.ProjectID == projectID && matchesFilter(img, filter) {
			out = append(out, img)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (f *fakeStore) ListImagesByFloorplan(floorplanID string) ([]models.Image, error) {
	out := []models.Image{}
	for _, img := range f.images {
		if img.FloorplanID != nil && *img.FloorplanID == floorplanID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeStore) GetImage(id string) (*models.Image, error) {
	for i := range f.images {
		if f.images[i].ID == id {
			img := f.images[i]
			return &img, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) UpdateImage(id string, update *models.ImageUpdate) error {
	for i := range f.images {
		if f.images[i].ID != id {
			continue
		}
		img := &f.images[i]
		if update.Description != nil {
			img.Description = *update.Description
		}
		if update.Tags != nil {
			img.Tags = update.Tags
		}
		if update.Location != nil {
			img.Location = update.Location
		}
		if update.LinkedImageID != nil {
			img.LinkedImageID = clearable(*update.LinkedImageID)
		}
		if update.FloorplanID != nil {
			img.FloorplanID = clearable(*update.FloorplanID)
		}
		if update.FloorplanX != nil {
			img.FloorplanX = update.FloorplanX
		}
		if update.FloorplanY != nil {
			img.FloorplanY = update.FloorplanY
		}
	}
	return nil
}

func clearable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (f *fakeStore) DeleteImage(id string) error {
	out := f.images[:0]
	for _, img := range f.images {
		if img.ID != id {
			out = append(out, img)
		}
	}
	f.images = out
	return nil
}

func (f *fakeStore) DeleteImagesByProject(projectID string) error {
	out := f.images[:0]
	for _, img := range f.images {
		if img.ProjectID != projectID {
			out = append(out, img)
		}
	}
	f.images = out
	return nil
}

func (f *fakeStore) CountImagesByProject(projectID string) (int, error) {
	count := 0
	for _, img := range f.images {
		if img.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountImagesByFloorplan(floorplanID string) (int, error) {
	count := 0
	for _, img := range f.images {
		if img.FloorplanID != nil && *img.FloorplanID == floorplanID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) ClearLinkedImageRefs(imageID string) error {
	for i := range f.images {
		if f.images[i].LinkedImageID != nil && *f.images[i].LinkedImageID == imageID {
			f.images[i].LinkedImageID = nil
		}
	}
	return nil
}

func (f *fakeStore) ClearFloorplanRefs(floorplanID string) error {
	for i := range f.images {
		if f.images[i].FloorplanID != nil && *f.images[i].FloorplanID == floorplanID {
			f.images[i].FloorplanID = nil
			f.images[i].FloorplanX = nil
			f.images[i].FloorplanY = nil
		}
	}
	return nil
}

func newCoordinator() (*services.Coordinator, *fakeStore, *storage.MemoryStore) {
	store := &fakeStore{}
	blobs := storage.NewMemoryStore()
	return services.NewCoordinator(store, store, store, blobs), store, blobs
}

func uploadInput(category string) services.UploadImageInput {
	return services.UploadImageInput{
		Category:    category,
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg-bytes"),
	}
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func TestUploadImageRecomputesImageCount(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)
	assert.Equal(t, 0, project.ImageCount)

	first, err := coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)
	_, err = coord.UploadImage(project.ID, uploadInput(models.CategoryFitOut))
	require.NoError(t, err)

	detail, err := coord.GetProjectDetail(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.ImageCount)
	assert.Len(t, detail.Images, 2)

	require.NoError(t, coord.DeleteImage(first.ID))

	detail, err = coord.GetProjectDetail(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.ImageCount)
}

func TestUploadImageInvalidCategory(t *testing.T) {
	coord, store, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)

	_, err = coord.UploadImage(project.ID, uploadInput("demolition"))
	assert.ErrorIs(t, err, models.ErrInvalidCategory)

	// No row was created and the counter never moved.
	assert.Empty(t, store.images)
	detail, err := coord.GetProjectDetail(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, detail.ImageCount)
}

func TestUploadImageProjectNotFound(t *testing.T) {
	coord, _, _ := newCoordinator()

	_, err := coord.UploadImage("missing", uploadInput(models.CategoryRoughIn))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUploadImageFloorplanNotFound(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)

	in := uploadInput(models.CategoryRoughIn)
	in.FloorplanID = "missing"
	_, err = coord.UploadImage(project.ID, in)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteProjectCascades(t *testing.T) {
	coord, _, blobs := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)

	img, err := coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)
	fp, err := coord.CreateFloorplan(project.ID, "Ground", "plan.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	require.NoError(t, coord.DeleteProject(project.ID))

	_, err = coord.GetProjectDetail(project.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, _, err = coord.GetImageData(img.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, _, err = coord.GetFloorplanData(fp.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Blobs were removed as well.
	_, err = blobs.Get(img.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = blobs.Get(fp.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteProjectTwiceReturnsNotFound(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)

	assert.NoError(t, coord.DeleteProject(project.ID))
	assert.ErrorIs(t, coord.DeleteProject(project.ID), models.ErrNotFound)
	assert.ErrorIs(t, coord.DeleteProject(project.ID), models.ErrNotFound)
}

func TestFloorplanMarkerLifecycle(t *testing.T) {
	coord, store, _ := newCoordinator()

	project, err := coord.CreateProject("Site X", "")
	require.NoError(t, err)
	fp, err := coord.CreateFloorplan(project.ID, "Ground", "plan.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, 0, fp.MarkerCount)

	img, err := coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)

	err = coord.UpdateImage(img.ID, &models.ImageUpdate{
		FloorplanID: strPtr(fp.ID),
		FloorplanX:  floatPtr(25),
		FloorplanY:  floatPtr(75),
	})
	require.NoError(t, err)

	floorplans, err := coord.ListFloorplans(project.ID)
	require.NoError(t, err)
	require.Len(t, floorplans, 1)
	assert.Equal(t, 1, floorplans[0].MarkerCount)

	pinned, err := coord.ListFloorplanImages(fp.ID)
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	assert.Equal(t, img.ID, pinned[0].ID)
	assert.Equal(t, 25.0, *pinned[0].FloorplanX)
	assert.Equal(t, 75.0, *pinned[0].FloorplanY)

	require.NoError(t, coord.DeleteFloorplan(fp.ID))

	// The image survives but is fully unpinned.
	updated, err := store.GetImage(img.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.FloorplanID)
	assert.Nil(t, updated.FloorplanX)
	assert.Nil(t, updated.FloorplanY)

	_, _, err = coord.GetFloorplanData(fp.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteImageClearsLinkedReferences(t *testing.T) {
	coord, store, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)
	before, err := coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)
	after, err := coord.UploadImage(project.ID, uploadInput(models.CategoryHandover))
	require.NoError(t, err)

	require.NoError(t, coord.UpdateImage(before.ID, &models.ImageUpdate{
		LinkedImageID: strPtr(after.ID),
	}))

	// The link is one-directional: the target does not point back.
	target, err := store.GetImage(after.ID)
	require.NoError(t, err)
	assert.Nil(t, target.LinkedImageID)

	require.NoError(t, coord.DeleteImage(after.ID))

	src, err := store.GetImage(before.ID)
	require.NoError(t, err)
	assert.Nil(t, src.LinkedImageID)
}

func TestUpdateImageEmptyStringClearsReference(t *testing.T) {
	coord, store, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)
	a, err := coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)
	b, err := coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)

	require.NoError(t, coord.UpdateImage(a.ID, &models.ImageUpdate{
		LinkedImageID: strPtr(b.ID),
	}))

	// An unrelated update leaves the reference untouched.
	require.NoError(t, coord.UpdateImage(a.ID, &models.ImageUpdate{
		Description: strPtr("junction box"),
	}))
	img, err := store.GetImage(a.ID)
	require.NoError(t, err)
	require.NotNil(t, img.LinkedImageID)
	assert.Equal(t, b.ID, *img.LinkedImageID)
	assert.Equal(t, "junction box", img.Description)

	// An explicit empty string clears it.
	require.NoError(t, coord.UpdateImage(a.ID, &models.ImageUpdate{
		LinkedImageID: strPtr(""),
	}))
	img, err = store.GetImage(a.ID)
	require.NoError(t, err)
	assert.Nil(t, img.LinkedImageID)
}

func TestUpdateImageValidatesReferenceTargets(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)
	img, err := coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)

	err = coord.UpdateImage(img.ID, &models.ImageUpdate{LinkedImageID: strPtr("missing")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = coord.UpdateImage(img.ID, &models.ImageUpdate{FloorplanID: strPtr("missing")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = coord.UpdateImage("missing", &models.ImageUpdate{Description: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTagFilterRoundtrip(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)

	in := uploadInput(models.CategoryRoughIn)
	in.Tags = []string{"wiring", "fault"}
	tagged, err := coord.UploadImage(project.ID, in)
	require.NoError(t, err)
	_, err = coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)

	images, err := coord.ListImages(project.ID, models.ImageFilter{Tag: "wiring"})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, tagged.ID, images[0].ID)

	images, err = coord.ListImages(project.ID, models.ImageFilter{Tag: "painting"})
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestCategoryFilter(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)
	_, err = coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)
	handover, err := coord.UploadImage(project.ID, uploadInput(models.CategoryHandover))
	require.NoError(t, err)

	images, err := coord.ListImages(project.ID, models.ImageFilter{Category: models.CategoryHandover})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, handover.ID, images[0].ID)
}

func TestDateToFilterCoversWholeDay(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)
	_, err = coord.UploadImage(project.ID, uploadInput(models.CategoryRoughIn))
	require.NoError(t, err)

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	images, err := coord.ListImages(project.ID, models.ImageFilter{DateTo: today})
	require.NoError(t, err)
	assert.Len(t, images, 1)

	images, err = coord.ListImages(project.ID, models.ImageFilter{DateTo: yesterday})
	require.NoError(t, err)
	assert.Empty(t, images)

	images, err = coord.ListImages(project.ID, models.ImageFilter{DateFrom: today})
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestLocationRequiresBothCoordinates(t *testing.T) {
	coord, store, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)

	in := uploadInput(models.CategoryRoughIn)
	in.Lat = floatPtr(47.4979)
	partial, err := coord.UploadImage(project.ID, in)
	require.NoError(t, err)

	img, err := store.GetImage(partial.ID)
	require.NoError(t, err)
	assert.Nil(t, img.Location)

	in = uploadInput(models.CategoryRoughIn)
	in.Lat = floatPtr(47.4979)
	in.Lng = floatPtr(19.0402)
	in.Address = "Budapest"
	located, err := coord.UploadImage(project.ID, in)
	require.NoError(t, err)

	img, err = store.GetImage(located.ID)
	require.NoError(t, err)
	require.NotNil(t, img.Location)
	assert.Equal(t, 47.4979, img.Location.Lat)
	assert.Equal(t, "Budapest", img.Location.Address)
}

func TestGetImageDataReturnsBlobAndContentType(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "")
	require.NoError(t, err)

	in := uploadInput(models.CategoryRoughIn)
	in.ContentType = "image/png"
	in.Data = []byte("png-bytes")
	img, err := coord.UploadImage(project.ID, in)
	require.NoError(t, err)

	data, contentType, err := coord.GetImageData(img.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)

	_, _, err = coord.GetImageData("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateProjectMergesFields(t *testing.T) {
	coord, _, _ := newCoordinator()

	project, err := coord.CreateProject("Site A", "old description")
	require.NoError(t, err)

	updated, err := coord.UpdateProject(project.ID, strPtr("Site B"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Site B", updated.Name)
	assert.Equal(t, "old description", updated.Description)

	_, err = coord.UpdateProject("missing", strPtr("x"), nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListProjectsSearch(t *testing.T) {
	coord, _, _ := newCoordinator()

	_, err := coord.CreateProject("Riverside Tower", "")
	require.NoError(t, err)
	_, err = coord.CreateProject("Hill House", "")
	require.NoError(t, err)

	projects, err := coord.ListProjects("river")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Riverside Tower", projects[0].Name)

	projects, err = coord.ListProjects("")
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestCreateFloorplanProjectNotFound(t *testing.T) {
	coord, _, _ := newCoordinator()

	_, err := coord.CreateFloorplan("missing", "Ground", "plan.png", "image/png", nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
