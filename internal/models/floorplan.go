package models

// Floorplan is a plan image scoped to a project. Images can be pinned to it via
// their floorplan_id/x/y fields; the floorplan itself never owns those images.
type Floorplan struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	CreatedAt   string `json:"created_at"`

	// MarkerCount is the number of images currently pinned to this floorplan.
	// Computed on read, never stored.
	MarkerCount int `json:"marker_count"`
}
