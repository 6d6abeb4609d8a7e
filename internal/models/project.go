package models

// Project is a construction project. ImageCount is a denormalized cache of the
// number of images referencing the project; it is recomputed from a live count
// after every image create/delete, never incremented in place.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageCount  int    `json:"image_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProjectDetail is a project with its children embedded, as returned by the
// single-project endpoint.
type ProjectDetail struct {
	Project
	Images     []Image     `json:"images"`
	Floorplans []Floorplan `json:"floorplans"`
}
