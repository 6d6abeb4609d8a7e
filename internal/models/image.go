package models

// Work phase categories. Every image carries exactly one of these; any other
// value is rejected before a row is written.
const (
	CategoryRoughIn  = "phase-1"
	CategoryFitOut   = "phase-2"
	CategoryHandover = "phase-3"
)

// Categories lists the valid work phase values.
var Categories = []string{CategoryRoughIn, CategoryFitOut, CategoryHandover}

// ValidCategory reports whether c is one of the fixed work phase values.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// PredefinedTags is the suggested tag vocabulary returned to clients for UI
// population. It is advisory only; the tags field accepts any strings.
var PredefinedTags = []string{
	"wiring", "plumbing", "tiling", "painting",
	"insulation", "drywall", "fault", "repair",
	"window", "door", "heating", "hvac", "sanitary",
}

// Location is an optional geotag. It is present only when both coordinates
// were supplied at upload time; partial coordinates are treated as absent.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Image is a photograph scoped to a project. FloorplanID/X/Y pin it to a
// floorplan and LinkedImageID points at a before/after counterpart; both are
// weak references cleared by the coordinator when their target disappears.
type Image struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"content_type"`
	Tags          []string  `json:"tags"`
	Location      *Location `json:"location"`
	LinkedImageID *string   `json:"linked_image_id"`
	FloorplanID   *string   `json:"floorplan_id"`
	FloorplanX    *float64  `json:"floorplan_x"`
	FloorplanY    *float64  `json:"floorplan_y"`
	CreatedAt     string    `json:"created_at"`
}

// ImageFilter narrows an image listing. Zero values mean "no filter".
// DateFrom/DateTo are inclusive bounds on created_at compared as ISO-8601
// strings; the coordinator extends DateTo to the end of that day.
type ImageFilter struct {
	Category string
	Tag      string
	DateFrom string
	DateTo   string
}

// ImageUpdate is a partial image update. Each field has three states: nil
// leaves the stored value untouched, a non-nil value overwrites it, and for
// LinkedImageID/FloorplanID an explicit empty string clears the reference.
// A non-nil empty Tags slice clears the tags.
type ImageUpdate struct {
	Description   *string   `json:"description"`
	Tags          []string  `json:"tags"`
	Location      *Location `json:"location"`
	LinkedImageID *string   `json:"linked_image_id"`
	FloorplanID   *string   `json:"floorplan_id"`
	FloorplanX    *float64  `json:"floorplan_x"`
	FloorplanY    *float64  `json:"floorplan_y"`
}
