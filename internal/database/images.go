package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"baudok-backend/internal/models"
)

const imageColumns = `id, project_id, category, description, filename, content_type,
	tags, location, linked_image_id, floorplan_id, floorplan_x, floorplan_y, created_at`

func scanImage(row interface{ Scan(...interface{}) error }) (*models.Image, error) {
	var img models.Image
	var tags []byte
	var location []byte
	err := row.Scan(&img.ID, &img.ProjectID, &img.Category, &img.Description,
		&img.Filename, &img.ContentType, &tags, &location,
		&img.LinkedImageID, &img.FloorplanID, &img.FloorplanX, &img.FloorplanY,
		&img.CreatedAt)
	if err != nil {
		return nil, err
	}

	img.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &img.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	if len(location) > 0 {
		img.Location = &models.Location{}
		if err := json.Unmarshal(location, img.Location); err != nil {
			return nil, fmt.Errorf("failed to decode location: %w", err)
		}
	}

	return &img, nil
}

// JSONB parameters go over the wire as text; lib/pq would send []byte as bytea.
func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

func marshalLocation(loc *models.Location) interface{} {
	if loc == nil {
		return nil
	}
	data, _ := json.Marshal(loc)
	return string(data)
}

func (c *Client) CreateImage(img *models.Image) error {
	_, err := c.db.Exec(`
		INSERT INTO images (`+imageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, img.ID, img.ProjectID, img.Category, img.Description, img.Filename,
		img.ContentType, marshalTags(img.Tags), marshalLocation(img.Location),
		img.LinkedImageID, img.FloorplanID, img.FloorplanX, img.FloorplanY,
		img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

// ListImages returns a project's images newest first, narrowed by the filter.
// The tag filter is a membership test against the tags array; the date bounds
// are inclusive lexicographic compares on the ISO-8601 created_at strings.
func (c *Client) ListImages(projectID string, filter models.ImageFilter) ([]models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE project_id = $1`
	args := []interface{}{projectID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Tag != "" {
		tagJSON, _ := json.Marshal([]string{filter.Tag})
		args = append(args, string(tagJSON))
		query += fmt.Sprintf(" AND tags @> $%d::jsonb", len(args))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	return c.queryImages(query, args...)
}

// ListImagesByFloorplan returns every image pinned to the floorplan in
// creation order.
func (c *Client) ListImagesByFloorplan(floorplanID string) ([]models.Image, error) {
	return c.queryImages(`
		SELECT `+imageColumns+`
		FROM images
		WHERE floorplan_id = $1
		ORDER BY created_at ASC
	`, floorplanID)
}

func (c *Client) queryImages(query string, args ...interface{}) ([]models.Image, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, *img)
	}

	return images, rows.Err()
}

func (c *Client) GetImage(id string) (*models.Image, error) {
	row := c.db.QueryRow(`
		SELECT `+imageColumns+`
		FROM images
		WHERE id = $1
	`, id)

	img, err := scanImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return img, nil
}

// UpdateImage applies the provided fields only. A nil empty-string reference
// has already been normalized by the coordinator into an explicit NULL write.
func (c *Client) UpdateImage(id string, update *models.ImageUpdate) error {
	set := []string{}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Tags != nil {
		add("tags", marshalTags(update.Tags))
	}
	if update.Location != nil {
		add("location", marshalLocation(update.Location))
	}
	if update.LinkedImageID != nil {
		add("linked_image_id", nullableRef(*update.LinkedImageID))
	}
	if update.FloorplanID != nil {
		add("floorplan_id", nullableRef(*update.FloorplanID))
	}
	if update.FloorplanX != nil {
		add("floorplan_x", *update.FloorplanX)
	}
	if update.FloorplanY != nil {
		add("floorplan_y", *update.FloorplanY)
	}

	if len(set) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE images SET %s WHERE id = $1", strings.Join(set, ", "))
	if _, err := c.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}
	return nil
}

// nullableRef maps the empty-string "clear this reference" sentinel to NULL.
func nullableRef(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (c *Client) DeleteImage(id string) error {
	_, err := c.db.Exec(`
		DELETE FROM images
		WHERE id = $1
	`, id)
	return err
}

func (c *Client) DeleteImagesByProject(projectID string) error {
	_, err := c.db.Exec(`
		DELETE FROM images
		WHERE project_id = $1
	`, projectID)
	return err
}

func (c *Client) CountImagesByProject(projectID string) (int, error) {
	var count int
	err := c.db.QueryRow(`
		SELECT COUNT(*) FROM images WHERE project_id = $1
	`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

func (c *Client) CountImagesByFloorplan(floorplanID string) (int, error) {
	var count int
	err := c.db.QueryRow(`
		SELECT COUNT(*) FROM images WHERE floorplan_id = $1
	`, floorplanID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count floorplan markers: %w", err)
	}
	return count, nil
}

// ClearLinkedImageRefs nulls linked_image_id on every image pointing at the
// given image. Called before that image's row is deleted.
func (c *Client) ClearLinkedImageRefs(imageID string) error {
	_, err := c.db.Exec(`
		UPDATE images
		SET linked_image_id = NULL
		WHERE linked_image_id = $1
	`, imageID)
	return err
}

// ClearFloorplanRefs removes the floorplan pin from every image on the given
// floorplan. The id and both coordinates always clear together.
func (c *Client) ClearFloorplanRefs(floorplanID string) error {
	_, err := c.db.Exec(`
		UPDATE images
		SET floorplan_id = NULL, floorplan_x = NULL, floorplan_y = NULL
		WHERE floorplan_id = $1
	`, floorplanID)
	return err
}
