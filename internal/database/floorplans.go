package database

import (
	"database/sql"
	"errors"
	"fmt"

	"baudok-backend/internal/models"
)

func (c *Client) CreateFloorplan(fp *models.Floorplan) error {
	_, err := c.db.Exec(`
		INSERT INTO floorplans (id, project_id, name, filename, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, fp.ID, fp.ProjectID, fp.Name, fp.Filename, fp.ContentType, fp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create floorplan: %w", err)
	}
	return nil
}

func (c *Client) ListFloorplans(projectID string) ([]models.Floorplan, error) {
	rows, err := c.db.Query(`
		SELECT id, project_id, name, filename, content_type, created_at
		FROM floorplans
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list floorplans: %w", err)
	}
	defer rows.Close()

	floorplans := []models.Floorplan{}
	for rows.Next() {
		var fp models.Floorplan
		err := rows.Scan(&fp.ID, &fp.ProjectID, &fp.Name, &fp.Filename,
			&fp.ContentType, &fp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan floorplan: %w", err)
		}
		floorplans = append(floorplans, fp)
	}

	return floorplans, rows.Err()
}

func (c *Client) GetFloorplan(id string) (*models.Floorplan, error) {
	var fp models.Floorplan
	err := c.db.QueryRow(`
		SELECT id, project_id, name, filename, content_type, created_at
		FROM floorplans
		WHERE id = $1
	`, id).Scan(&fp.ID, &fp.ProjectID, &fp.Name, &fp.Filename,
		&fp.ContentType, &fp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get floorplan: %w", err)
	}

	return &fp, nil
}

func (c *Client) DeleteFloorplan(id string) error {
	_, err := c.db.Exec(`
		DELETE FROM floorplans
		WHERE id = $1
	`, id)
	return err
}

func (c *Client) DeleteFloorplansByProject(projectID string) error {
	_, err := c.db.Exec(`
		DELETE FROM floorplans
		WHERE project_id = $1
	`, projectID)
	return err
}
