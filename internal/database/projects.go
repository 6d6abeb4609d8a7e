package database

import (
	"database/sql"
	"errors"
	"fmt"

	"baudok-backend/internal/models"
)

func (c *Client) CreateProject(project *models.Project) error {
	_, err := c.db.Exec(`
		INSERT INTO projects (id, name, description, image_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, project.ID, project.Name, project.Description, project.ImageCount,
		project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// ListProjects returns projects newest first. A non-empty search narrows the
// result to projects whose name contains it, case-insensitively.
func (c *Client) ListProjects(search string) ([]models.Project, error) {
	query := `
		SELECT id, name, description, image_count, created_at, updated_at
		FROM projects
	`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageCount,
			&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (c *Client) GetProject(id string) (*models.Project, error) {
	var p models.Project
	err := c.db.QueryRow(`
		SELECT id, name, description, image_count, created_at, updated_at
		FROM projects
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.ImageCount,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &p, nil
}

// UpdateProject overwrites the non-nil fields and refreshes updated_at.
func (c *Client) UpdateProject(id string, name, description *string, updatedAt string) error {
	_, err := c.db.Exec(`
		UPDATE projects
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    updated_at = $4
		WHERE id = $1
	`, id, nullable(name), nullable(description), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (c *Client) DeleteProject(id string) error {
	_, err := c.db.Exec(`
		DELETE FROM projects
		WHERE id = $1
	`, id)
	return err
}

// SetProjectImageCount persists a freshly recomputed image count together with
// a new updated_at. The count is always a snapshot from CountImagesByProject,
// never an in-place increment.
func (c *Client) SetProjectImageCount(id string, count int, updatedAt string) error {
	_, err := c.db.Exec(`
		UPDATE projects
		SET image_count = $2, updated_at = $3
		WHERE id = $1
	`, id, count, updatedAt)
	return err
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
