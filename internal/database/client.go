package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Client holds the PostgreSQL connection used by the project, floorplan and
// image repositories. The schema carries no foreign keys; cross-collection
// integrity is maintained by the coordinator in internal/services.
type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}
