package scholar

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists fetched citations in a SQLite database so repeated runs
// over the same bibliography don't re-hit Scholar. It lives entirely inside
// the search provider; the pipeline itself stays stateless.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	schema := `
		CREATE TABLE IF NOT EXISTS citations (
			cluster_id TEXT PRIMARY KEY,
			bibtex TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached citation for a cluster ID, if present.
func (c *Cache) Get(clusterID string) (string, bool, error) {
	var bibtex string
	err := c.db.QueryRow(
		`SELECT bibtex FROM citations WHERE cluster_id = ?`, clusterID,
	).Scan(&bibtex)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache: %w", err)
	}
	return bibtex, true, nil
}

// Put stores a citation, replacing any previous value for the cluster ID.
func (c *Cache) Put(clusterID, bibtex string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO citations (cluster_id, bibtex, fetched_at) VALUES (?, ?, ?)`,
		clusterID, bibtex, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
