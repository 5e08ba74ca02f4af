// Package geocode resolves postal codes to coordinates using a local
// SQLite database.
package geocode

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Location is a resolved postal-code entry.
type Location struct {
	Latitude  float64
	Longitude float64
	PlaceName string
}

// DB is a read-mostly postal-code lookup database.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens the postal-code database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open postcode database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postcode database: %w", err)
	}

	return &DB{db: db, path: path}, nil
}

// EnsureSchema creates the postcodes table if it does not exist. Used by the
// importer; lookups against a missing table simply miss.
func (d *DB) EnsureSchema() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS postcodes (
			postcode   TEXT PRIMARY KEY,
			latitude   REAL NOT NULL,
			longitude  REAL NOT NULL,
			place_name TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create postcodes table: %w", err)
	}
	return nil
}

// Lookup resolves a postal code. The second return is false when the code is
// not present; an error is returned only for database failures.
func (d *DB) Lookup(postcode string) (Location, bool, error) {
	var loc Location
	row := d.db.QueryRow(
		`SELECT latitude, longitude, place_name FROM postcodes WHERE postcode = ?`,
		postcode,
	)
	err := row.Scan(&loc.Latitude, &loc.Longitude, &loc.PlaceName)
	if errors.Is(err, sql.ErrNoRows) {
		return Location{}, false, nil
	}
	if err != nil {
		return Location{}, false, fmt.Errorf("failed to query postcode %s: %w", postcode, err)
	}
	return loc, true, nil
}

// Insert adds or replaces a postal-code entry.
func (d *DB) Insert(postcode string, loc Location) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO postcodes (postcode, latitude, longitude, place_name) VALUES (?, ?, ?, ?)`,
		postcode, loc.Latitude, loc.Longitude, loc.PlaceName,
	)
	if err != nil {
		return fmt.Errorf("failed to insert postcode %s: %w", postcode, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}
