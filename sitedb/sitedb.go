// Package sitedb loads the static site→location reference data from a
// read-only SQLite database. The table is loaded once per run; the pipeline
// only ever reads it.
package sitedb

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Location is the geographic reference for one site.
type Location struct {
	Province  string
	District  string
	Latitude  float64
	Longitude float64
}

// Lookup maps site id to its location.
type Lookup map[string]Location

// Load reads every row of the sites table into memory. The database is
// opened read-only so a pipeline bug can never corrupt reference data.
func Load(path string) (Lookup, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("site database not found: %s", path)
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open site database %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT site_id, province, district, latitude, longitude FROM sites`)
	if err != nil {
		return nil, fmt.Errorf("query site database: %w", err)
	}
	defer rows.Close()

	out := Lookup{}
	for rows.Next() {
		var id string
		var loc Location
		if err := rows.Scan(&id, &loc.Province, &loc.District, &loc.Latitude, &loc.Longitude); err != nil {
			return nil, err
		}
		out[id] = loc
	}
	return out, rows.Err()
}
