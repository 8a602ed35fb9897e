package database

import (
	"time"
)

// atLayout is how solar-term instants are stored.
const atLayout = time.DateTime

// SolarTerm is a stored almanac record.
type SolarTerm struct {
	ID       int64     `json:"id"`
	Year     int       `json:"year"`
	Term     int       `json:"term"`
	Name     string    `json:"name"`
	At       time.Time `json:"at"`
	ImportID *string   `json:"import_id,omitempty"`
}

// ImportRun describes one bulk load of almanac records.
type ImportRun struct {
	ID         string     `json:"id"`
	Source     string     `json:"source"`
	Records    int        `json:"records"`
	FirstAt    *time.Time `json:"first_at,omitempty"`
	LastAt     *time.Time `json:"last_at,omitempty"`
	ImportedAt *time.Time `json:"imported_at,omitempty"`
}

// Stats summarizes the stored almanac.
type Stats struct {
	Terms     int `json:"terms"`
	FirstYear int `json:"first_year"`
	LastYear  int `json:"last_year"`
	Imports   int `json:"imports"`
}
