package database

import (
	"context"
	"time"
)

// AlmanacSource serves almanac windows from the solar_terms table. It
// satisfies almanac.Source.
type AlmanacSource struct {
	db *DB
}

// NewAlmanacSource wraps db.
func NewAlmanacSource(db *DB) *AlmanacSource {
	return &AlmanacSource{db: db}
}

// Window returns the bracketing records in almanac text form.
func (s *AlmanacSource) Window(ctx context.Context, date time.Time) (string, string, error) {
	previous, next, err := s.db.SolarTermWindow(ctx, date)
	if err != nil {
		return "", "", err
	}
	return previous.String(), next.String(), nil
}
