package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zapponejosh/lunar-api/internal/almanac"
)

// execer is satisfied by both *DB and *Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses SQLite TEXT timestamps, returning nil when the
// value is missing or malformed.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateTime} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

func formatAt(t time.Time) string {
	return t.Format(atLayout)
}

func scanRecord(row interface{ Scan(...any) error }) (almanac.Record, error) {
	var term int
	var at string
	if err := row.Scan(&term, &at); err != nil {
		return almanac.Record{}, err
	}
	parsed, err := time.Parse(atLayout, at)
	if err != nil {
		return almanac.Record{}, fmt.Errorf("parse stored instant %q: %w", at, err)
	}
	return almanac.Record{Term: almanac.Term(term), At: parsed}, nil
}

// =============================================================================
// Solar Term Writes
// =============================================================================

// InsertSolarTerms upserts records in one transaction, keyed on year and
// term, and logs the load as an import run.
func (db *DB) InsertSolarTerms(ctx context.Context, source string, records []almanac.Record) (*ImportRun, error) {
	var run *ImportRun
	err := db.WithTx(ctx, func(tx *Tx) error {
		var err error
		run, err = tx.InsertSolarTerms(ctx, source, records)
		return err
	})
	if err != nil {
		return nil, err
	}

	db.logger.Info("solar terms imported",
		slog.String("import_id", run.ID),
		slog.String("source", source),
		slog.Int("records", run.Records),
	)
	return run, nil
}

// InsertSolarTerms is DB.InsertSolarTerms inside an existing transaction.
func (tx *Tx) InsertSolarTerms(ctx context.Context, source string, records []almanac.Record) (*ImportRun, error) {
	run := &ImportRun{
		ID:      uuid.NewString(),
		Source:  source,
		Records: len(records),
	}

	var first, last sql.NullString
	for _, rec := range records {
		if !first.Valid || formatAt(rec.At) < first.String {
			first = sql.NullString{String: formatAt(rec.At), Valid: true}
		}
		if !last.Valid || formatAt(rec.At) > last.String {
			last = sql.NullString{String: formatAt(rec.At), Valid: true}
		}
	}
	run.FirstAt = parseTimestamp(first)
	run.LastAt = parseTimestamp(last)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO import_runs (id, source, records, first_at, last_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Records, first, last,
	); err != nil {
		return nil, fmt.Errorf("insert import run: %w", err)
	}

	for _, rec := range records {
		if err := upsertSolarTerm(ctx, tx, rec, run.ID); err != nil {
			return nil, err
		}
	}
	return run, nil
}

func upsertSolarTerm(ctx context.Context, db execer, rec almanac.Record, importID string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO solar_terms (year, term, name, at, import_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (year, term) DO UPDATE SET
			at = excluded.at,
			name = excluded.name,
			import_id = excluded.import_id,
			updated_at = datetime('now')
	`, rec.At.Year(), int(rec.Term), rec.Term.String(), formatAt(rec.At), importID)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", rec, err)
	}
	return nil
}

// =============================================================================
// Solar Term Reads
// =============================================================================

// SolarTermWindow returns the last record at or before date's midnight and
// the first record after it. It returns ErrNotFound when either is missing.
func (db *DB) SolarTermWindow(ctx context.Context, date time.Time) (previous, next almanac.Record, err error) {
	y, m, d := date.Date()
	start := formatAt(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	previous, err = scanRecord(db.QueryRowContext(ctx,
		`SELECT term, at FROM solar_terms WHERE at <= ? ORDER BY at DESC LIMIT 1`, start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return previous, next, fmt.Errorf("no solar term before %s: %w", start, ErrNotFound)
		}
		return previous, next, fmt.Errorf("query previous solar term: %w", err)
	}

	next, err = scanRecord(db.QueryRowContext(ctx,
		`SELECT term, at FROM solar_terms WHERE at > ? ORDER BY at ASC LIMIT 1`, start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return previous, next, fmt.Errorf("no solar term after %s: %w", start, ErrNotFound)
		}
		return previous, next, fmt.Errorf("query next solar term: %w", err)
	}

	return previous, next, nil
}

// GetSolarTermsByYear returns a year's stored terms in order.
func (db *DB) GetSolarTermsByYear(ctx context.Context, year int) ([]SolarTerm, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, year, term, name, at, import_id
		FROM solar_terms
		WHERE year = ?
		ORDER BY at
	`, year)
	if err != nil {
		return nil, fmt.Errorf("query solar terms for %d: %w", year, err)
	}
	defer rows.Close()

	var terms []SolarTerm
	for rows.Next() {
		var st SolarTerm
		var at string
		var importID sql.NullString
		if err := rows.Scan(&st.ID, &st.Year, &st.Term, &st.Name, &at, &importID); err != nil {
			return nil, fmt.Errorf("scan solar term: %w", err)
		}
		parsed, err := time.Parse(atLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parse stored instant %q: %w", at, err)
		}
		st.At = parsed
		if importID.Valid {
			st.ImportID = &importID.String
		}
		terms = append(terms, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solar terms: %w", err)
	}
	return terms, nil
}

// GetImportRun looks up an import by ID.
func (db *DB) GetImportRun(ctx context.Context, id string) (*ImportRun, error) {
	var run ImportRun
	var first, last, importedAt sql.NullString

	err := db.QueryRowContext(ctx, `
		SELECT id, source, records, first_at, last_at, imported_at
		FROM import_runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Source, &run.Records, &first, &last, &importedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query import run: %w", err)
	}

	run.FirstAt = parseTimestamp(first)
	run.LastAt = parseTimestamp(last)
	run.ImportedAt = parseTimestamp(importedAt)
	return &run, nil
}

// GetStats summarizes the stored almanac.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	var firstYear, lastYear sql.NullInt64

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(year), MAX(year) FROM solar_terms
	`).Scan(&stats.Terms, &firstYear, &lastYear)
	if err != nil {
		return nil, fmt.Errorf("query solar term stats: %w", err)
	}
	stats.FirstYear = int(firstYear.Int64)
	stats.LastYear = int(lastYear.Int64)

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM import_runs`).Scan(&stats.Imports); err != nil {
		return nil, fmt.Errorf("query import count: %w", err)
	}
	return &stats, nil
}
