package database

// migration is one forward-only schema step.
type migration struct {
	version int
	name    string
	sql     string
}

// migrations are applied in slice order; versions must be 1..n.
var migrations = []migration{
	{1, "solar_terms", migrationV1SolarTerms},
	{2, "import_runs", migrationV2ImportRuns},
}

// migrationV1SolarTerms stores one row per solar term per year. at is the
// China Standard Time wall clock as "YYYY-MM-DD hh:mm:ss", which sorts
// chronologically as text.
const migrationV1SolarTerms = `
CREATE TABLE IF NOT EXISTS solar_terms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    year INTEGER NOT NULL,
    term INTEGER NOT NULL CHECK (term BETWEEN 0 AND 23),
    name TEXT NOT NULL,
    at TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE (year, term)
);

CREATE INDEX IF NOT EXISTS idx_solar_terms_at ON solar_terms(at);
`

// migrationV2ImportRuns records each bulk load for auditing.
const migrationV2ImportRuns = `
CREATE TABLE IF NOT EXISTS import_runs (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    records INTEGER NOT NULL,
    first_at TEXT,
    last_at TEXT,
    imported_at TEXT NOT NULL DEFAULT (datetime('now'))
);

ALTER TABLE solar_terms ADD COLUMN import_id TEXT REFERENCES import_runs(id);
`
