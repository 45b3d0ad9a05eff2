package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS households (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL UNIQUE,
    record               TEXT NOT NULL,
    persons              INTEGER NOT NULL,
    dependents           INTEGER NOT NULL,
    current_year         INTEGER NOT NULL,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_households_updated ON households(updated_at);
`
