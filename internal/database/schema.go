package database

const cacheSchema = `
CREATE TABLE film_cache (
	url TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	release_date TEXT NOT NULL,
	next_anniversary TEXT NOT NULL,
	last_fetched TIMESTAMP NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_film_last_fetched ON film_cache(last_fetched);
CREATE INDEX idx_film_next_anniversary ON film_cache(next_anniversary);
`

// cacheMigrations contains incremental schema changes
// Each migration is applied in order based on the current user_version
// cacheMigrations[0] is empty because version 0 uses the base schema
var cacheMigrations = []string{
	"",
}
