package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database layout. All repository
// tests build their in-memory databases from GetSchemaSQL(), so a repository
// referencing a column that does not exist here fails immediately with
// "no such column" instead of drifting.
//
// When changing the layout: add a migration in migrations.go AND update this
// constant to the post-migration shape.
const SchemaSQL = `
-- Users (account owners; auth itself lives outside the engine)
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT UNIQUE
);

-- Surahs (static catalog)
CREATE TABLE IF NOT EXISTS surahs (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

-- Pages (static catalog; juz derived from the standard mushaf layout)
CREATE TABLE IF NOT EXISTS pages (
	id INTEGER PRIMARY KEY,
	page_number INTEGER NOT NULL UNIQUE,
	juz_number INTEGER NOT NULL
);

-- Items (smallest reviewable units; part_number > 1 for split pages)
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	page_id INTEGER NOT NULL REFERENCES pages(id),
	surah_id INTEGER NOT NULL REFERENCES surahs(id),
	part_number INTEGER NOT NULL DEFAULT 1,
	active INTEGER NOT NULL DEFAULT 1,
	description TEXT,
	start_text TEXT
);

-- Modes (seven fixed entries keyed by 2-letter code)
CREATE TABLE IF NOT EXISTS modes (
	code TEXT PRIMARY KEY CHECK(length(code) = 2),
	name TEXT NOT NULL,
	icon TEXT,
	base_interval INTEGER,
	default_threshold INTEGER
);

-- Hafizs (students; "current_date" is the per-hafiz logical clock)
CREATE TABLE IF NOT EXISTS hafizs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER REFERENCES users(id),
	name TEXT NOT NULL,
	daily_capacity INTEGER NOT NULL DEFAULT 20,
	"current_date" TEXT
);

-- Hafiz-item state rows (one per hafiz per active item)
CREATE TABLE IF NOT EXISTS hafizs_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hafiz_id INTEGER NOT NULL REFERENCES hafizs(id) ON DELETE CASCADE,
	item_id INTEGER NOT NULL REFERENCES items(id),
	page_number INTEGER NOT NULL,
	mode_code TEXT REFERENCES modes(code),
	memorized INTEGER NOT NULL DEFAULT 0,
	last_review TEXT,
	next_review TEXT,
	last_interval INTEGER,
	next_interval INTEGER,
	good_streak INTEGER NOT NULL DEFAULT 0,
	bad_streak INTEGER NOT NULL DEFAULT 0,
	good_count INTEGER NOT NULL DEFAULT 0,
	bad_count INTEGER NOT NULL DEFAULT 0,
	score INTEGER NOT NULL DEFAULT 0,
	count INTEGER NOT NULL DEFAULT 0,
	custom_daily_threshold INTEGER,
	custom_weekly_threshold INTEGER,
	custom_fortnightly_threshold INTEGER,
	custom_monthly_threshold INTEGER,
	srs_start_date TEXT,
	UNIQUE(hafiz_id, item_id)
);

-- Plans (Full Cycle windows; at most one open per hafiz)
CREATE TABLE IF NOT EXISTS plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hafiz_id INTEGER NOT NULL REFERENCES hafizs(id) ON DELETE CASCADE,
	start_page INTEGER NOT NULL DEFAULT 2,
	completed INTEGER NOT NULL DEFAULT 0
);

-- Revisions (append-only graded review log)
CREATE TABLE IF NOT EXISTS revisions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hafiz_id INTEGER NOT NULL REFERENCES hafizs(id) ON DELETE CASCADE,
	item_id INTEGER NOT NULL REFERENCES items(id),
	mode_code TEXT NOT NULL REFERENCES modes(code),
	revision_date TEXT NOT NULL,
	rating INTEGER NOT NULL CHECK(rating IN (-1, 0, 1)),
	plan_id INTEGER REFERENCES plans(id),
	next_interval INTEGER,
	UNIQUE(hafiz_id, item_id, revision_date, mode_code)
);

CREATE INDEX IF NOT EXISTS idx_revisions_hafiz_date ON revisions(hafiz_id, revision_date);
CREATE INDEX IF NOT EXISTS idx_revisions_hafiz_item ON revisions(hafiz_id, item_id, mode_code);
CREATE INDEX IF NOT EXISTS idx_hafizs_items_hafiz ON hafizs_items(hafiz_id);
`

// GetSchemaSQL returns the authoritative schema. Tests must build their
// databases from this, never from hardcoded CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
