package database

// Quantities are stored as TEXT decimals in canonical units (grams, liters, EBC).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id            TEXT PRIMARY KEY,
		kind          TEXT NOT NULL,
		name          TEXT NOT NULL,
		supplier      TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		amount_grams  TEXT,
		volume_liters TEXT,
		color_ebc     TEXT,
		alpha_acid    TEXT,
		form          TEXT NOT NULL DEFAULT '',
		laboratory    TEXT NOT NULL DEFAULT '',
		product_id    TEXT NOT NULL DEFAULT '',
		attenuation   TEXT,
		created_at    INTEGER NOT NULL,
		updated_at    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_kind_name ON items (kind, name)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		style             TEXT NOT NULL DEFAULT '',
		notes             TEXT NOT NULL DEFAULT '',
		batch_size_liters TEXT,
		boil_size_liters  TEXT,
		boil_time_minutes INTEGER NOT NULL DEFAULT 0,
		efficiency        TEXT,
		created_at        INTEGER NOT NULL,
		updated_at        INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id     TEXT NOT NULL REFERENCES recipes (id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		item_id       TEXT NOT NULL REFERENCES items (id) ON DELETE RESTRICT,
		amount_grams  TEXT,
		volume_liters TEXT,
		use           TEXT NOT NULL DEFAULT '',
		time_minutes  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (recipe_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS preferences (
		username    TEXT PRIMARY KEY,
		document    TEXT NOT NULL,
		updated_at  INTEGER NOT NULL
	)`,
}
