package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure the kv table exists. The store is
// deliberately schemaless beyond this: one row per key, opaque bytes.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
