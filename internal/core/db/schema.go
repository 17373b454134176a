package db

func (db *DB) initSchema() error {
	schema := `
	-- One row per addressable slot. The value is written whole on every save.
	CREATE TABLE IF NOT EXISTS kv_slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}
