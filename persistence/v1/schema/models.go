package schema

// schemas holds the statements creating the notes table, per database driver.
// Reads are always ordered by timestamp, hence the index.
var schemas = map[string][]string{
	"sqlite": {
		`CREATE TABLE IF NOT EXISTS notes (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			content   TEXT    NOT NULL,
			tag       TEXT    NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS notes_timestamp_idx ON notes (timestamp DESC)`,
	},
	"mysql": {
		`CREATE TABLE IF NOT EXISTS notes (
			id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			content   TEXT            NOT NULL,
			tag       VARCHAR(64)     NOT NULL,
			timestamp BIGINT          NOT NULL,
			PRIMARY KEY (id),
			INDEX notes_timestamp_idx (timestamp)
		)`,
	},
}

const dropSchema = `DROP TABLE IF EXISTS notes`
