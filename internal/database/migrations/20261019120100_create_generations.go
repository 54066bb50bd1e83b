package migrations

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/database"
)

func Migration20261019120100CreateGenerations() database.Migration {
	return database.Migration{
		Version:     20261019120100,
		Description: "Create generations table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS generations (
					id TEXT PRIMARY KEY,
					profile TEXT NOT NULL,
					job_title TEXT NOT NULL,
					iterations INTEGER NOT NULL,
					passes_review BOOLEAN NOT NULL,
					alignment_score INTEGER NOT NULL,
					style_compliance_score INTEGER NOT NULL,
					duration_ms BIGINT NOT NULL,
					result TEXT NOT NULL,
					created_at TEXT NOT NULL
				)
			`)
			return errors.Wrap(err, "failed to create generations table")
		},
		Down: func(tx *sql.Tx) error {
			_, err := tx.Exec("DROP TABLE IF EXISTS generations")
			return errors.Wrap(err, "failed to drop generations table")
		},
	}
}
