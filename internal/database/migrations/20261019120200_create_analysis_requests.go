package migrations

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/database"
)

func Migration20261019120200CreateAnalysisRequests() database.Migration {
	return database.Migration{
		Version:     20261019120200,
		Description: "Create analysis_requests table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS analysis_requests (
					id TEXT PRIMARY KEY,
					profile TEXT NOT NULL,
					job_title TEXT NOT NULL,
					job_description TEXT NOT NULL,
					object_key TEXT NOT NULL DEFAULT '',
					status TEXT NOT NULL,
					error TEXT NOT NULL DEFAULT '',
					created_at TEXT NOT NULL,
					updated_at TEXT NOT NULL
				)
			`)
			return errors.Wrap(err, "failed to create analysis_requests table")
		},
		Down: func(tx *sql.Tx) error {
			_, err := tx.Exec("DROP TABLE IF EXISTS analysis_requests")
			return errors.Wrap(err, "failed to drop analysis_requests table")
		},
	}
}
