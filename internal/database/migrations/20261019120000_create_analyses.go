package migrations

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/database"
)

func Migration20261019120000CreateAnalyses() database.Migration {
	return database.Migration{
		Version:     20261019120000,
		Description: "Create analyses table",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS analyses (
					id TEXT PRIMARY KEY,
					request_id TEXT,
					profile TEXT NOT NULL,
					job_title TEXT NOT NULL,
					match_percentage REAL NOT NULL,
					job_analysis TEXT NOT NULL,
					skill_gap TEXT NOT NULL,
					created_at TEXT NOT NULL
				)
			`); err != nil {
				return errors.Wrap(err, "failed to create analyses table")
			}
			if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_analyses_profile_created ON analyses(profile, created_at)`); err != nil {
				return errors.Wrap(err, "failed to create analyses index")
			}
			return nil
		},
		Down: func(tx *sql.Tx) error {
			_, err := tx.Exec("DROP TABLE IF EXISTS analyses")
			return errors.Wrap(err, "failed to drop analyses table")
		},
	}
}
