// Package migrations holds the history database schema. Versions are
// timestamps (YYYYMMDDHHmmss).
package migrations

import "github.com/muhammadolammi/resumeascode/internal/database"

// All returns every migration; add new ones at the end.
func All() []database.Migration {
	return []database.Migration{
		Migration20261019120000CreateAnalyses(),
		Migration20261019120100CreateGenerations(),
		Migration20261019120200CreateAnalysisRequests(),
	}
}
