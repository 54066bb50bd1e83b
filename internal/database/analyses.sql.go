package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

const createAnalysis = `-- name: CreateAnalysis :one
INSERT INTO analyses (id, request_id, profile, job_title, match_percentage, job_analysis, skill_gap, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, request_id, profile, job_title, match_percentage, job_analysis, skill_gap, created_at
`

type CreateAnalysisParams struct {
	ID              string
	RequestID       sql.NullString
	Profile         string
	JobTitle        string
	MatchPercentage float64
	JobAnalysis     string
	SkillGap        string
}

func (q *Queries) CreateAnalysis(ctx context.Context, arg CreateAnalysisParams) (Analysis, error) {
	var a Analysis
	err := q.db.GetContext(ctx, &a, q.db.Rebind(createAnalysis),
		arg.ID, arg.RequestID, arg.Profile, arg.JobTitle, arg.MatchPercentage, arg.JobAnalysis, arg.SkillGap, Now())
	return a, errors.Wrap(err, "failed to create analysis")
}

const listAnalyses = `-- name: ListAnalyses :many
SELECT id, request_id, profile, job_title, match_percentage, job_analysis, skill_gap, created_at
FROM analyses
WHERE (? = '' OR profile = ?)
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// ListAnalyses returns the newest analyses first. An empty profile matches
// every profile.
func (q *Queries) ListAnalyses(ctx context.Context, profile string, limit int) ([]Analysis, error) {
	items := []Analysis{}
	err := q.db.SelectContext(ctx, &items, q.db.Rebind(listAnalyses), profile, profile, limit)
	return items, errors.Wrap(err, "failed to list analyses")
}

const getAnalysis = `-- name: GetAnalysis :one
SELECT id, request_id, profile, job_title, match_percentage, job_analysis, skill_gap, created_at
FROM analyses WHERE id = ?
`

func (q *Queries) GetAnalysis(ctx context.Context, id string) (Analysis, error) {
	var a Analysis
	err := q.db.GetContext(ctx, &a, q.db.Rebind(getAnalysis), id)
	if errors.Is(err, sql.ErrNoRows) {
		return a, errors.Wrapf(ErrNotFound, "analysis %s", id)
	}
	return a, errors.Wrap(err, "failed to get analysis")
}
