package database

import (
	"context"

	"github.com/pkg/errors"
)

const createGeneration = `-- name: CreateGeneration :one
INSERT INTO generations (id, profile, job_title, iterations, passes_review, alignment_score,
	style_compliance_score, duration_ms, result, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, profile, job_title, iterations, passes_review, alignment_score, style_compliance_score,
	duration_ms, result, created_at
`

type CreateGenerationParams struct {
	ID                   string
	Profile              string
	JobTitle             string
	Iterations           int
	PassesReview         bool
	AlignmentScore       int
	StyleComplianceScore int
	DurationMs           int64
	Result               string
}

func (q *Queries) CreateGeneration(ctx context.Context, arg CreateGenerationParams) (Generation, error) {
	var g Generation
	err := q.db.GetContext(ctx, &g, q.db.Rebind(createGeneration),
		arg.ID, arg.Profile, arg.JobTitle, arg.Iterations, arg.PassesReview, arg.AlignmentScore,
		arg.StyleComplianceScore, arg.DurationMs, arg.Result, Now())
	return g, errors.Wrap(err, "failed to create generation")
}

const listGenerations = `-- name: ListGenerations :many
SELECT id, profile, job_title, iterations, passes_review, alignment_score, style_compliance_score,
	duration_ms, result, created_at
FROM generations
WHERE (? = '' OR profile = ?)
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// ListGenerations returns the newest generations first. An empty profile
// matches every profile.
func (q *Queries) ListGenerations(ctx context.Context, profile string, limit int) ([]Generation, error) {
	items := []Generation{}
	err := q.db.SelectContext(ctx, &items, q.db.Rebind(listGenerations), profile, profile, limit)
	return items, errors.Wrap(err, "failed to list generations")
}
