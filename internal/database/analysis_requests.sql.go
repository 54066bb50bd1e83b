package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

const createAnalysisRequest = `-- name: CreateAnalysisRequest :exec
INSERT INTO analysis_requests (id, profile, job_title, job_description, object_key, status, error, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, '', ?, ?)
ON CONFLICT (id) DO NOTHING
`

type CreateAnalysisRequestParams struct {
	ID             string
	Profile        string
	JobTitle       string
	JobDescription string
	ObjectKey      string
}

// CreateAnalysisRequest records a pending request. Redelivered requests
// keep their original row.
func (q *Queries) CreateAnalysisRequest(ctx context.Context, arg CreateAnalysisRequestParams) error {
	now := Now()
	_, err := q.db.ExecContext(ctx, q.db.Rebind(createAnalysisRequest),
		arg.ID, arg.Profile, arg.JobTitle, arg.JobDescription, arg.ObjectKey, StatusPending, now, now)
	return errors.Wrap(err, "failed to create analysis request")
}

const updateAnalysisRequestStatus = `-- name: UpdateAnalysisRequestStatus :exec
UPDATE analysis_requests
SET status = ?, error = ?, updated_at = ?
WHERE id = ?
`

type UpdateAnalysisRequestStatusParams struct {
	ID     string
	Status string
	Error  string
}

func (q *Queries) UpdateAnalysisRequestStatus(ctx context.Context, arg UpdateAnalysisRequestStatusParams) error {
	res, err := q.db.ExecContext(ctx, q.db.Rebind(updateAnalysisRequestStatus), arg.Status, arg.Error, Now(), arg.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update analysis request status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Wrapf(ErrNotFound, "analysis request %s", arg.ID)
	}
	return nil
}

const getAnalysisRequest = `-- name: GetAnalysisRequest :one
SELECT id, profile, job_title, job_description, object_key, status, error, created_at, updated_at
FROM analysis_requests WHERE id = ?
`

func (q *Queries) GetAnalysisRequest(ctx context.Context, id string) (AnalysisRequest, error) {
	var r AnalysisRequest
	err := q.db.GetContext(ctx, &r, q.db.Rebind(getAnalysisRequest), id)
	if errors.Is(err, sql.ErrNoRows) {
		return r, errors.Wrapf(ErrNotFound, "analysis request %s", id)
	}
	return r, errors.Wrap(err, "failed to get analysis request")
}
