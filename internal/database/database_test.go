package database_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/resumeascode/internal/database"
	"github.com/muhammadolammi/resumeascode/internal/database/migrations"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrationRunner(db).Run(ctx, migrations.All()))
	return db
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, database.DriverPostgres, database.DriverFor("postgres://u:p@localhost/db"))
	assert.Equal(t, database.DriverPostgres, database.DriverFor("postgresql://localhost/db"))
	assert.Equal(t, database.DriverSQLite, database.DriverFor("/tmp/history.db"))
	assert.Equal(t, database.DriverSQLite, database.DriverFor("sqlite:///tmp/history.db"))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/me/resume", ".resume", "history.db"), database.DefaultPath("/home/me/resume/data/"))
}

func TestMigrations(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	runner := database.NewMigrationRunner(db)

	// idempotent
	require.NoError(t, runner.Run(ctx, migrations.All()))

	versions, err := runner.AppliedVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{20261019120000, 20261019120100, 20261019120200}, versions)

	require.NoError(t, runner.Rollback(ctx, migrations.All()))
	versions, err = runner.AppliedVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{20261019120000, 20261019120100}, versions)

	var count int
	err = db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='analysis_requests'")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAnalyses(t *testing.T) {
	ctx := context.Background()
	q := database.New(openTestDB(t))

	created, err := q.CreateAnalysis(ctx, database.CreateAnalysisParams{
		ID:              "a1",
		Profile:         "sre",
		JobTitle:        "Senior SRE",
		MatchPercentage: 66.7,
		JobAnalysis:     `{"role_type":"SRE"}`,
		SkillGap:        `{"match_percentage":66.7}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)
	assert.False(t, created.RequestID.Valid)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = q.CreateAnalysis(ctx, database.CreateAnalysisParams{
		ID: "a2", RequestID: sql.NullString{String: "r1", Valid: true}, Profile: "sdet",
		JobTitle: "Staff SDET", MatchPercentage: 100, JobAnalysis: "{}", SkillGap: "{}",
	})
	require.NoError(t, err)

	all, err := q.ListAnalyses(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a2", all[0].ID)

	sre, err := q.ListAnalyses(ctx, "sre", 10)
	require.NoError(t, err)
	require.Len(t, sre, 1)
	assert.InDelta(t, 66.7, sre[0].MatchPercentage, 0.001)

	limited, err := q.ListAnalyses(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := q.GetAnalysis(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.RequestID.String)
	assert.Equal(t, "Staff SDET", got.JobTitle)

	_, err = q.GetAnalysis(ctx, "missing")
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestGenerations(t *testing.T) {
	ctx := context.Background()
	q := database.New(openTestDB(t))

	empty, err := q.ListGenerations(ctx, "", 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	g, err := q.CreateGeneration(ctx, database.CreateGenerationParams{
		ID:                   "g1",
		Profile:              "senior-sre",
		JobTitle:             "Senior SRE",
		Iterations:           2,
		PassesReview:         true,
		AlignmentScore:       8,
		StyleComplianceScore: 9,
		DurationMs:           4200,
		Result:               `{"iterations":2}`,
	})
	require.NoError(t, err)
	assert.True(t, g.PassesReview)

	list, err := q.ListGenerations(ctx, "", 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Iterations)
	assert.Equal(t, int64(4200), list[0].DurationMs)
}

func TestListGenerations_ProfileBeforeLimit(t *testing.T) {
	ctx := context.Background()
	q := database.New(openTestDB(t))

	for _, g := range []struct{ id, profile string }{{"g1", "backend"}, {"g2", "sre"}, {"g3", "sre"}} {
		_, err := q.CreateGeneration(ctx, database.CreateGenerationParams{
			ID: g.id, Profile: g.profile, JobTitle: "Engineer", Result: "{}",
		})
		require.NoError(t, err)
	}

	all, err := q.ListGenerations(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "sre", all[0].Profile)
	assert.Equal(t, "sre", all[1].Profile)

	backend, err := q.ListGenerations(ctx, "backend", 2)
	require.NoError(t, err)
	require.Len(t, backend, 1)
	assert.Equal(t, "g1", backend[0].ID)

	none, err := q.ListGenerations(ctx, "frontend", 2)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAnalysisRequests(t *testing.T) {
	ctx := context.Background()
	q := database.New(openTestDB(t))

	params := database.CreateAnalysisRequestParams{ID: "r1", Profile: "sre", JobTitle: "SRE", JobDescription: "Go"}
	require.NoError(t, q.CreateAnalysisRequest(ctx, params))
	// redelivery is a no-op
	require.NoError(t, q.CreateAnalysisRequest(ctx, params))

	r, err := q.GetAnalysisRequest(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, database.StatusPending, r.Status)

	require.NoError(t, q.UpdateAnalysisRequestStatus(ctx, database.UpdateAnalysisRequestStatusParams{
		ID: "r1", Status: database.StatusFailed, Error: "boom",
	}))
	r, err = q.GetAnalysisRequest(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, database.StatusFailed, r.Status)
	assert.Equal(t, "boom", r.Error)

	err = q.UpdateAnalysisRequestStatus(ctx, database.UpdateAnalysisRequestStatusParams{ID: "nope", Status: database.StatusCompleted})
	assert.True(t, errors.Is(err, database.ErrNotFound))
}
