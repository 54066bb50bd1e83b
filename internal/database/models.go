package database

import (
	"database/sql"
	"database/sql/driver"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("record not found")

// Request statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Timestamp is stored as RFC3339 text so both drivers read it back the same
// way.
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Second)}
}

func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return errors.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return errors.Wrapf(err, "invalid timestamp %q", s)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) Value() (driver.Value, error) {
	return t.UTC().Format(time.RFC3339Nano), nil
}

// Analysis is a stored job analysis with its skill gap. JobAnalysis and
// SkillGap hold JSON documents.
type Analysis struct {
	ID              string         `db:"id"`
	RequestID       sql.NullString `db:"request_id"`
	Profile         string         `db:"profile"`
	JobTitle        string         `db:"job_title"`
	MatchPercentage float64        `db:"match_percentage"`
	JobAnalysis     string         `db:"job_analysis"`
	SkillGap        string         `db:"skill_gap"`
	CreatedAt       Timestamp      `db:"created_at"`
}

// Generation is a stored profile generation run. Result holds JSON.
type Generation struct {
	ID                   string    `db:"id"`
	Profile              string    `db:"profile"`
	JobTitle             string    `db:"job_title"`
	Iterations           int       `db:"iterations"`
	PassesReview         bool      `db:"passes_review"`
	AlignmentScore       int       `db:"alignment_score"`
	StyleComplianceScore int       `db:"style_compliance_score"`
	DurationMs           int64     `db:"duration_ms"`
	Result               string    `db:"result"`
	CreatedAt            Timestamp `db:"created_at"`
}

// AnalysisRequest tracks a queued worker request.
type AnalysisRequest struct {
	ID             string    `db:"id"`
	Profile        string    `db:"profile"`
	JobTitle       string    `db:"job_title"`
	JobDescription string    `db:"job_description"`
	ObjectKey      string    `db:"object_key"`
	Status         string    `db:"status"`
	Error          string    `db:"error"`
	CreatedAt      Timestamp `db:"created_at"`
	UpdatedAt      Timestamp `db:"updated_at"`
}
