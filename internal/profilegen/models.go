package profilegen

import (
	"strings"
	"time"

	"github.com/muhammadolammi/resumeascode/internal/analysis"
	"github.com/muhammadolammi/resumeascode/internal/convert"
	"github.com/muhammadolammi/resumeascode/internal/resume"
)

// ResumeContent is the tailored resume produced by the content step.
type ResumeContent struct {
	HeaderTitle string                 `json:"header_title" jsonschema_description:"Professional title for the resume header matching the target role"`
	Summary     string                 `json:"summary" jsonschema_description:"3-4 sentence professional summary"`
	Experiences []convert.CVExperience `json:"experiences" jsonschema_description:"Work experience with reframed achievement bullets, most recent first"`
	Skills      []resume.Skill         `json:"skills" jsonschema_description:"Skills ordered by relevance to the target job"`
}

// Bullets returns every achievement bullet in order.
func (c ResumeContent) Bullets() []string {
	var out []string
	for _, e := range c.Experiences {
		out = append(out, e.Achievements...)
	}
	return out
}

// QualityReview is the reviewer's verdict on a ResumeContent.
type QualityReview struct {
	PassesReview         bool     `json:"passes_review" jsonschema_description:"Whether the content is ready to use"`
	AlignmentScore       int      `json:"alignment_score" jsonschema_description:"How well the content matches the job, 1-10"`
	StyleComplianceScore int      `json:"style_compliance_score" jsonschema_description:"How well the content follows the style rules, 1-10"`
	IssuesFound          []string `json:"issues_found" jsonschema_description:"Specific problems with examples"`
	Suggestions          []string `json:"suggestions" jsonschema_description:"Constructive improvements"`
	Strengths            []string `json:"strengths" jsonschema_description:"What is working well"`
}

const (
	minAlignmentScore       = 7
	minStyleComplianceScore = 8
)

// Accepted reports whether the review passed and both scores meet the bar.
func (q QualityReview) Accepted() bool {
	return q.PassesReview && q.AlignmentScore >= minAlignmentScore && q.StyleComplianceScore >= minStyleComplianceScore
}

// CoverLetter is a structured cover letter.
type CoverLetter struct {
	Greeting         string   `json:"greeting" jsonschema_description:"Salutation, e.g. Dear Hiring Manager,"`
	OpeningParagraph string   `json:"opening_paragraph" jsonschema_description:"Hook related to the company or role"`
	BodyParagraphs   []string `json:"body_paragraphs" jsonschema_description:"2-3 paragraphs connecting achievements to the role"`
	ClosingParagraph string   `json:"closing_paragraph" jsonschema_description:"Interest and call to action"`
	SignOff          string   `json:"sign_off" jsonschema_description:"Closing line and name, e.g. Best regards, Jane Doe"`
}

// ToMarkdown joins the letter's parts into paragraphs separated by blank
// lines. Empty parts are skipped.
func (c CoverLetter) ToMarkdown() string {
	parts := []string{c.Greeting, c.OpeningParagraph}
	parts = append(parts, c.BodyParagraphs...)
	parts = append(parts, c.ClosingParagraph, c.SignOff)

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n") + "\n"
}

// Result is everything produced by one generation run.
type Result struct {
	ID            string
	ProfileName   string
	JobAnalysis   analysis.JobAnalysisResult
	ResumeContent ResumeContent
	QualityReview QualityReview
	// LocalViolations are the style rule violations left in the final content.
	LocalViolations []string
	CoverLetter     CoverLetter
	Iterations      int
	Duration        time.Duration
}
