// Package profilegen generates a tailored resume profile and cover letter
// from a job description with a sequence of LLM calls.
package profilegen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/muhammadolammi/resumeascode/internal/analysis"
	"github.com/muhammadolammi/resumeascode/internal/llm"
	"github.com/muhammadolammi/resumeascode/internal/logger"
	"github.com/muhammadolammi/resumeascode/internal/resume"
	"github.com/muhammadolammi/resumeascode/internal/style"
)

const DefaultMaxIterations = 3

// Generator runs the analyze, generate, review and cover letter steps.
type Generator struct {
	client        llm.Client
	rules         style.Rules
	maxIterations int
}

type Option func(*Generator)

// WithMaxIterations bounds the number of content generations.
func WithMaxIterations(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxIterations = n
		}
	}
}

func New(client llm.Client, rules style.Rules, opts ...Option) *Generator {
	g := &Generator{client: client, rules: rules, maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the full pipeline. Content is regenerated with the review
// feedback until it is accepted and free of local style violations, or the
// iteration limit is reached; the last attempt is used either way.
func (g *Generator) Generate(ctx context.Context, profileName, jobDescription string, existing resume.ProfessionalExperience) (*Result, error) {
	start := time.Now()
	log := logger.G(ctx).WithField("profile", profileName)

	job, err := analysis.AnalyzeJobDescription(ctx, g.client, jobDescription)
	if err != nil {
		return nil, err
	}
	log.WithField("role", job.Title()).Info("job analyzed")

	experienceYAML, err := yaml.Marshal(existing)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode existing experience")
	}

	var (
		content    ResumeContent
		review     QualityReview
		violations []string
		feedback   []string
		iterations int
	)
	for iterations = 1; iterations <= g.maxIterations; iterations++ {
		content, err = g.generateContent(ctx, job, string(experienceYAML), feedback)
		if err != nil {
			return nil, err
		}
		review, err = g.reviewContent(ctx, job, content)
		if err != nil {
			return nil, err
		}

		violations = g.rules.ValidateBullets(content.Bullets())
		review.IssuesFound = append(review.IssuesFound, violations...)

		log.WithField("iteration", iterations).
			WithField("alignment_score", review.AlignmentScore).
			WithField("style_score", review.StyleComplianceScore).
			WithField("violations", len(violations)).
			Info("content reviewed")

		if review.Accepted() && len(violations) == 0 {
			break
		}
		feedback = append(append([]string{}, review.IssuesFound...), review.Suggestions...)
	}
	if iterations > g.maxIterations {
		iterations = g.maxIterations
		log.Warn("content did not pass review within the iteration limit, using last attempt")
	}

	letter, err := g.writeCoverLetter(ctx, job, content)
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:              uuid.New().String(),
		ProfileName:     profileName,
		JobAnalysis:     job,
		ResumeContent:   content,
		QualityReview:   review,
		LocalViolations: violations,
		CoverLetter:     letter,
		Iterations:      iterations,
		Duration:        time.Since(start),
	}, nil
}

func (g *Generator) generateContent(ctx context.Context, job analysis.JobAnalysisResult, experience string, feedback []string) (ResumeContent, error) {
	var b strings.Builder
	b.WriteString("Generate tailored resume content based on the job analysis.\n\n")
	b.WriteString("Using the candidate's existing experience below, reframe achievement bullets to align with the target job requirements. ")
	b.WriteString("Prioritize relevant skills and highlight matching technologies.\n\n")
	fmt.Fprintf(&b, "Job Analysis:\n%s\n\n", mustJSON(job))
	fmt.Fprintf(&b, "Candidate's Experience:\n%s\n", experience)
	b.WriteString(`Requirements:
1. Create a professional title for the header matching the target role
2. Write a 3-4 sentence professional summary emphasizing relevant experience
3. Reframe achievement bullets to highlight relevant impact
4. Select and organize skills by relevance to the target job
5. Use strong action verbs and quantify achievements with metrics
6. Keep company names, titles and dates exactly as in the existing experience (dates in YYYY-MM-DD format)
`)
	if len(feedback) > 0 {
		b.WriteString("\nThe previous draft was rejected in review. Fix these issues:\n")
		for _, f := range feedback {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	content, err := llm.GenerateStructured[ResumeContent](ctx, g.client, contentSystemPrompt(g.rules), b.String())
	return content, errors.Wrap(err, "content generation failed")
}

func (g *Generator) reviewContent(ctx context.Context, job analysis.JobAnalysisResult, content ResumeContent) (QualityReview, error) {
	prompt := fmt.Sprintf(`Review the generated resume content for quality and compliance.

Job Analysis:
%s

Resume Content:
%s

Evaluate:
1. Style Compliance: check for em dashes, first person, weak verbs and bullet length
2. Job Alignment: does the experience clearly match the job requirements? (rate 1-10)
3. Achievement Quality: are accomplishments quantified with metrics?
4. Action Verb Strength: are strong, varied action verbs used?
5. ATS Optimization: are key job keywords naturally integrated?

Style rules to check:
%s
Be thorough but fair. Only pass if alignment_score >= %d and style_compliance_score >= %d.`,
		mustJSON(job), mustJSON(content), g.rules.Guidelines(), minAlignmentScore, minStyleComplianceScore)

	review, err := llm.GenerateStructured[QualityReview](ctx, g.client, reviewerSystemPrompt, prompt)
	return review, errors.Wrap(err, "quality review failed")
}

func (g *Generator) writeCoverLetter(ctx context.Context, job analysis.JobAnalysisResult, content ResumeContent) (CoverLetter, error) {
	prompt := fmt.Sprintf(`Generate a compelling cover letter that complements the resume.

Job Analysis:
%s

Resume Content:
%s

Write a cover letter with:
1. Opening: a strong hook related to the company or a specific aspect of the role
2. Body (2-3 paragraphs): the 2-3 most relevant achievements with brief context, connected to the job responsibilities
3. Closing: genuine interest and a clear call to action

Keep it professional but conversational, 3-4 paragraphs in total, with specific examples over generalizations.
Avoid cliches such as "passionate team player" or "hit the ground running".`,
		mustJSON(job), mustJSON(content))

	letter, err := llm.GenerateStructured[CoverLetter](ctx, g.client, coverLetterSystemPrompt, prompt)
	return letter, errors.Wrap(err, "cover letter generation failed")
}

func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
