// Package analysis extracts structured requirements from job descriptions and
// compares them with a candidate's skills.
package analysis

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/llm"
)

// JobAnalysisResult is the structured breakdown of a job description.
type JobAnalysisResult struct {
	RequiredSkills      []string `json:"required_skills" jsonschema_description:"Required or must-have technical skills, tools and technologies"`
	PreferredSkills     []string `json:"preferred_skills" jsonschema_description:"Preferred or nice-to-have skills"`
	KeyResponsibilities []string `json:"key_responsibilities" jsonschema_description:"The 5-7 most important duties of the role"`
	RoleLevel           string   `json:"role_level" jsonschema_description:"Seniority level such as Senior, Staff, Lead, Director or VP"`
	RoleType            string   `json:"role_type" jsonschema_description:"Primary role type such as SRE, QE, SDET or Engineering Manager"`
	CompanyCulture      []string `json:"company_culture,omitempty" jsonschema_description:"Cultural indicators or values mentioned in the posting"`
}

// Title is the role level and type joined, e.g. "Senior SRE".
func (r JobAnalysisResult) Title() string {
	return strings.TrimSpace(r.RoleLevel + " " + r.RoleType)
}

// JobAnalyzerPrompt is the system prompt of the job analysis step.
const JobAnalyzerPrompt = `You are an expert technical recruiter and job description analyzer with 15 years of
experience reviewing postings for engineering roles across software development, DevOps, SRE and QE.
Your task is to carefully parse job descriptions and extract key information.

Focus on:
1. Required Skills: technical skills, tools and technologies that are mandatory
2. Preferred Skills: nice-to-have skills mentioned as preferred or bonus
3. Key Responsibilities: main duties and responsibilities (limit to the 5-7 most important)
4. Role Level: the seniority level of the position (Junior, Mid, Senior, Staff, Principal, Director, VP)
5. Role Type: the primary type of engineering role (SDET, SRE, QE Leadership, DevOps, Engineering Manager, etc.)
6. Company Culture: any cultural indicators or values mentioned

Be precise and extract actual skills and tools mentioned, not generic statements.
For example "Kubernetes", "Python" and "AWS" are specific skills.
Avoid soft skills such as "strong communication skills" or "team player".`

// AnalyzeJobDescription asks the model to break the job description down.
func AnalyzeJobDescription(ctx context.Context, client llm.Client, jobDescription string) (JobAnalysisResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return JobAnalysisResult{}, errors.New("job description is empty")
	}
	prompt := "Analyze this job description and extract key information:\n\n" + jobDescription
	res, err := llm.GenerateStructured[JobAnalysisResult](ctx, client, JobAnalyzerPrompt, prompt)
	if err != nil {
		return JobAnalysisResult{}, errors.Wrap(err, "job analysis failed")
	}
	return res, nil
}
