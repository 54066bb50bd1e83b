package convert

import (
	"context"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/llm"
	"github.com/muhammadolammi/resumeascode/internal/resume"
)

// CVExperience is one work entry as extracted by the model. Dates stay
// strings until ToExperience validates them.
type CVExperience struct {
	Company      string   `json:"company" jsonschema_description:"Company name"`
	Title        string   `json:"title" jsonschema_description:"Job title"`
	Location     string   `json:"location,omitempty" jsonschema_description:"Location (City, State/Country)"`
	StartDate    string   `json:"start_date" jsonschema_description:"Start date in YYYY-MM-DD format"`
	EndDate      string   `json:"end_date,omitempty" jsonschema_description:"End date in YYYY-MM-DD format, empty if current"`
	Current      bool     `json:"current" jsonschema_description:"Whether this is a current position"`
	Achievements []string `json:"achievements" jsonschema_description:"Achievement bullets"`
	Technologies []string `json:"technologies" jsonschema_description:"Technologies, tools and skills used"`
}

// CVData is the full extraction result.
type CVData struct {
	Experiences []CVExperience `json:"experiences" jsonschema_description:"Work experience entries in reverse chronological order"`
}

// ToExperience parses the dates and returns the resume model entry.
func (c CVExperience) ToExperience() (resume.Experience, error) {
	start, err := resume.ParseDate(c.StartDate)
	if err != nil {
		return resume.Experience{}, errors.Wrapf(err, "%s: start_date", c.Company)
	}
	exp := resume.Experience{
		Company:      c.Company,
		Title:        c.Title,
		Location:     c.Location,
		StartDate:    start,
		Current:      c.Current,
		Achievements: nonNil(c.Achievements),
		Technologies: nonNil(c.Technologies),
	}
	if c.EndDate != "" && !c.Current {
		end, err := resume.ParseDate(c.EndDate)
		if err != nil {
			return resume.Experience{}, errors.Wrapf(err, "%s: end_date", c.Company)
		}
		exp.EndDate = &end
	}
	return exp, nil
}

// ToExperience converts every entry; the first bad date aborts.
func (d CVData) ToExperience() (resume.ProfessionalExperience, error) {
	pe := resume.ProfessionalExperience{Experiences: make([]resume.Experience, 0, len(d.Experiences))}
	for _, c := range d.Experiences {
		exp, err := c.ToExperience()
		if err != nil {
			return resume.ProfessionalExperience{}, err
		}
		pe.Experiences = append(pe.Experiences, exp)
	}
	return pe, nil
}

// CVParserPrompt is the system prompt used to structure CV text.
const CVParserPrompt = `You are an expert at parsing resumes and CVs into structured data.

Your task is to extract work experience from the provided CV text and structure it properly.

For each job or position, extract:
1. Company name: full company name
2. Title: job title or position
3. Location: City, State/Country (if available)
4. Start date: in YYYY-MM-DD format (use YYYY-MM-01 if only month and year are known)
5. End date: in YYYY-MM-DD format, or empty if this is the current position
6. Current: true if this is a current position, false otherwise
7. Achievements: bullet points describing accomplishments, responsibilities and impact.
   Keep the original phrasing and metrics. Each bullet should be a complete sentence or phrase.
8. Technologies: technologies, tools, programming languages and frameworks mentioned

Important:
- Extract experiences in reverse chronological order (most recent first)
- Preserve specific numbers, metrics and percentages from the original CV
- If dates are vague (e.g. "2020"), use "2020-01-01" for the start date
- For "Present" or "Current" positions leave end_date empty and set current to true
- Be comprehensive and include all work experience found
- For technologies, extract specific tools and languages, not generic terms

Example date conversions:
- "January 2020" becomes "2020-01-01"
- "Jan 2020 - Dec 2020" becomes start_date "2020-01-01", end_date "2020-12-31"
- "2020 - Present" becomes start_date "2020-01-01", empty end_date, current true`

// ConvertText structures raw CV text with the model.
func ConvertText(ctx context.Context, client llm.Client, text string) (CVData, error) {
	data, err := llm.GenerateStructured[CVData](ctx, client, CVParserPrompt, text)
	if err != nil {
		return CVData{}, errors.Wrap(err, "AI conversion failed")
	}
	return data, nil
}

// ConvertFile extracts text from path and structures it.
func ConvertFile(ctx context.Context, client llm.Client, path string) (CVData, error) {
	text, err := ExtractFile(path)
	if err != nil {
		return CVData{}, err
	}
	return ConvertText(ctx, client, text)
}

// WriteYAML validates the dates and writes an experience.yml compatible file.
func (d CVData) WriteYAML(path string) (resume.ProfessionalExperience, error) {
	pe, err := d.ToExperience()
	if err != nil {
		return resume.ProfessionalExperience{}, err
	}
	if err := resume.SaveYAML(path, pe); err != nil {
		return resume.ProfessionalExperience{}, err
	}
	return pe, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
