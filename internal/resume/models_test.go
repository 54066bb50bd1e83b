package resume

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResume() *Resume {
	end := NewDate(2023, time.December, 31)
	return &Resume{
		Header: Header{
			Name:  "John Doe",
			Title: "Software Engineer",
			Contact: ContactInfo{
				Email:    "john@example.com",
				LinkedIn: "https://linkedin.com/in/johndoe",
			},
		},
		Summary: Summary{Content: "Experienced engineer."},
		Experience: ProfessionalExperience{Experiences: []Experience{{
			Company:   "Tech Corp",
			Title:     "Senior Engineer",
			StartDate: NewDate(2020, time.January, 1),
			EndDate:   &end,
		}}},
		Skills: Skills{Skills: []Skill{
			{Name: "Python", Category: "Programming"},
			{Name: "Kubernetes", Category: "Infrastructure"},
			{Name: "Go", Category: "Programming"},
			{Name: "Writing"},
		}},
	}
}

func TestSkillsHelpers(t *testing.T) {
	s := sampleResume().Skills

	assert.Equal(t, []string{"Python", "Kubernetes", "Go", "Writing"}, s.Names())
	assert.Len(t, s.ByCategory("Programming"), 2)
	assert.Empty(t, s.ByCategory("Cloud"))
	assert.Equal(t, []string{"Programming", "Infrastructure", OtherCategory}, s.Categories())
}

func TestValidate(t *testing.T) {
	r := sampleResume()
	require.NoError(t, r.Validate())

	r.Header.Contact.Email = "not-an-email"
	r.Header.Contact.GitHub = "github.com/johndoe"
	r.Summary.Content = ""
	r.Skills.Skills = append(r.Skills.Skills, Skill{})
	r.Footer = &Footer{}

	err := r.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "invalid email")
	assert.Contains(t, msg, "github must be an http(s) URL")
	assert.Contains(t, msg, "summary: content is required")
	assert.Contains(t, msg, "skills[4]: name is required")
	assert.Contains(t, msg, "footer: text is required")
}

func TestValidate_EndBeforeStart(t *testing.T) {
	r := sampleResume()
	early := NewDate(2019, time.March, 1)
	r.Experience.Experiences[0].EndDate = &early

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_date is before start_date")
}

func TestValidate_ErrorsCarryStack(t *testing.T) {
	r := sampleResume()
	r.Header.Name = ""
	r.Experience.Experiences[0].Company = ""

	err := r.Validate()
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	for _, e := range merr.Errors {
		_, ok := e.(interface{ StackTrace() errors.StackTrace })
		assert.True(t, ok, "%v has no stack trace", e)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2021-07-15")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2021, time.July, 15), d)

	d, err = ParseDate("2021-07")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2021, time.July, 1), d)

	_, err = ParseDate("July 2021")
	assert.Error(t, err)
}

func TestDateEncoding(t *testing.T) {
	exp := Experience{Company: "A", Title: "B", StartDate: NewDate(2020, time.February, 3)}

	out, err := yaml.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(out), "2020-02-03")
	assert.NotContains(t, string(out), "end_date")

	raw, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"start_date":"2020-02-03"`)

	var back Experience
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, exp.StartDate, back.StartDate)
}
