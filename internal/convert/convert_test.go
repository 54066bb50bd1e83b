package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/resumeascode/internal/llm/llmtest"
	"github.com/muhammadolammi/resumeascode/internal/resume"
)

func TestDetectMime(t *testing.T) {
	assert.Equal(t, MimePDF, DetectMime("cv.PDF", nil))
	assert.Equal(t, MimeDOCX, DetectMime("cv.docx", nil))
	assert.Equal(t, MimeMarkdown, DetectMime("cv.md", nil))
	assert.Equal(t, MimeHTML, DetectMime("posting.htm", nil))
	assert.Equal(t, MimeText, DetectMime("cv", []byte("plain words")))
}

func TestExtractText(t *testing.T) {
	text, err := ExtractText(MimeText, []byte("Senior Engineer at Tech Corp"))
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer at Tech Corp", text)

	text, err = ExtractText(MimeHTML, []byte("<p><strong>Tech Corp</strong></p>"))
	require.NoError(t, err)
	assert.Equal(t, "**Tech Corp**", text)

	_, err = ExtractText(MimeText, []byte("  \n "))
	assert.True(t, errors.Is(err, ErrNoText))

	_, err = ExtractText("image/png", []byte{0x89})
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestExtractText_InvalidPDF(t *testing.T) {
	_, err := ExtractText(MimePDF, []byte("not a pdf"))
	assert.Error(t, err)
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.True(t, errors.Is(err, resume.ErrFileNotFound))
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:document><w:body><w:p><w:r><w:t>Tech Corp</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Led</w:t><w:tab/><w:t>R&amp;D team</w:t></w:r></w:p><w:p></w:p></w:body></w:document>`

	assert.Equal(t, "Tech Corp\nLed\tR&D team", docxXMLToText(xml))
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "/tmp/Tom-Drake-CV.yml", DefaultOutputPath("/tmp/Tom-Drake-CV.pdf"))
	assert.Equal(t, "cv.yml", DefaultOutputPath("cv"))
}

const cvJSON = `{"experiences": [
	{"company": "Tech Corp", "title": "Senior Engineer", "location": "Remote",
	 "start_date": "2020-01-01", "end_date": "", "current": true,
	 "achievements": ["Cut deploy time by 60%"], "technologies": ["Go"]},
	{"company": "Startup Inc", "title": "Engineer",
	 "start_date": "2017-03-01", "end_date": "2019-12-31", "current": false,
	 "achievements": [], "technologies": null}
]}`

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(input, []byte("Tech Corp, Senior Engineer, 2020 - Present"), 0o644))
	fake := &llmtest.Fake{Responses: []string{cvJSON}}

	data, err := ConvertFile(context.Background(), fake, input)
	require.NoError(t, err)
	require.Len(t, data.Experiences, 2)
	assert.Equal(t, CVParserPrompt, fake.Requests()[0].System)
	assert.Contains(t, fake.Requests()[0].Prompt, "2020 - Present")

	out := DefaultOutputPath(input)
	pe, err := data.WriteYAML(out)
	require.NoError(t, err)
	require.Len(t, pe.Experiences, 2)
	assert.Nil(t, pe.Experiences[0].EndDate)
	require.NotNil(t, pe.Experiences[1].EndDate)
	assert.Equal(t, resume.NewDate(2019, time.December, 31), *pe.Experiences[1].EndDate)
	assert.Equal(t, []string{}, pe.Experiences[1].Technologies)

	var back resume.ProfessionalExperience
	require.NoError(t, resume.LoadYAML(out, &back))
	assert.Equal(t, "Tech Corp", back.Experiences[0].Company)
	assert.Equal(t, resume.NewDate(2017, time.March, 1), back.Experiences[1].StartDate)
}

func TestCVExperience_BadDate(t *testing.T) {
	_, err := CVExperience{Company: "X", StartDate: "sometime"}.ToExperience()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X: start_date")
}
