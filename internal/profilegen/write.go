package profilegen

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/resume"
)

// WriteProfile writes the generated profile under
// <dataDir>/profiles/<result.ProfileName> and returns the written paths in
// order.
func WriteProfile(dataDir string, result *Result, jobDescription string) ([]string, error) {
	if result.ProfileName == "" {
		return nil, errors.New("profile name is empty")
	}
	dir := filepath.Join(dataDir, resume.ProfilesDir, result.ProfileName)
	content := result.ResumeContent

	experience := resume.ProfessionalExperience{Experiences: make([]resume.Experience, 0, len(content.Experiences))}
	for _, e := range content.Experiences {
		exp, err := e.ToExperience()
		if err != nil {
			return nil, errors.Wrap(err, "generated experience has an invalid date")
		}
		experience.Experiences = append(experience.Experiences, exp)
	}

	var written []string
	save := func(name string, v any) error {
		path := filepath.Join(dir, name)
		if err := resume.SaveYAML(path, v); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}
	write := func(name, text string) error {
		path := filepath.Join(dir, name)
		if err := resume.WriteText(path, text); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	header := struct {
		Title string `yaml:"title"`
	}{content.HeaderTitle}

	steps := []func() error{
		func() error { return save("header.yml", header) },
		func() error { return save("summary.yml", resume.Summary{Content: content.Summary}) },
		func() error { return save("experience.yml", experience) },
		func() error { return save("skills.yml", resume.Skills{Skills: content.Skills}) },
		func() error { return write("job.txt", jobDescription) },
		func() error { return write(CoverLetterFile, result.CoverLetter.ToMarkdown()) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return written, err
		}
	}
	return written, nil
}

// CoverLetterFile is the cover letter's file name inside a profile.
const CoverLetterFile = "cover_letter.md"
