package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	commonHeaderYAML = `name: John Doe
title: Software Engineer
contact:
  email: john@example.com
  phone: "+1-555-0100"
  linkedin: https://linkedin.com/in/johndoe
  github: https://github.com/johndoe
  website: https://johndoe.dev
  location: San Francisco, CA
`
	commonExperienceYAML = `experiences:
  - company: Tech Corp
    title: Senior Engineer
    location: San Francisco, CA
    start_date: 2020-01-01
    end_date: 2023-12-31
    current: false
    achievements:
      - Built scalable microservices architecture
      - Led team of 5 engineers
    technologies: [Python, Kubernetes, AWS]
  - company: Startup Inc
    title: Software Engineer
    location: Remote
    start_date: "2018-01-01"
    current: true
    achievements: [Developed REST APIs, Improved test coverage]
    technologies: [Python, Django, PostgreSQL]
`
	commonSkillsYAML = `# primary skills
skills:
  - name: Python
    category: Programming
    proficiency: Expert
  - name: Kubernetes
    category: Infrastructure
    proficiency: Advanced
  - name: pytest
    category: Testing
    proficiency: Expert
  - name: AWS
    category: Cloud
    proficiency: Advanced
`
	footerYAML = `text: Built with Resume as Code
link: https://github.com/example/resume-as-code
link_text: View on GitHub
`
	summaryYAML = "content: Experienced software engineer with 10+ years of experience.\n"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newDataDir builds a data directory with a complete common/ set and a
// "sre" profile containing only a summary.
func newDataDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(dir, "common", "header.yml"), commonHeaderYAML)
	writeFile(t, filepath.Join(dir, "common", "experience.yml"), commonExperienceYAML)
	writeFile(t, filepath.Join(dir, "common", "skills.yml"), commonSkillsYAML)
	writeFile(t, filepath.Join(dir, "profiles", "sre", "summary.yml"), summaryYAML)
	return dir
}
