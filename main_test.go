package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/resumeascode/internal/builder"
	"github.com/muhammadolammi/resumeascode/internal/llm"
	"github.com/muhammadolammi/resumeascode/internal/logger"
)

const (
	headerYAML = `name: John Doe
title: Software Engineer
contact:
  email: john@example.com
  linkedin: https://linkedin.com/in/johndoe
  location: San Francisco, CA
`
	experienceYAML = `experiences:
  - company: Tech Corp
    title: Senior Engineer
    start_date: 2020-01-01
    current: true
    achievements:
      - Reduced deploy time by 60% across 40 services
    technologies: [Python, Kubernetes]
`
	skillsYAML = `skills:
  - name: Python
    category: Programming
    proficiency: Expert
  - name: Kubernetes
    category: Infrastructure
    proficiency: Advanced
  - name: AWS
    category: Cloud
    proficiency: Advanced
`
	summaryYAML = "content: Reliability engineer with 8 years of experience.\n"
	jobText     = "We are hiring a Senior SRE. You know Python and Go. AWS is a plus.\n"

	jobJSON = `{"required_skills": ["Python", "Go"], "preferred_skills": ["AWS"],
		"key_responsibilities": ["Run production"], "role_level": "Senior", "role_type": "SRE"}`
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newDataDir builds <tmp>/data with common files and an "sre" profile that
// has a summary and a job description.
func newDataDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(dir, "common", "header.yml"), headerYAML)
	writeFile(t, filepath.Join(dir, "common", "experience.yml"), experienceYAML)
	writeFile(t, filepath.Join(dir, "common", "skills.yml"), skillsYAML)
	writeFile(t, filepath.Join(dir, "profiles", "sre", "summary.yml"), summaryYAML)
	writeFile(t, filepath.Join(dir, "profiles", "sre", "job.txt"), jobText)
	return dir
}

func swap[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func useLLM(t *testing.T, client llm.Client) {
	swap(t, &newLLMClient, func(context.Context) (llm.Client, error) { return client, nil })
}

type fakeRenderer struct{}

func (fakeRenderer) RenderPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type fakeStore struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeStore) Bucket() string { return "resumes-test" }

func (f *fakeStore) Upload(_ context.Context, key string, body []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = body
	f.contentTypes[key] = contentType
	return nil
}

func (f *fakeStore) Download(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func useStore(t *testing.T, store objectStore) {
	swap(t, &newStore, func(context.Context) (objectStore, error) { return store, nil })
}

// resetFlags restores every flag to its default so executions do not leak
// into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)
	logger.SetLogOutput(io.Discard)
	swap(t, &newPDFRenderer, func() builder.PDFRenderer { return fakeRenderer{} })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
