package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTest(input string) (*Presenter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewWithOptions(&out, &errOut, strings.NewReader(input)), &out, &errOut
}

func TestMessages(t *testing.T) {
	p, out, errOut := newTest("")

	p.Success("Resume generated")
	p.Warning("OPENAI_API_KEY not set")
	p.Field("Title", "Senior SRE")
	p.Bullets([]string{"one", "two"})
	p.Error(errors.New("boom"), "build failed")
	p.Error(nil, "ignored")

	assert.Contains(t, out.String(), "✓ Resume generated")
	assert.Contains(t, out.String(), "⚠ OPENAI_API_KEY not set")
	assert.Contains(t, out.String(), "Title: Senior SRE")
	assert.Contains(t, out.String(), "  • two")
	assert.Equal(t, 1, strings.Count(errOut.String(), "\n"))
	assert.Contains(t, errOut.String(), "build failed: boom")
}

func TestQuiet(t *testing.T) {
	p, out, errOut := newTest("")
	p.SetQuiet(true)

	p.Info("hidden")
	p.Error(errors.New("shown"), "")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "shown")
}

func TestTableAndPanel(t *testing.T) {
	p, out, _ := newTest("")

	p.Table("Skills Analysis", []string{"Category", "Count"}, [][]string{{"Matching Skills", "3"}})
	p.Panel("Skill Match Percentage", "66.7%", Yellow)

	assert.Contains(t, out.String(), "Skills Analysis")
	assert.Contains(t, out.String(), "Matching Skills")
	assert.Contains(t, out.String(), "66.7%")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"no\n", true, false},
		{"\n", true, true},
		{"", false, false},
		{"", true, false},
		{"yes", false, true},
		{"maybe\n", true, true},
	}
	for _, tt := range tests {
		p, _, _ := newTest(tt.input)
		assert.Equal(t, tt.want, p.Confirm("Write profile files to disk?", tt.def), "input %q", tt.input)
	}
}
