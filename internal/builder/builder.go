// Package builder renders resumes to HTML and PDF.
package builder

import (
	"bytes"
	"embed"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/resume"
)

const (
	FormatHTML = "html"
	FormatPDF  = "pdf"

	defaultTemplate = "templates/resume.html.tmpl"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

//go:embed templates/*.tmpl
var templateFS embed.FS

// Builder renders a resume through an html/template.
type Builder struct {
	tmpl *template.Template
}

// New returns a builder using the embedded default template.
func New() (*Builder, error) {
	tmpl, err := template.New(filepath.Base(defaultTemplate)).Funcs(templateFuncs()).ParseFS(templateFS, defaultTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse embedded template")
	}
	return &Builder{tmpl: tmpl}, nil
}

// NewFromFile returns a builder using the template at path.
func NewFromFile(path string) (*Builder, error) {
	tmpl, err := template.New(filepath.Base(path)).Funcs(templateFuncs()).ParseFiles(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse template %s", path)
	}
	return &Builder{tmpl: tmpl}, nil
}

// BuildHTML renders r to an HTML document.
func (b *Builder) BuildHTML(r *resume.Resume) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, r); err != nil {
		return "", errors.Wrap(err, "failed to render template")
	}
	return buf.String(), nil
}

// WriteHTML writes a rendered document to path, creating its directory.
func WriteHTML(html, path string) error {
	return resume.WriteText(path, html)
}

// OutputPath returns <outputDir>/<profile>_resume.<format>.
func OutputPath(outputDir, profile, format string) (string, error) {
	if format != FormatHTML && format != FormatPDF {
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return filepath.Join(outputDir, profile+"_resume."+format), nil
}

// EnsureDir creates dir when missing.
func EnsureDir(dir string) error {
	return errors.Wrapf(os.MkdirAll(dir, 0o755), "failed to create %s", dir)
}

// ParseFormats splits a comma separated format list. "both" expands to html
// and pdf. Unknown entries are returned separately so callers can report
// them. Duplicates are dropped.
func ParseFormats(s string) (formats []string, unknown []string) {
	seen := map[string]bool{}
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	for _, f := range strings.Split(s, ",") {
		switch f = strings.ToLower(strings.TrimSpace(f)); f {
		case "":
		case "both":
			add(FormatHTML)
			add(FormatPDF)
		case FormatHTML, FormatPDF:
			add(f)
		default:
			unknown = append(unknown, f)
		}
	}
	return formats, unknown
}
