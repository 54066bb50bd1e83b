package builder

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
)

var coverLetterTmpl = template.Must(template.New("cover_letter").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
  @page { size: Letter; margin: 1in; }
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11pt; color: #222; line-height: 1.5; }
  p { margin: 0 0 12px; }
</style>
</head>
<body>
{{ .Body }}
</body>
</html>
`))

// RenderCoverLetter converts a markdown cover letter into a standalone HTML
// document.
func RenderCoverLetter(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &body); err != nil {
		return "", errors.Wrap(err, "failed to convert cover letter markdown")
	}

	var out bytes.Buffer
	err := coverLetterTmpl.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body.String())})
	if err != nil {
		return "", errors.Wrap(err, "failed to render cover letter")
	}
	return out.String(), nil
}
