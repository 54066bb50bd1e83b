package builder

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/muhammadolammi/resumeascode/internal/resume"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": formatDate,
		"endDate":    endDate,
		"join":       strings.Join,
		"lower":      strings.ToLower,
		"hostPath":   hostPath,
		"skillsIn":   skillsIn,
		"skillNames": skillNames,
	}
}

func formatDate(d resume.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2006")
}

func endDate(e resume.Experience) string {
	if e.IsCurrent() {
		return "Present"
	}
	return formatDate(*e.EndDate)
}

// hostPath strips the scheme and trailing slash, e.g.
// "https://github.com/jdoe/" becomes "github.com/jdoe".
func hostPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimSuffix(strings.TrimPrefix(u.Host, "www.")+u.Path, "/")
}

// skillsIn is Skills.ByCategory with uncategorized skills listed under Other.
func skillsIn(s resume.Skills, category string) []resume.Skill {
	if category != resume.OtherCategory {
		return s.ByCategory(category)
	}
	return append(s.ByCategory(""), s.ByCategory(resume.OtherCategory)...)
}

func skillNames(skills []resume.Skill) []string {
	return resume.Skills{Skills: skills}.Names()
}
