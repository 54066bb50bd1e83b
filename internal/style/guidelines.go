package style

import (
	"fmt"
	"strings"
)

// Guidelines renders the active rules as instructions for a content writer.
func (r Rules) Guidelines() string {
	var b strings.Builder
	b.WriteString("CRITICAL STYLE RULES (MUST FOLLOW):\n")
	if r.NoEmDashes || r.NoEnDashes {
		b.WriteString("- NEVER use em dashes (—) or en dashes (–)\n")
		b.WriteString("- Use commas or parentheses for clauses instead of dashes\n")
	}
	if r.ActionVerbStart {
		b.WriteString("- Start every bullet with a strong action verb in the past tense\n")
		fmt.Fprintf(&b, "- Prefer verbs such as: %s\n", strings.Join(sampleVerbs(), ", "))
	}
	if r.NoFirstPerson {
		b.WriteString("- NO first-person pronouns (I, my, we, our)\n")
	}
	if r.MaxBulletLength > 0 {
		fmt.Fprintf(&b, "- Keep bullets under %d characters\n", r.MaxBulletLength)
	}
	if r.QuantifyAchievements {
		b.WriteString("- Quantify achievements with metrics whenever possible (numbers, percentages, time saved)\n")
	}
	if len(r.NoBuzzwords) > 0 {
		fmt.Fprintf(&b, "- Avoid buzzwords: %s\n", strings.Join(r.NoBuzzwords, ", "))
	}
	if r.BulletEndPunctuation != "" {
		fmt.Fprintf(&b, "- End every bullet with %q\n", r.BulletEndPunctuation)
	}
	b.WriteString("- Focus on IMPACT and OUTCOMES, not just tasks\n")
	return b.String()
}

func sampleVerbs() []string {
	var out []string
	for _, c := range Categories() {
		verbs := ActionVerbs(c)
		if len(verbs) > 2 {
			verbs = verbs[:2]
		}
		out = append(out, verbs...)
	}
	return out
}
