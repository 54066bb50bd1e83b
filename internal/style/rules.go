// Package style validates achievement bullets against configurable resume
// writing rules and renders those rules as guidance for content generation.
package style

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muhammadolammi/resumeascode/internal/resume"
)

const (
	emDash = "—"
	enDash = "–"

	previewLen = 50
)

var (
	weakStarts = []string{
		"responsible for",
		"duties included",
		"worked on",
		"helped with",
	}

	firstPersonRe = regexp.MustCompile(`(?i)\b(I|my|mine|we|our|ours)\b`)
)

// DefaultBuzzwords are rejected unless the caller overrides them.
var DefaultBuzzwords = []string{"synergy", "rockstar", "ninja", "guru", "wizard", "unicorn"}

// Rules is the set of style constraints applied to generated content.
type Rules struct {
	NoEmDashes           bool     `mapstructure:"no_em_dashes" yaml:"no_em_dashes"`
	NoEnDashes           bool     `mapstructure:"no_en_dashes" yaml:"no_en_dashes"`
	BulletEndPunctuation string   `mapstructure:"bullet_end_punctuation" yaml:"bullet_end_punctuation"`
	MaxBulletLength      int      `mapstructure:"max_bullet_length" yaml:"max_bullet_length"`
	ActionVerbStart      bool     `mapstructure:"action_verb_start" yaml:"action_verb_start"`
	NoFirstPerson        bool     `mapstructure:"no_first_person" yaml:"no_first_person"`
	QuantifyAchievements bool     `mapstructure:"quantify_achievements" yaml:"quantify_achievements"`
	NoBuzzwords          []string `mapstructure:"no_buzzwords" yaml:"no_buzzwords"`
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		NoEmDashes:           true,
		MaxBulletLength:      120,
		ActionVerbStart:      true,
		NoFirstPerson:        true,
		QuantifyAchievements: true,
		NoBuzzwords:          append([]string(nil), DefaultBuzzwords...),
	}
}

// ValidateBullet returns one message per rule the bullet breaks.
func (r Rules) ValidateBullet(bullet string) []string {
	var violations []string
	p := preview(bullet)

	if r.NoEmDashes && strings.Contains(bullet, emDash) {
		violations = append(violations, fmt.Sprintf("Em dash (%s) found: %s", emDash, p))
	}
	if r.NoEnDashes && strings.Contains(bullet, enDash) {
		violations = append(violations, fmt.Sprintf("En dash (%s) found: %s", enDash, p))
	}

	if n := utf8.RuneCountInString(bullet); r.MaxBulletLength > 0 && n > r.MaxBulletLength {
		violations = append(violations, fmt.Sprintf("Bullet too long (%d chars, max %d): %s", n, r.MaxBulletLength, p))
	}

	if r.ActionVerbStart {
		first, _ := utf8.DecodeRuneInString(bullet)
		if bullet == "" || !unicode.IsUpper(first) {
			violations = append(violations, fmt.Sprintf("Bullet doesn't start with capital letter: %s", p))
		}
		lower := strings.ToLower(bullet)
		for _, weak := range weakStarts {
			if strings.HasPrefix(lower, weak) {
				violations = append(violations, fmt.Sprintf("Weak action verb: %s", p))
				break
			}
		}
	}

	if r.NoFirstPerson && firstPersonRe.MatchString(bullet) {
		violations = append(violations, fmt.Sprintf("First person pronoun found: %s", p))
	}

	lower := strings.ToLower(bullet)
	for _, word := range r.NoBuzzwords {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			violations = append(violations, fmt.Sprintf("Buzzword '%s' found: %s", word, p))
		}
	}

	if r.BulletEndPunctuation != "" && !strings.HasSuffix(bullet, r.BulletEndPunctuation) {
		violations = append(violations, fmt.Sprintf("Bullet doesn't end with '%s': %s", r.BulletEndPunctuation, p))
	}

	return violations
}

// ValidateBullets checks each bullet and concatenates the violations in order.
func (r Rules) ValidateBullets(bullets []string) []string {
	var all []string
	for _, b := range bullets {
		all = append(all, r.ValidateBullet(b)...)
	}
	return all
}

// ValidateContent checks the achievement bullets of every experience entry.
func (r Rules) ValidateContent(experiences []resume.Experience) []string {
	var all []string
	for _, e := range experiences {
		all = append(all, r.ValidateBullets(e.Achievements)...)
	}
	return all
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) > previewLen {
		runes = runes[:previewLen]
	}
	return string(runes) + "..."
}
