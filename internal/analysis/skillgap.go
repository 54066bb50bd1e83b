package analysis

import (
	"fmt"
	"math"
	"strings"
)

// SkillGapAnalysis compares resume skills with a job's requirements.
type SkillGapAnalysis struct {
	MissingRequiredSkills  []string `json:"missing_required_skills"`
	MissingPreferredSkills []string `json:"missing_preferred_skills"`
	MatchingSkills         []string `json:"matching_skills"`
	SkillMatchPercentage   float64  `json:"skill_match_percentage"`
	Recommendations        []string `json:"recommendations"`
}

const (
	goodMatchThreshold  = 70.0
	fairMatchThreshold  = 50.0
	strongMatchRatio    = 0.8
	fewPreferredMissing = 3
)

// CompareSkills matches skills case-insensitively. Output lists keep the
// job's spelling and order. With no required skills the match is 100%.
func CompareSkills(resumeSkills, required, preferred []string) SkillGapAnalysis {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[strings.ToLower(s)] = true
	}

	gap := SkillGapAnalysis{
		MissingRequiredSkills:  []string{},
		MissingPreferredSkills: []string{},
		MatchingSkills:         []string{},
		Recommendations:        []string{},
	}
	for _, s := range required {
		if have[strings.ToLower(s)] {
			gap.MatchingSkills = append(gap.MatchingSkills, s)
		} else {
			gap.MissingRequiredSkills = append(gap.MissingRequiredSkills, s)
		}
	}
	for _, s := range preferred {
		if !have[strings.ToLower(s)] {
			gap.MissingPreferredSkills = append(gap.MissingPreferredSkills, s)
		}
	}

	pct := 100.0
	if len(required) > 0 {
		pct = float64(len(gap.MatchingSkills)) / float64(len(required)) * 100
	}
	gap.SkillMatchPercentage = math.RoundToEven(pct*10) / 10

	if n := len(gap.MissingRequiredSkills); n > 0 {
		gap.Recommendations = append(gap.Recommendations,
			fmt.Sprintf("Consider adding these %d required skills to your resume", n))
	}
	if pct < goodMatchThreshold {
		gap.Recommendations = append(gap.Recommendations,
			"Your resume matches less than 70% of required skills - consider tailoring it more")
	}
	if float64(len(gap.MatchingSkills)) >= float64(len(required))*strongMatchRatio {
		gap.Recommendations = append(gap.Recommendations,
			"Strong skill match! Highlight your experience with matching skills")
	}
	if n := len(gap.MissingPreferredSkills); n > 0 && n <= fewPreferredMissing {
		gap.Recommendations = append(gap.Recommendations,
			"Consider highlighting any experience with the preferred skills")
	}

	return gap
}

// Band classifies a match percentage for display.
type Band string

const (
	BandGreen  Band = "green"
	BandYellow Band = "yellow"
	BandRed    Band = "red"
)

// MatchBand classifies pct against the good and fair match thresholds.
func MatchBand(pct float64) Band {
	switch {
	case pct >= goodMatchThreshold:
		return BandGreen
	case pct >= fairMatchThreshold:
		return BandYellow
	default:
		return BandRed
	}
}
