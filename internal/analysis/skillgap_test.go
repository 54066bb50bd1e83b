package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareSkills(t *testing.T) {
	resumeSkills := []string{"Python", "kubernetes", "AWS", "Terraform"}
	required := []string{"Python", "Kubernetes", "Go", "AWS", "Kafka"}
	preferred := []string{"terraform", "Rust"}

	gap := CompareSkills(resumeSkills, required, preferred)

	assert.Equal(t, []string{"Python", "Kubernetes", "AWS"}, gap.MatchingSkills)
	assert.Equal(t, []string{"Go", "Kafka"}, gap.MissingRequiredSkills)
	assert.Equal(t, []string{"Rust"}, gap.MissingPreferredSkills)
	assert.Equal(t, 60.0, gap.SkillMatchPercentage)
	assert.Equal(t, []string{
		"Consider adding these 2 required skills to your resume",
		"Your resume matches less than 70% of required skills - consider tailoring it more",
		"Consider highlighting any experience with the preferred skills",
	}, gap.Recommendations)
}

func TestCompareSkills_NoRequired(t *testing.T) {
	gap := CompareSkills([]string{"Go"}, nil, nil)

	assert.Equal(t, 100.0, gap.SkillMatchPercentage)
	assert.Empty(t, gap.MatchingSkills)
	assert.NotNil(t, gap.MatchingSkills)
	assert.Equal(t, []string{"Strong skill match! Highlight your experience with matching skills"}, gap.Recommendations)
}

func TestCompareSkills_Rounding(t *testing.T) {
	gap := CompareSkills([]string{"a"}, []string{"a", "b", "c"}, nil)

	assert.Equal(t, 33.3, gap.SkillMatchPercentage)
}

func TestCompareSkills_HalvesRoundToEven(t *testing.T) {
	required := make([]string, 16)
	for i := range required {
		required[i] = fmt.Sprintf("skill-%d", i)
	}
	tests := []struct {
		have int
		want float64
	}{
		{1, 6.2},
		{3, 18.8},
		{5, 31.2},
	}
	for _, tt := range tests {
		gap := CompareSkills(required[:tt.have], required, nil)
		assert.Equal(t, tt.want, gap.SkillMatchPercentage, "%d of 16", tt.have)
	}
}

func TestCompareSkills_StrongMatch(t *testing.T) {
	required := []string{"a", "b", "c", "d", "e"}
	gap := CompareSkills([]string{"A", "B", "C", "D"}, required, []string{"x", "y", "z", "w"})

	assert.Equal(t, 80.0, gap.SkillMatchPercentage)
	assert.Equal(t, []string{
		"Consider adding these 1 required skills to your resume",
		"Strong skill match! Highlight your experience with matching skills",
	}, gap.Recommendations)
}

func TestMatchBand(t *testing.T) {
	assert.Equal(t, BandGreen, MatchBand(70))
	assert.Equal(t, BandYellow, MatchBand(69.9))
	assert.Equal(t, BandYellow, MatchBand(50))
	assert.Equal(t, BandRed, MatchBand(49.9))
}
