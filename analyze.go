package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/muhammadolammi/resumeascode/internal/analysis"
	"github.com/muhammadolammi/resumeascode/internal/database"
	"github.com/muhammadolammi/resumeascode/internal/presenter"
	"github.com/muhammadolammi/resumeascode/internal/resume"
)

const previewCount = 5

var analyzeCmd = &cobra.Command{
	Use:   "analyze <profile>",
	Short: "Analyze the profile's job description and compare it with your skills",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := present(cmd)
		profile := args[0]
		save, _ := cmd.Flags().GetBool("save")

		loader, err := resume.NewLoader(dataDir(), profile)
		if err != nil {
			return err
		}
		r, err := loader.LoadResume()
		if err != nil {
			return err
		}
		jobText, err := loader.LoadJobDescription()
		if err != nil {
			return err
		}

		client, err := newLLMClient(ctx)
		if err != nil {
			return err
		}
		p.Dim("Analyzing job description with " + client.Name() + "...")

		job, err := analysis.AnalyzeJobDescription(ctx, client, jobText)
		if err != nil {
			return err
		}
		gap := analysis.CompareSkills(r.Skills.Names(), job.RequiredSkills, job.PreferredSkills)

		showAnalysis(p, job, gap)

		if save {
			id, err := saveAnalysis(ctx, profile, "", job, gap, sql.NullString{})
			if err != nil {
				return err
			}
			p.Success("Analysis saved: " + id)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("save", false, "Store the analysis in the history database")
}

func showAnalysis(p *presenter.Presenter, job analysis.JobAnalysisResult, gap analysis.SkillGapAnalysis) {
	p.Panel("Job Analysis", job.Title(), presenter.Blue)

	p.Table("Skills Analysis", []string{"Category", "Count", "Details"}, [][]string{
		{"Matching Skills", strconv.Itoa(len(gap.MatchingSkills)), preview(gap.MatchingSkills)},
		{"Missing Required", strconv.Itoa(len(gap.MissingRequiredSkills)), preview(gap.MissingRequiredSkills)},
		{"Missing Preferred", strconv.Itoa(len(gap.MissingPreferredSkills)), preview(gap.MissingPreferredSkills)},
	})

	p.Panel("Skill Match Percentage", formatPercent(gap.SkillMatchPercentage), bandColor(analysis.MatchBand(gap.SkillMatchPercentage)))

	if len(gap.Recommendations) > 0 {
		p.Section("Recommendations")
		p.Bullets(gap.Recommendations)
	}
	if len(gap.MissingRequiredSkills) > 0 {
		p.Section("Missing Required Skills")
		p.Bullets(gap.MissingRequiredSkills)
	}
}

// preview joins the first few items, marking truncation with "...".
func preview(items []string) string {
	if len(items) <= previewCount {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:previewCount], ", ") + "..."
}

func formatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

func bandColor(b analysis.Band) lipgloss.Color {
	switch b {
	case analysis.BandGreen:
		return presenter.Green
	case analysis.BandYellow:
		return presenter.Yellow
	default:
		return presenter.Red
	}
}

// saveAnalysis records an analysis in the history database and returns its
// id. jobTitle falls back to the analyzed role title.
func saveAnalysis(ctx context.Context, profile, jobTitle string, job analysis.JobAnalysisResult, gap analysis.SkillGapAnalysis, requestID sql.NullString) (string, error) {
	q, closeDB, err := openHistory(ctx)
	if err != nil {
		return "", err
	}
	defer closeDB()
	return recordAnalysis(ctx, q, profile, jobTitle, job, gap, requestID)
}

func recordAnalysis(ctx context.Context, q *database.Queries, profile, jobTitle string, job analysis.JobAnalysisResult, gap analysis.SkillGapAnalysis, requestID sql.NullString) (string, error) {
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode job analysis")
	}
	gapJSON, err := json.Marshal(gap)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode skill gap")
	}
	if jobTitle == "" {
		jobTitle = job.Title()
	}

	a, err := q.CreateAnalysis(ctx, database.CreateAnalysisParams{
		ID:              uuid.New().String(),
		RequestID:       requestID,
		Profile:         profile,
		JobTitle:        jobTitle,
		MatchPercentage: gap.SkillMatchPercentage,
		JobAnalysis:     string(jobJSON),
		SkillGap:        string(gapJSON),
	})
	if err != nil {
		return "", err
	}
	return a.ID, nil
}
