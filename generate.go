package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/muhammadolammi/resumeascode/internal/builder"
	"github.com/muhammadolammi/resumeascode/internal/convert"
	"github.com/muhammadolammi/resumeascode/internal/database"
	"github.com/muhammadolammi/resumeascode/internal/presenter"
	"github.com/muhammadolammi/resumeascode/internal/profilegen"
	"github.com/muhammadolammi/resumeascode/internal/resume"
	"github.com/muhammadolammi/resumeascode/internal/style"
)

const issuePreviewCount = 5

var generateProfileCmd = &cobra.Command{
	Use:   "generate-profile <name>",
	Short: "Generate a tailored profile from a job description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := present(cmd)
		name := args[0]
		flags := cmd.Flags()

		jobPath, _ := flags.GetString("job")
		cvPath, _ := flags.GetString("cv")
		maxIterations, _ := flags.GetInt("max-iterations")
		autoBuild, _ := flags.GetBool("auto-build")
		yes, _ := flags.GetBool("yes")
		save, _ := flags.GetBool("save")

		rules := styleRules()
		if flags.Changed("no-em-dashes") {
			rules.NoEmDashes, _ = flags.GetBool("no-em-dashes")
		}
		if flags.Changed("no-first-person") {
			rules.NoFirstPerson, _ = flags.GetBool("no-first-person")
		}
		if flags.Changed("max-bullet-length") {
			rules.MaxBulletLength, _ = flags.GetInt("max-bullet-length")
		}

		jobText, err := convert.ExtractFile(jobPath)
		if err != nil {
			return errors.Wrap(err, "failed to read job description")
		}

		client, err := newLLMClient(ctx)
		if err != nil {
			return err
		}

		existing, err := loadExistingExperience(ctx, p, cvPath)
		if err != nil {
			return err
		}

		p.Dim("Generating profile '" + name + "' with " + client.Name() + " (up to " + strconv.Itoa(maxIterations) + " iterations)...")
		gen := profilegen.New(client, rules, profilegen.WithMaxIterations(maxIterations))
		result, err := gen.Generate(ctx, name, jobText, existing)
		if err != nil {
			return err
		}

		showGeneration(p, result)

		if !yes && !p.Confirm("Write profile '"+name+"'?", true) {
			p.Warning("Profile not written")
			return nil
		}

		written, err := profilegen.WriteProfile(dataDir(), result, jobText)
		if err != nil {
			return err
		}
		p.Success("Profile '" + name + "' written")
		for _, path := range written {
			p.Dim("  " + path)
		}

		if issues := result.QualityReview.IssuesFound; len(issues) > 0 {
			p.Section("Review Issues")
			if len(issues) > issuePreviewCount {
				issues = issues[:issuePreviewCount]
			}
			p.Bullets(issues)
		}

		if save {
			id, err := saveGeneration(ctx, result)
			if err != nil {
				return err
			}
			p.Success("Generation saved: " + id)
		}

		if autoBuild {
			opts := buildOptions{Formats: []string{builder.FormatHTML, builder.FormatPDF}}
			if _, err := buildProfile(ctx, p, name, opts); err != nil {
				return errors.Wrap(err, "auto-build failed")
			}
			return nil
		}
		p.Dim("Next: resume build " + name + " -f both")
		return nil
	},
}

func init() {
	flags := generateProfileCmd.Flags()
	defaults := style.DefaultRules()
	flags.String("job", "", "Job description file (txt, md, html, pdf or docx)")
	flags.String("cv", "", "Experience source: a YAML file or a CV to convert (defaults to common/experience.yml)")
	flags.Bool("no-em-dashes", defaults.NoEmDashes, "Disallow em dashes in bullets")
	flags.Bool("no-first-person", defaults.NoFirstPerson, "Disallow first person pronouns in bullets")
	flags.Int("max-bullet-length", defaults.MaxBulletLength, "Maximum bullet length in characters")
	flags.Int("max-iterations", profilegen.DefaultMaxIterations, "Maximum content generation attempts")
	flags.Bool("auto-build", false, "Build HTML and PDF after writing the profile")
	flags.BoolP("yes", "y", false, "Write the profile without asking for confirmation")
	flags.Bool("save", false, "Store the generation in the history database")
	_ = generateProfileCmd.MarkFlagRequired("job")
}

// loadExistingExperience reads the experience the generator tailors. YAML
// files are loaded directly; any other file is converted with the model.
func loadExistingExperience(ctx context.Context, p *presenter.Presenter, cvPath string) (resume.ProfessionalExperience, error) {
	var pe resume.ProfessionalExperience
	if cvPath == "" {
		cvPath = filepath.Join(dataDir(), resume.CommonDir, "experience.yml")
	}
	switch strings.ToLower(filepath.Ext(cvPath)) {
	case ".yml", ".yaml":
		if err := resume.LoadYAML(cvPath, &pe); err != nil {
			return pe, errors.Wrap(err, "failed to load experience")
		}
		return pe, nil
	}

	client, err := newLLMClient(ctx)
	if err != nil {
		return pe, err
	}
	p.Dim("Converting " + cvPath + "...")
	data, err := convert.ConvertFile(ctx, client, cvPath)
	if err != nil {
		return pe, err
	}
	return data.ToExperience()
}

func showGeneration(p *presenter.Presenter, result *profilegen.Result) {
	review := result.QualityReview
	p.Panel("Job Analysis", result.JobAnalysis.Title(), presenter.Blue)

	color := presenter.Green
	if !review.Accepted() || len(result.LocalViolations) > 0 {
		color = presenter.Yellow
	}
	p.Panel("Quality Review", strings.Join([]string{
		"Passes review: " + strconv.FormatBool(review.PassesReview),
		"Alignment: " + strconv.Itoa(review.AlignmentScore) + "/10",
		"Style compliance: " + strconv.Itoa(review.StyleComplianceScore) + "/10",
		"Iterations: " + strconv.Itoa(result.Iterations),
		"Duration: " + result.Duration.Round(time.Millisecond).String(),
	}, "\n"), color)

	content := result.ResumeContent
	p.Section("Preview")
	p.Field("Title", content.HeaderTitle)
	p.Field("Summary", content.Summary)
	for _, e := range content.Experiences {
		p.Field(e.Company, e.Title+", "+strconv.Itoa(len(e.Achievements))+" bullets")
	}
	if len(review.Strengths) > 0 {
		p.Section("Strengths")
		p.Bullets(review.Strengths)
	}
}

func saveGeneration(ctx context.Context, result *profilegen.Result) (string, error) {
	q, closeDB, err := openHistory(ctx)
	if err != nil {
		return "", err
	}
	defer closeDB()

	body, err := json.Marshal(result)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode generation")
	}
	review := result.QualityReview
	g, err := q.CreateGeneration(ctx, database.CreateGenerationParams{
		ID:                   result.ID,
		Profile:              result.ProfileName,
		JobTitle:             result.JobAnalysis.Title(),
		Iterations:           result.Iterations,
		PassesReview:         review.PassesReview,
		AlignmentScore:       review.AlignmentScore,
		StyleComplianceScore: review.StyleComplianceScore,
		DurationMs:           result.Duration.Milliseconds(),
		Result:               string(body),
	})
	if err != nil {
		return "", err
	}
	return g.ID, nil
}
