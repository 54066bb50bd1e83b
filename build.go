package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/muhammadolammi/resumeascode/internal/builder"
	"github.com/muhammadolammi/resumeascode/internal/logger"
	"github.com/muhammadolammi/resumeascode/internal/presenter"
	"github.com/muhammadolammi/resumeascode/internal/profilegen"
	"github.com/muhammadolammi/resumeascode/internal/resume"
)

type buildOptions struct {
	Formats  []string
	Output   string
	Template string
}

var buildCmd = &cobra.Command{
	Use:   "build <profile>",
	Short: "Build a resume for the given profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := present(cmd)
		profile := args[0]

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		tmpl, _ := cmd.Flags().GetString("template")
		watch, _ := cmd.Flags().GetBool("watch")

		formats, unknown := builder.ParseFormats(format)
		for _, f := range unknown {
			p.Warning("Unknown format '" + f + "' ignored (use html, pdf or both)")
		}
		if len(formats) == 0 {
			return errors.Wrapf(builder.ErrUnsupportedFormat, "%q", format)
		}
		if output != "" && len(formats) > 1 {
			return errors.New("--output can only be used with a single format")
		}

		opts := buildOptions{Formats: formats, Output: output, Template: tmpl}
		if _, err := buildProfile(ctx, p, profile, opts); err != nil {
			return err
		}
		if !watch {
			return nil
		}

		loader, err := resume.NewLoader(dataDir(), profile)
		if err != nil {
			return err
		}
		dirs := []string{filepath.Join(dataDir(), resume.CommonDir), loader.ProfileDir()}
		p.Info("Watching " + strings.Join(dirs, ", ") + " for changes (Ctrl+C to stop)")
		return builder.Watch(ctx, dirs, builder.DefaultDebounce, func() error {
			p.Dim("Change detected, rebuilding...")
			_, err := buildProfile(ctx, p, profile, opts)
			return err
		})
	},
}

func init() {
	buildCmd.Flags().StringP("format", "f", builder.FormatHTML, "Output format: html, pdf or both (comma separated)")
	buildCmd.Flags().StringP("output", "o", "", "Output file path (single format only)")
	buildCmd.Flags().Bool("watch", false, "Rebuild when resume data changes")
	buildCmd.Flags().String("template", "", "Custom HTML template file")
}

// buildProfile loads, validates and renders a profile in every requested
// format, plus its cover letter when one exists. It returns the written
// paths.
func buildProfile(ctx context.Context, p *presenter.Presenter, profile string, opts buildOptions) ([]string, error) {
	loader, err := resume.NewLoader(dataDir(), profile)
	if err != nil {
		return nil, err
	}
	r, err := loader.LoadResume()
	if err != nil {
		return nil, err
	}

	b, err := newBuilder(opts.Template)
	if err != nil {
		return nil, err
	}
	html, err := b.BuildHTML(r)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, format := range opts.Formats {
		path := opts.Output
		if path == "" {
			if path, err = builder.OutputPath(outputDir(), profile, format); err != nil {
				return written, err
			}
		}
		if err := writeFormat(ctx, format, html, path); err != nil {
			return written, err
		}
		written = append(written, path)
		p.Success("Built " + strings.ToUpper(format) + ": " + path)
	}

	letters, err := buildCoverLetter(ctx, loader, profile, r.Header.Name, opts.Formats)
	if err != nil {
		return written, err
	}
	for _, path := range letters {
		p.Success("Built cover letter: " + path)
	}
	written = append(written, letters...)

	logger.G(ctx).WithField("profile", profile).WithField("files", len(written)).Debug("build finished")
	return written, nil
}

func newBuilder(tmpl string) (*builder.Builder, error) {
	if tmpl != "" {
		return builder.NewFromFile(tmpl)
	}
	return builder.New()
}

func writeFormat(ctx context.Context, format, html, path string) error {
	switch format {
	case builder.FormatHTML:
		return builder.WriteHTML(html, path)
	case builder.FormatPDF:
		return builder.WritePDF(ctx, newPDFRenderer(), html, path)
	default:
		return errors.Wrapf(builder.ErrUnsupportedFormat, "%q", format)
	}
}

// buildCoverLetter renders cover_letter.md next to the resume as
// <profile>_cover_letter.<format>. A profile without a letter is skipped.
func buildCoverLetter(ctx context.Context, loader *resume.Loader, profile, name string, formats []string) ([]string, error) {
	src := filepath.Join(loader.ProfileDir(), profilegen.CoverLetterFile)
	md, err := resume.ReadText(src)
	if errors.Is(err, resume.ErrFileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	html, err := builder.RenderCoverLetter("Cover Letter - "+name, md)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, format := range formats {
		path := filepath.Join(outputDir(), profile+"_cover_letter."+format)
		if err := writeFormat(ctx, format, html, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
