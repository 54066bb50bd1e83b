package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/muhammadolammi/resumeascode/internal/builder"
	"github.com/muhammadolammi/resumeascode/internal/storage"
)

var publishCmd = &cobra.Command{
	Use:   "publish <profile>",
	Short: "Upload a profile's built resume and cover letter to object storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := present(cmd)
		profile := args[0]

		files := builtArtifacts(outputDir(), profile)
		if len(files) == 0 {
			return errors.Errorf("no built files for profile %s in %s, run build first", profile, outputDir())
		}

		store, err := newStore(ctx)
		if err != nil {
			return err
		}
		for _, path := range files {
			body, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", path)
			}
			key := storage.PublishKey(profile, path)
			if err := store.Upload(ctx, key, body, storage.ContentType(path)); err != nil {
				return err
			}
			p.Success("Uploaded " + key)
		}
		p.Info("Published " + strconv.Itoa(len(files)) + " files to bucket " + store.Bucket())
		return nil
	},
}

// builtArtifacts lists the resume and cover letter files that exist for
// profile in dir.
func builtArtifacts(dir, profile string) []string {
	var files []string
	for _, format := range []string{builder.FormatHTML, builder.FormatPDF} {
		for _, name := range []string{profile + "_resume." + format, profile + "_cover_letter." + format} {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				files = append(files, path)
			}
		}
	}
	return files
}
