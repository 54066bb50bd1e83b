package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muhammadolammi/resumeascode/internal/convert"
)

var convertCVCmd = &cobra.Command{
	Use:   "convert-cv <file>",
	Short: "Convert a PDF, DOCX, text or markdown CV into experience YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := present(cmd)
		input := args[0]

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = convert.DefaultOutputPath(input)
		}

		client, err := newLLMClient(ctx)
		if err != nil {
			return err
		}
		p.Dim("Converting " + input + " with " + client.Name() + "...")

		data, err := convert.ConvertFile(ctx, client, input)
		if err != nil {
			return err
		}

		p.Section("Preview")
		for _, e := range data.Experiences {
			end := e.EndDate
			if e.Current || end == "" {
				end = "Present"
			}
			p.Field(e.Company, e.Title+" ("+e.StartDate+" - "+end+"), "+strconv.Itoa(len(e.Achievements))+" achievements")
		}

		pe, err := data.WriteYAML(output)
		if err != nil {
			return err
		}
		p.Success("Converted " + strconv.Itoa(len(pe.Experiences)) + " experiences to " + output)
		p.Dim("Review the file, then copy it to " + dataDir() + "/common/experience.yml or use it with generate-profile --cv")
		return nil
	},
}

func init() {
	convertCVCmd.Flags().StringP("output", "o", "", "Output YAML path (defaults to the input name with .yml)")
}
