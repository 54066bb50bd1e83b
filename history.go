package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const historyTimeLayout = "2006-01-02 15:04"

var historyCmd = &cobra.Command{
	Use:       "history [analyses|generations]",
	Short:     "Show saved analyses or generations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"analyses", "generations"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := present(cmd)
		profile, _ := cmd.Flags().GetString("profile")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			return errors.New("--limit must be positive")
		}

		kind := "analyses"
		if len(args) == 1 {
			kind = args[0]
		}

		q, closeDB, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		if kind == "generations" {
			items, err := q.ListGenerations(ctx, profile, limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				p.Warning("No generations saved yet. Use generate-profile --save.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, g := range items {
				rows = append(rows, []string{
					g.CreatedAt.Local().Format(historyTimeLayout),
					g.Profile,
					g.JobTitle,
					strconv.Itoa(g.Iterations),
					strconv.FormatBool(g.PassesReview),
					strconv.Itoa(g.AlignmentScore) + "/" + strconv.Itoa(g.StyleComplianceScore),
				})
			}
			p.Table("Generations", []string{"Date", "Profile", "Role", "Iterations", "Passed", "Scores"}, rows)
			return nil
		}

		items, err := q.ListAnalyses(ctx, profile, limit)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			p.Warning("No analyses saved yet. Use analyze --save.")
			return nil
		}
		rows := make([][]string, 0, len(items))
		for _, a := range items {
			source := "cli"
			if a.RequestID.Valid {
				source = "worker"
			}
			rows = append(rows, []string{
				a.CreatedAt.Local().Format(historyTimeLayout),
				a.Profile,
				a.JobTitle,
				formatPercent(a.MatchPercentage),
				source,
			})
		}
		p.Table("Analyses", []string{"Date", "Profile", "Role", "Match", "Source"}, rows)
		return nil
	},
}

func init() {
	historyCmd.Flags().String("profile", "", "Only show entries for this profile")
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries")
}
