package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Resume as Code - %s\n", version)
		fmt.Fprintln(cmd.OutOrStdout(), "AI-powered resume builder")
	},
}
